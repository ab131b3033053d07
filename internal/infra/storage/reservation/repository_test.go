package reservation

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// queryRecorder фиксирует текст запроса и обрывает выполнение
type queryRecorder struct {
	lastQuery string
	lastArgs  []interface{}
	err       error
}

func (r *queryRecorder) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	r.lastQuery = query
	r.lastArgs = args
	return nil, r.err
}

func (r *queryRecorder) QueryContext(_ context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	r.lastQuery = query
	r.lastArgs = args
	return nil, r.err
}

func (r *queryRecorder) QueryRowContext(_ context.Context, query string, _ ...interface{}) *sql.Row {
	r.lastQuery = query
	return nil
}

func TestGetWithFilter_WindowCoversSeriesTail(t *testing.T) {
	recorder := &queryRecorder{err: errors.New("запрос оборван")}
	repo := NewRepository(recorder)

	from := time.Date(2026, 3, 4, 17, 30, 0, 0, time.UTC)
	_, err := repo.GetWithFilter(context.Background(), domain.ResourceReservationsFilter{
		ResourceIDs: []int64{10},
		From:        &from,
	})
	require.ErrorIs(t, err, ErrExecQuery)

	// Нижняя граница окна сравнивается с концом занятости брони:
	// recurrence_end плюс длительность вхождения, а не сам recurrence_end.
	// Иначе серия, чьё последнее вхождение накрывает окно своим хвостом,
	// выпадает из выборки
	assert.Contains(t, recorder.lastQuery, "COALESCE(recurrence_end + (end_at - start_at), end_at) >")
	assert.Contains(t, recorder.lastArgs, from)
}
