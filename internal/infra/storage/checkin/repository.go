package checkin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// pqUniqueViolation код PostgreSQL для нарушения уникального индекса
const pqUniqueViolation = "23505"

var checkInColumns = []string{
	"id",
	"actor_type",
	"actor_id",
	"reservation_id",
	"check_in_time",
	"check_out_time",
}

// Repository репозиторий для работы с записями физического присутствия
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория чек-инов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает открытый чек-ин (check_out_time = NULL)
// Частичный уникальный индекс по открытым сессиям гарантирует
// не более одного открытого чек-ина на актора; нарушение транслируется
// в ErrOpenSessionExists
func (r *Repository) Create(ctx context.Context, c *domain.CheckIn) (*domain.CheckIn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("check_ins").
		Columns("actor_type", "actor_id", "reservation_id", "check_in_time").
		Values(c.Actor.Type, c.Actor.ID, c.ReservationID, c.CheckInTime).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrOpenSessionExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return c, nil
}

// GetByID получает чек-ин по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CheckIn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(checkInColumns...).
		From("check_ins").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCheckIn(executor.QueryRowContext(ctx, query, args...).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrCheckInNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan check-in: %v", ErrScanRow, err)
	}

	return c, nil
}

// GetOpenByActor получает открытый чек-ин актора, если он есть
func (r *Repository) GetOpenByActor(ctx context.Context, actor domain.Actor) (*domain.CheckIn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(checkInColumns...).
		From("check_ins").
		Where(squirrel.Eq{
			"actor_type":     actor.Type,
			"actor_id":       actor.ID,
			"check_out_time": nil,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenByActor - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCheckIn(executor.QueryRowContext(ctx, query, args...).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrCheckInNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOpenByActor - scan check-in: %v", ErrScanRow, err)
	}

	return c, nil
}

// Close закрывает чек-ин, устанавливая check_out_time
// Повторное закрытие не затрагивает строк и возвращает ErrCheckInNotFound
func (r *Repository) Close(ctx context.Context, id int64, checkOutTime time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("check_ins").
		Set("check_out_time", checkOutTime).
		Where(squirrel.Eq{"id": id, "check_out_time": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Close - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Close - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Close - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCheckInNotFound
	}

	return nil
}

// ListOpen возвращает все открытые чек-ины
// Используется коллаборатором инцидентов для фиксации присутствующих
func (r *Repository) ListOpen(ctx context.Context) ([]*domain.CheckIn, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(checkInColumns...).
		From("check_ins").
		Where(squirrel.Eq{"check_out_time": nil}).
		OrderBy("check_in_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOpen - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOpen - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	checkIns := make([]*domain.CheckIn, 0)
	for rows.Next() {
		c, err := scanCheckIn(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOpen - scan row: %v", ErrScanRow, err)
		}
		checkIns = append(checkIns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOpen - rows error: %v", ErrScanRow, err)
	}

	return checkIns, nil
}

func scanCheckIn(scan func(dest ...interface{}) error) (*domain.CheckIn, error) {
	var c domain.CheckIn
	var checkOut sql.NullTime

	err := scan(
		&c.ID,
		&c.Actor.Type,
		&c.Actor.ID,
		&c.ReservationID,
		&c.CheckInTime,
		&checkOut,
	)
	if err != nil {
		return nil, err
	}

	if checkOut.Valid {
		c.CheckOutTime = &checkOut.Time
	}

	return &c, nil
}
