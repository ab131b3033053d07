package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	exceptions   map[int64][]domain.ReservationException
	lastFilter   domain.ResourceReservationsFilter
}

func (f *fakeReservationRepo) GetWithFilter(_ context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error) {
	f.lastFilter = filter
	return f.reservations, nil
}

func (f *fakeReservationRepo) GetExceptionsByReservationIDs(_ context.Context, _ []int64) (map[int64][]domain.ReservationException, error) {
	if f.exceptions == nil {
		return map[int64][]domain.ReservationException{}, nil
	}
	return f.exceptions, nil
}

type fakeCatalogRepo struct {
	pool      *domain.ResourcePool
	poolErr   error
	resources []*domain.Resource
}

func (f *fakeCatalogRepo) GetPoolByID(_ context.Context, _ int64) (*domain.ResourcePool, error) {
	if f.poolErr != nil {
		return nil, f.poolErr
	}
	return f.pool, nil
}

func (f *fakeCatalogRepo) ListByPool(_ context.Context, _ int64) ([]*domain.Resource, error) {
	return f.resources, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func occ(start, end time.Time) domain.Occurrence {
	return domain.Occurrence{Start: start, End: end}
}

func blocking(id, resourceID, actorID int64, status domain.ReservationStatus, start, end time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:         id,
		ResourceID: resourceID,
		PoolID:     1,
		Actor:      domain.PersonActor(actorID),
		Status:     status,
		StartAt:    start,
		EndAt:      end,
	}
}

func TestMergeSlots_Empty(t *testing.T) {
	merged := mergeSlots(nil)
	assert.NotNil(t, merged)
	assert.Empty(t, merged)
}

func TestMergeSlots_DisjointStayApart(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	merged := mergeSlots([]domain.Occurrence{
		occ(base, base.Add(time.Hour)),
		occ(base.Add(2*time.Hour), base.Add(3*time.Hour)),
	})

	require.Len(t, merged, 2)
	assert.Equal(t, base, merged[0].Start)
	assert.Equal(t, base.Add(2*time.Hour), merged[1].Start)
}

func TestMergeSlots_OverlappingCollapse(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	merged := mergeSlots([]domain.Occurrence{
		occ(base, base.Add(2*time.Hour)),
		occ(base.Add(time.Hour), base.Add(3*time.Hour)),
	})

	require.Len(t, merged, 1)
	assert.Equal(t, base, merged[0].Start)
	assert.Equal(t, base.Add(3*time.Hour), merged[0].End)
}

func TestMergeSlots_AdjacentCollapse(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// Конец одного равен началу другого: слоты непрерывны
	merged := mergeSlots([]domain.Occurrence{
		occ(base, base.Add(time.Hour)),
		occ(base.Add(time.Hour), base.Add(2*time.Hour)),
	})

	require.Len(t, merged, 1)
	assert.Equal(t, base, merged[0].Start)
	assert.Equal(t, base.Add(2*time.Hour), merged[0].End)
}

func TestMergeSlots_ContainedAbsorbed(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	merged := mergeSlots([]domain.Occurrence{
		occ(base, base.Add(4*time.Hour)),
		occ(base.Add(time.Hour), base.Add(2*time.Hour)),
	})

	require.Len(t, merged, 1)
	assert.Equal(t, base, merged[0].Start)
	assert.Equal(t, base.Add(4*time.Hour), merged[0].End)
}

func TestMergeSlots_UnsortedInput(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	merged := mergeSlots([]domain.Occurrence{
		occ(base.Add(3*time.Hour), base.Add(4*time.Hour)),
		occ(base, base.Add(time.Hour)),
		occ(base.Add(30*time.Minute), base.Add(90*time.Minute)),
	})

	require.Len(t, merged, 2)
	assert.Equal(t, base, merged[0].Start)
	assert.Equal(t, base.Add(90*time.Minute), merged[0].End)
	assert.Equal(t, base.Add(3*time.Hour), merged[1].Start)
}

func TestClampToWindow(t *testing.T) {
	from := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	to := from.Add(8 * time.Hour)

	clamped := clampToWindow(occ(from.Add(-time.Hour), to.Add(time.Hour)), from, to)
	assert.Equal(t, from, clamped.Start)
	assert.Equal(t, to, clamped.End)

	untouched := clampToWindow(occ(from.Add(time.Hour), from.Add(2*time.Hour)), from, to)
	assert.Equal(t, from.Add(time.Hour), untouched.Start)
	assert.Equal(t, from.Add(2*time.Hour), untouched.End)
}

func newTestUseCase(reservations *fakeReservationRepo, catalog *fakeCatalogRepo) *UseCase {
	return NewUseCase(reservations, catalog, &fakeTxManager{}, nopLogger{})
}

func testCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		pool: &domain.ResourcePool{ID: 1, Name: "Коворкинг", Kind: domain.PoolCoworking, Capacity: 2},
		resources: []*domain.Resource{
			{ID: 10, PoolID: 1, Label: "Место 1"},
			{ID: 11, PoolID: 1, Label: "Место 2"},
		},
	}
}

func TestExecute_InvalidWindow(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, testCatalog())
	from := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{
		ActorID: 100,
		PoolID:  1,
		From:    from,
		To:      from, // пустое окно
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestExecute_PoolNotFound(t *testing.T) {
	catalog := &fakeCatalogRepo{poolErr: resourceRepo.ErrPoolNotFound}
	uc := newTestUseCase(&fakeReservationRepo{}, catalog)
	from := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{
		ActorID: 100,
		PoolID:  99,
		From:    from,
		To:      from.Add(8 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrPoolNotFound)
}

func TestExecute_ActorOwnReservationsExcludedFromBusy(t *testing.T) {
	from := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	to := from.Add(8 * time.Hour)

	mine := blocking(1, 10, 100, domain.StatusApproved, from.Add(time.Hour), from.Add(2*time.Hour))
	mine.Reason = "стендап"
	other := blocking(2, 11, 200, domain.StatusPending, from.Add(3*time.Hour), from.Add(4*time.Hour))

	reservations := &fakeReservationRepo{reservations: []*domain.Reservation{mine, other}}
	uc := newTestUseCase(reservations, testCatalog())

	resp, err := uc.Execute(context.Background(), &Request{ActorID: 100, PoolID: 1, From: from, To: to})
	require.NoError(t, err)

	// Чужая pending-бронь занимает слот, собственная - уходит в календарь актора
	require.Len(t, resp.UnavailableSlots, 1)
	assert.Equal(t, from.Add(3*time.Hour), resp.UnavailableSlots[0].Start)
	assert.Equal(t, from.Add(4*time.Hour), resp.UnavailableSlots[0].End)

	require.Len(t, resp.ActorOccurrences, 1)
	assert.Equal(t, int64(1), resp.ActorOccurrences[0].ReservationID)
	assert.Equal(t, string(domain.StatusApproved), resp.ActorOccurrences[0].Status)
	assert.Equal(t, "стендап", resp.ActorOccurrences[0].Reason)
}

func TestExecute_BusySlotsMergedAcrossResources(t *testing.T) {
	from := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	to := from.Add(8 * time.Hour)

	// Брони на разных ресурсах, но с примыкающими интервалами
	reservations := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			blocking(1, 10, 200, domain.StatusApproved, from.Add(time.Hour), from.Add(2*time.Hour)),
			blocking(2, 11, 300, domain.StatusApproved, from.Add(2*time.Hour), from.Add(3*time.Hour)),
		},
	}
	uc := newTestUseCase(reservations, testCatalog())

	resp, err := uc.Execute(context.Background(), &Request{ActorID: 100, PoolID: 1, From: from, To: to})
	require.NoError(t, err)

	require.Len(t, resp.UnavailableSlots, 1)
	assert.Equal(t, from.Add(time.Hour), resp.UnavailableSlots[0].Start)
	assert.Equal(t, from.Add(3*time.Hour), resp.UnavailableSlots[0].End)
}

func TestExecute_BusySlotClampedToWindow(t *testing.T) {
	from := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	to := from.Add(4 * time.Hour)

	reservations := &fakeReservationRepo{
		reservations: []*domain.Reservation{
			blocking(1, 10, 200, domain.StatusApproved, from.Add(-time.Hour), to.Add(time.Hour)),
		},
	}
	uc := newTestUseCase(reservations, testCatalog())

	resp, err := uc.Execute(context.Background(), &Request{ActorID: 100, PoolID: 1, From: from, To: to})
	require.NoError(t, err)

	require.Len(t, resp.UnavailableSlots, 1)
	assert.Equal(t, from, resp.UnavailableSlots[0].Start)
	assert.Equal(t, to, resp.UnavailableSlots[0].End)
}

func TestExecute_RecurringSeriesExpandsIntoSlots(t *testing.T) {
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // понедельник
	to := from.AddDate(0, 0, 5)

	start := from.Add(10 * time.Hour)
	seriesEnd := from.AddDate(0, 0, 5)
	series := blocking(1, 10, 200, domain.StatusApproved, start, start.Add(time.Hour))
	series.RRule = ptr.Ptr("FREQ=DAILY")
	series.RecurrenceEnd = &seriesEnd

	reservations := &fakeReservationRepo{
		reservations: []*domain.Reservation{series},
		exceptions: map[int64][]domain.ReservationException{
			1: {{ReservationID: 1, OccurrenceStart: start.AddDate(0, 0, 2), Cancelled: true}},
		},
	}
	uc := newTestUseCase(reservations, testCatalog())

	resp, err := uc.Execute(context.Background(), &Request{ActorID: 100, PoolID: 1, From: from, To: to})
	require.NoError(t, err)

	// 5 дней серии минус отменённое вхождение
	require.Len(t, resp.UnavailableSlots, 4)
	assert.Equal(t, start, resp.UnavailableSlots[0].Start)
	assert.Equal(t, start.AddDate(0, 0, 1), resp.UnavailableSlots[1].Start)
	assert.Equal(t, start.AddDate(0, 0, 3), resp.UnavailableSlots[2].Start)
	assert.Equal(t, start.AddDate(0, 0, 4), resp.UnavailableSlots[3].Start)
}

func TestExecute_QueriesBlockingStatusesOnly(t *testing.T) {
	from := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	reservations := &fakeReservationRepo{}
	uc := newTestUseCase(reservations, testCatalog())

	_, err := uc.Execute(context.Background(), &Request{ActorID: 100, PoolID: 1, From: from, To: from.Add(time.Hour)})
	require.NoError(t, err)

	assert.Equal(t, domain.BlockingStatuses, reservations.lastFilter.Statuses)
	assert.False(t, reservations.lastFilter.ForUpdate)
	assert.Equal(t, []int64{10, 11}, reservations.lastFilter.ResourceIDs)
}
