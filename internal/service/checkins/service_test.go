package checkins

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	checkInRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/checkin"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/accountservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/checkins/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type fakeCheckInRepo struct {
	open      *domain.CheckIn
	openList  []*domain.CheckIn
	createErr error
	created   *domain.CheckIn
	closedID  *int64
	closedAt  *time.Time
}

func (f *fakeCheckInRepo) Create(_ context.Context, c *domain.CheckIn) (*domain.CheckIn, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *c
	stored.ID = 1
	f.created = &stored
	return &stored, nil
}

func (f *fakeCheckInRepo) GetOpenByActor(_ context.Context, actor domain.Actor) (*domain.CheckIn, error) {
	if f.open == nil || f.open.Actor != actor {
		return nil, checkInRepo.ErrCheckInNotFound
	}
	open := *f.open
	return &open, nil
}

func (f *fakeCheckInRepo) Close(_ context.Context, id int64, checkOutTime time.Time) error {
	f.closedID = &id
	f.closedAt = &checkOutTime
	return nil
}

func (f *fakeCheckInRepo) ListOpen(_ context.Context) ([]*domain.CheckIn, error) {
	return f.openList, nil
}

type fakeReservationRepo struct {
	byID map[int64]*domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64, _ bool) (*domain.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeReservationRepo) GetExceptionsByReservationIDs(_ context.Context, _ []int64) (map[int64][]domain.ReservationException, error) {
	return map[int64][]domain.ReservationException{}, nil
}

type fakeAccountClient struct {
	account *accountservice.Account
	err     error
}

func (f *fakeAccountClient) GetAccount(_ context.Context, _ int64) (*accountservice.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.account, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const tolerance = 30 * time.Minute

// Понедельник, 2 марта 2026, начало подтвержденной брони актора 100
var reservationStart = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func approvedReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:         50,
		ResourceID: 10,
		PoolID:     1,
		Actor:      domain.PersonActor(100),
		Status:     domain.StatusApproved,
		StartAt:    reservationStart,
		EndAt:      reservationStart.Add(2 * time.Hour),
	}
}

func newTestService(checkIns *fakeCheckInRepo, reservations *fakeReservationRepo, accounts *fakeAccountClient, now time.Time) *Service {
	if reservations == nil {
		reservations = &fakeReservationRepo{byID: map[int64]*domain.Reservation{}}
	}
	return NewService(checkIns, reservations, accounts, &fakeTxManager{}, &fixedTimeProvider{now: now}, tolerance, nopLogger{})
}

func adminClient() *fakeAccountClient {
	return &fakeAccountClient{account: &accountservice.Account{ID: 1, Name: "Мария", Role: accountservice.RoleAdmin}}
}

func TestCheckIn_WithoutReservation(t *testing.T) {
	repo := &fakeCheckInRepo{}
	svc := newTestService(repo, nil, adminClient(), reservationStart)

	resp, err := svc.CheckIn(context.Background(), &models.CheckInRequest{ActorID: 100})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(100), resp.ActorID)
	assert.Nil(t, resp.ReservationID)
	assert.Equal(t, reservationStart, resp.CheckInTime)
	assert.Nil(t, resp.CheckOutTime)
}

func TestCheckIn_SecondOpenSessionRejected(t *testing.T) {
	repo := &fakeCheckInRepo{
		open: &domain.CheckIn{ID: 7, Actor: domain.PersonActor(100), CheckInTime: reservationStart},
	}
	svc := newTestService(repo, nil, adminClient(), reservationStart)

	_, err := svc.CheckIn(context.Background(), &models.CheckInRequest{ActorID: 100})
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestCheckIn_LostRaceOnUniqueIndex(t *testing.T) {
	repo := &fakeCheckInRepo{createErr: checkInRepo.ErrOpenSessionExists}
	svc := newTestService(repo, nil, adminClient(), reservationStart)

	_, err := svc.CheckIn(context.Background(), &models.CheckInRequest{ActorID: 100})
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestCheckIn_WithReservationWithinTolerance(t *testing.T) {
	reservations := &fakeReservationRepo{byID: map[int64]*domain.Reservation{50: approvedReservation()}}

	cases := []struct {
		name string
		now  time.Time
	}{
		{"ровно в начале", reservationStart},
		{"на границе допуска до начала", reservationStart.Add(-tolerance)},
		{"на границе допуска после начала", reservationStart.Add(tolerance)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(&fakeCheckInRepo{}, reservations, adminClient(), tc.now)

			resp, err := svc.CheckIn(context.Background(), &models.CheckInRequest{ActorID: 100, ReservationID: ptr.Ptr(int64(50))})
			require.NoError(t, err)
			require.NotNil(t, resp.ReservationID)
			assert.Equal(t, int64(50), *resp.ReservationID)
		})
	}
}

func TestCheckIn_OutsideTolerance(t *testing.T) {
	reservations := &fakeReservationRepo{byID: map[int64]*domain.Reservation{50: approvedReservation()}}

	cases := []struct {
		name string
		now  time.Time
	}{
		{"слишком рано", reservationStart.Add(-tolerance - time.Minute)},
		{"слишком поздно", reservationStart.Add(tolerance + time.Minute)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(&fakeCheckInRepo{}, reservations, adminClient(), tc.now)

			_, err := svc.CheckIn(context.Background(), &models.CheckInRequest{ActorID: 100, ReservationID: ptr.Ptr(int64(50))})
			assert.ErrorIs(t, err, ErrOutsideReservationWindow)
		})
	}
}

func TestCheckIn_RecurringReservationUsesNearestOccurrence(t *testing.T) {
	res := approvedReservation()
	res.RRule = ptr.Ptr("FREQ=DAILY")
	res.RecurrenceEnd = ptr.Ptr(reservationStart.AddDate(0, 0, 5))
	reservations := &fakeReservationRepo{byID: map[int64]*domain.Reservation{50: res}}

	// Чек-ин к третьему вхождению серии
	now := reservationStart.AddDate(0, 0, 2).Add(10 * time.Minute)
	svc := newTestService(&fakeCheckInRepo{}, reservations, adminClient(), now)

	_, err := svc.CheckIn(context.Background(), &models.CheckInRequest{ActorID: 100, ReservationID: ptr.Ptr(int64(50))})
	assert.NoError(t, err)
}

func TestCheckIn_ReservationOfAnotherActor(t *testing.T) {
	res := approvedReservation()
	res.Actor = domain.PersonActor(200)
	reservations := &fakeReservationRepo{byID: map[int64]*domain.Reservation{50: res}}
	svc := newTestService(&fakeCheckInRepo{}, reservations, adminClient(), reservationStart)

	_, err := svc.CheckIn(context.Background(), &models.CheckInRequest{ActorID: 100, ReservationID: ptr.Ptr(int64(50))})
	assert.ErrorIs(t, err, ErrReservationNotApproved)
}

func TestCheckIn_PendingReservation(t *testing.T) {
	res := approvedReservation()
	res.Status = domain.StatusPending
	reservations := &fakeReservationRepo{byID: map[int64]*domain.Reservation{50: res}}
	svc := newTestService(&fakeCheckInRepo{}, reservations, adminClient(), reservationStart)

	_, err := svc.CheckIn(context.Background(), &models.CheckInRequest{ActorID: 100, ReservationID: ptr.Ptr(int64(50))})
	assert.ErrorIs(t, err, ErrReservationNotApproved)
}

func TestCheckIn_ReservationNotFound(t *testing.T) {
	svc := newTestService(&fakeCheckInRepo{}, nil, adminClient(), reservationStart)

	_, err := svc.CheckIn(context.Background(), &models.CheckInRequest{ActorID: 100, ReservationID: ptr.Ptr(int64(404))})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCheckOut_ClosesOwnSession(t *testing.T) {
	repo := &fakeCheckInRepo{
		open: &domain.CheckIn{ID: 7, Actor: domain.PersonActor(100), CheckInTime: reservationStart},
	}
	now := reservationStart.Add(2 * time.Hour)
	svc := newTestService(repo, nil, adminClient(), now)

	resp, err := svc.CheckOut(context.Background(), &models.CheckOutRequest{ActorID: 100, CheckInID: 7})
	require.NoError(t, err)

	require.NotNil(t, resp.CheckOutTime)
	assert.Equal(t, now, *resp.CheckOutTime)
	require.NotNil(t, repo.closedID)
	assert.Equal(t, int64(7), *repo.closedID)
}

func TestCheckOut_NoOpenSession(t *testing.T) {
	svc := newTestService(&fakeCheckInRepo{}, nil, adminClient(), reservationStart)

	_, err := svc.CheckOut(context.Background(), &models.CheckOutRequest{ActorID: 100, CheckInID: 7})
	assert.ErrorIs(t, err, ErrNoActiveCheckIn)
}

func TestCheckOut_WrongSessionID(t *testing.T) {
	repo := &fakeCheckInRepo{
		open: &domain.CheckIn{ID: 7, Actor: domain.PersonActor(100), CheckInTime: reservationStart},
	}
	svc := newTestService(repo, nil, adminClient(), reservationStart)

	_, err := svc.CheckOut(context.Background(), &models.CheckOutRequest{ActorID: 100, CheckInID: 8})
	assert.ErrorIs(t, err, ErrNoActiveCheckIn)
	assert.Nil(t, repo.closedID)
}

func TestCheckOutByActor_AdminClosesSession(t *testing.T) {
	repo := &fakeCheckInRepo{
		open: &domain.CheckIn{ID: 7, Actor: domain.PersonActor(100), CheckInTime: reservationStart},
	}
	svc := newTestService(repo, nil, adminClient(), reservationStart.Add(time.Hour))

	resp, err := svc.CheckOutByActor(context.Background(), &models.CheckOutByActorRequest{AdminID: 1, ActorID: 100})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.NotNil(t, resp.CheckOutTime)
}

func TestCheckOutByActor_NonAdminDenied(t *testing.T) {
	repo := &fakeCheckInRepo{
		open: &domain.CheckIn{ID: 7, Actor: domain.PersonActor(100), CheckInTime: reservationStart},
	}
	accounts := &fakeAccountClient{account: &accountservice.Account{ID: 2, Name: "Иван", Role: accountservice.RoleMember}}
	svc := newTestService(repo, nil, accounts, reservationStart)

	_, err := svc.CheckOutByActor(context.Background(), &models.CheckOutByActorRequest{AdminID: 2, ActorID: 100})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.closedID)
}

func TestListOpen_AdminOnly(t *testing.T) {
	repo := &fakeCheckInRepo{
		openList: []*domain.CheckIn{
			{ID: 7, Actor: domain.PersonActor(100), CheckInTime: reservationStart},
			{ID: 8, Actor: domain.PersonActor(200), CheckInTime: reservationStart},
		},
	}

	resp, err := newTestService(repo, nil, adminClient(), reservationStart).ListOpen(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resp.CheckIns, 2)

	member := &fakeAccountClient{account: &accountservice.Account{ID: 2, Role: accountservice.RoleMember}}
	_, err = newTestService(repo, nil, member, reservationStart).ListOpen(context.Background(), 2)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
