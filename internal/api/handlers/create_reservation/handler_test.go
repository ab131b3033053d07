package create_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

type fakeUseCase struct {
	resp   *createReservation.Response
	err    error
	gotReq *createReservation.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := middleware.Auth(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	req.Header.Set("X-User-ID", "100")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	return rec
}

func validBody() string {
	return `{
		"poolId": 1,
		"startAt": "2026-03-02T10:00:00Z",
		"endAt": "2026-03-02T11:00:00Z",
		"reason": "встреча команды",
		"eventType": "meeting"
	}`
}

func TestHandle_CreatesReservation(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{
		resp: &createReservation.Response{
			ID:         1,
			ResourceID: 10,
			PoolID:     1,
			ActorType:  "person",
			ActorID:    100,
			EventType:  "meeting",
			Reason:     "встреча команды",
			StartAt:    start,
			EndAt:      start.Add(time.Hour),
			Status:     "pending",
			CreatedAt:  start,
			UpdatedAt:  start,
		},
	}

	rec := doRequest(t, uc, validBody())

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(10), resp.ResourceID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2026-03-02T10:00:00Z", resp.StartAt)

	// ID актора берется из заголовка аутентификации, а не из тела
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(100), uc.gotReq.ActorID)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid range", createReservation.ErrInvalidRange, http.StatusBadRequest},
		{"past start", createReservation.ErrPastStart, http.StatusBadRequest},
		{"outside business hours", createReservation.ErrOutsideBusinessHours, http.StatusBadRequest},
		{"invalid recurrence rule", createReservation.ErrInvalidRecurrenceRule, http.StatusBadRequest},
		{"self overlap", createReservation.ErrActorSelfOverlap, http.StatusConflict},
		{"no resource available", createReservation.ErrNoResourceAvailable, http.StatusConflict},
		{"actor not found", createReservation.ErrActorNotFound, http.StatusNotFound},
		{"pool not found", createReservation.ErrPoolNotFound, http.StatusNotFound},
		{"internal", createReservation.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tc.err}, validBody())
			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

func TestHandle_MalformedBody(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, `{"poolId": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidTimestamp(t *testing.T) {
	body := `{"poolId": 1, "startAt": "завтра", "endAt": "2026-03-02T11:00:00Z", "reason": "r", "eventType": "meeting"}`
	rec := doRequest(t, &fakeUseCase{}, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MissingAuthHeader(t *testing.T) {
	handler := middleware.Auth(http.HandlerFunc(NewHandler(&fakeUseCase{}, nopLogger{}).Handle))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(validBody()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
