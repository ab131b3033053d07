package check_out

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/checkins"
	"github.com/m04kA/SMC-ReservationService/internal/service/checkins/models"
)

const (
	msgInvalidCheckInID = "некорректный ID сессии присутствия"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNoActiveCheckIn  = "у вас нет открытой сессии присутствия с этим ID"
)

type Handler struct {
	service CheckInService
	logger  Logger
}

func NewHandler(service CheckInService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/checkins/{checkInId}/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	checkInID, err := strconv.ParseInt(vars["checkInId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /checkins/{id}/checkout - Invalid check-in ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCheckInID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /checkins/{id}/checkout - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.CheckOut(r.Context(), &models.CheckOutRequest{
		ActorID:   userID,
		CheckInID: checkInID,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkins.ErrNoActiveCheckIn):
			h.logger.Warn("PATCH /checkins/{id}/checkout - No active check-in: actor_id=%d, checkin_id=%d", userID, checkInID)
			handlers.RespondNotFound(w, msgNoActiveCheckIn)

		case errors.Is(err, checkins.ErrInvalidInput):
			h.logger.Warn("PATCH /checkins/{id}/checkout - Invalid input: actor_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidCheckInID)

		default:
			h.logger.Error("PATCH /checkins/{id}/checkout - Failed to check out: actor_id=%d, checkin_id=%d, error=%v",
				userID, checkInID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /checkins/{id}/checkout - Checked out: actor_id=%d, checkin_id=%d", userID, checkInID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
