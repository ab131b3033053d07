package checkout_by_actor

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
	msgInvalidUserID   = "некорректный ID пользователя"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
	msgNoActiveCheckIn = "у актора нет открытой сессии присутствия"
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

// Handle POST /api/v1/users/{userId}/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	targetID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /users/{id}/checkout - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /users/{id}/checkout - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.CheckOutByActor(r.Context(), &models.CheckOutByActorRequest{
		AdminID: adminID,
		ActorID: targetID,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkins.ErrAccessDenied):
			h.logger.Warn("POST /users/{id}/checkout - Access denied: admin_id=%d", adminID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, checkins.ErrNoActiveCheckIn):
			h.logger.Warn("POST /users/{id}/checkout - No active check-in: actor_id=%d", targetID)
			handlers.RespondNotFound(w, msgNoActiveCheckIn)

		case errors.Is(err, checkins.ErrInvalidInput):
			h.logger.Warn("POST /users/{id}/checkout - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidUserID)

		default:
			h.logger.Error("POST /users/{id}/checkout - Failed to check out: actor_id=%d, error=%v", targetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users/{id}/checkout - Checked out by admin: actor_id=%d, admin_id=%d, checkin_id=%d",
		targetID, adminID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
