package check_in

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/checkins"
	"github.com/m04kA/SMC-ReservationService/internal/service/checkins/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgAlreadyCheckedIn    = "у вас уже есть открытая сессия присутствия"
	msgReservationNotFound = "бронирование не найдено"
	msgNotApproved         = "бронирование не подтверждено или принадлежит другому актору"
	msgOutsideWindow       = "чек-ин возможен только в пределах допуска от начала брони"
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

// Handle POST /api/v1/checkins
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /checkins - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело опционально: чек-ин без привязки к брони допустим
	var req CheckInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /checkins - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CheckIn(r.Context(), &models.CheckInRequest{
		ActorID:       userID,
		ReservationID: req.ReservationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkins.ErrAlreadyCheckedIn):
			h.logger.Warn("POST /checkins - Already checked in: actor_id=%d", userID)
			handlers.RespondConflict(w, msgAlreadyCheckedIn)

		case errors.Is(err, checkins.ErrReservationNotFound):
			h.logger.Warn("POST /checkins - Reservation not found: actor_id=%d", userID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, checkins.ErrReservationNotApproved):
			h.logger.Warn("POST /checkins - Reservation not approved: actor_id=%d", userID)
			handlers.RespondConflict(w, msgNotApproved)

		case errors.Is(err, checkins.ErrOutsideReservationWindow):
			h.logger.Warn("POST /checkins - Outside reservation window: actor_id=%d", userID)
			handlers.RespondConflict(w, msgOutsideWindow)

		case errors.Is(err, checkins.ErrInvalidInput):
			h.logger.Warn("POST /checkins - Invalid input: actor_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /checkins - Failed to check in: actor_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /checkins - Checked in: actor_id=%d, checkin_id=%d", userID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
