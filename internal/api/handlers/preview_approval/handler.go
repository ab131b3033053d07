package preview_approval

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	approveReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/approve_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgForbidden            = "доступ запрещен"
	msgNotPending           = "бронирование не находится в статусе pending"
)

type Handler struct {
	useCase ApproveReservationUseCase
	logger  Logger
}

func NewHandler(useCase ApproveReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/{reservationId}/approval-preview
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /reservations/{id}/approval-preview - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations/{id}/approval-preview - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Preview(r.Context(), &approveReservation.Request{
		AdminID:       adminID,
		ReservationID: reservationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, approveReservation.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/{id}/approval-preview - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, approveReservation.ErrAccessDenied):
			h.logger.Warn("GET /reservations/{id}/approval-preview - Access denied: admin_id=%d", adminID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, approveReservation.ErrInvalidStateTransition):
			h.logger.Warn("GET /reservations/{id}/approval-preview - Not pending: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, approveReservation.ErrInvalidInput):
			h.logger.Warn("GET /reservations/{id}/approval-preview - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("GET /reservations/{id}/approval-preview - Failed to preview: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations/{id}/approval-preview - Preview: reservation_id=%d, conflicts=%d",
		reservationID, len(result.ConflictIDs))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
