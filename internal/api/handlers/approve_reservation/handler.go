package approve_reservation

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

// Handle POST /api/v1/reservations/{reservationId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/approve - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/{id}/approve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Approve(r.Context(), &approveReservation.Request{
		AdminID:       adminID,
		ReservationID: reservationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, approveReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/approve - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, approveReservation.ErrAccessDenied):
			h.logger.Warn("POST /reservations/{id}/approve - Access denied: admin_id=%d", adminID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, approveReservation.ErrInvalidStateTransition):
			h.logger.Warn("POST /reservations/{id}/approve - Not pending: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, approveReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/{id}/approve - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("POST /reservations/{id}/approve - Failed to approve: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/approve - Approved: reservation_id=%d, admin_id=%d, auto_rejected=%d",
		reservationID, adminID, len(result.AutoRejectedIDs))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
