package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidTimestamp      = "некорректный формат времени, ожидается RFC3339"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidRange          = "начало брони должно быть раньше её конца"
	msgPastStart             = "начало брони в прошлом"
	msgOutsideBusinessHours  = "бронь выходит за рабочие часы площадки"
	msgActorSelfOverlap      = "у вас уже есть пересекающаяся бронь в этом пуле"
	msgNoResourceAvailable   = "нет свободного ресурса на запрошенное время"
	msgInvalidRecurrenceRule = "некорректное правило повторения"
	msgActorNotFound         = "учетная запись не найдена"
	msgPoolNotFound          = "пул ресурсов не найден"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actorID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse timestamps: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimestamp)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidRange):
			h.logger.Warn("POST /reservations - Invalid range: actor_id=%d, pool_id=%d", actorID, req.PoolID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createReservation.ErrPastStart):
			h.logger.Warn("POST /reservations - Past start: actor_id=%d, pool_id=%d", actorID, req.PoolID)
			handlers.RespondBadRequest(w, msgPastStart)

		case errors.Is(err, createReservation.ErrOutsideBusinessHours):
			h.logger.Warn("POST /reservations - Outside business hours: actor_id=%d, pool_id=%d", actorID, req.PoolID)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		case errors.Is(err, createReservation.ErrInvalidRecurrenceRule):
			h.logger.Warn("POST /reservations - Invalid recurrence rule: actor_id=%d, pool_id=%d", actorID, req.PoolID)
			handlers.RespondBadRequest(w, msgInvalidRecurrenceRule)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: actor_id=%d, pool_id=%d, error=%v", actorID, req.PoolID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createReservation.ErrActorSelfOverlap):
			h.logger.Warn("POST /reservations - Actor self overlap: actor_id=%d, pool_id=%d", actorID, req.PoolID)
			handlers.RespondConflict(w, msgActorSelfOverlap)

		case errors.Is(err, createReservation.ErrNoResourceAvailable):
			h.logger.Warn("POST /reservations - No resource available: actor_id=%d, pool_id=%d", actorID, req.PoolID)
			handlers.RespondConflict(w, msgNoResourceAvailable)

		case errors.Is(err, createReservation.ErrActorNotFound):
			h.logger.Warn("POST /reservations - Actor not found: actor_id=%d", actorID)
			handlers.RespondNotFound(w, msgActorNotFound)

		case errors.Is(err, createReservation.ErrPoolNotFound):
			h.logger.Warn("POST /reservations - Pool not found: pool_id=%d", req.PoolID)
			handlers.RespondNotFound(w, msgPoolNotFound)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: actor_id=%d, pool_id=%d, error=%v",
				actorID, req.PoolID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, actor_id=%d, resource_id=%d",
		result.ID, actorID, result.ResourceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
