package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

const (
	msgInvalidPoolID = "некорректный ID пула ресурсов"
	msgInvalidWindow = "некорректное окно запроса, ожидаются from и to в формате RFC3339"
	msgMissingUserID = "отсутствует ID пользователя"
	msgPoolNotFound  = "пул ресурсов не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/pools/{poolId}/availability?from=...&to=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	poolID, err := strconv.ParseInt(vars["poolId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /pools/{id}/availability - Invalid pool ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPoolID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /pools/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /pools/{id}/availability - Invalid 'from': %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /pools/{id}/availability - Invalid 'to': %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		ActorID: userID,
		PoolID:  poolID,
		From:    from,
		To:      to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidWindow), errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /pools/{id}/availability - Invalid window: pool_id=%d", poolID)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, getAvailability.ErrPoolNotFound):
			h.logger.Warn("GET /pools/{id}/availability - Pool not found: pool_id=%d", poolID)
			handlers.RespondNotFound(w, msgPoolNotFound)

		default:
			h.logger.Error("GET /pools/{id}/availability - Failed to get availability: pool_id=%d, error=%v", poolID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /pools/{id}/availability - Availability retrieved: pool_id=%d, user_id=%d, busy_slots=%d",
		poolID, userID, len(result.UnavailableSlots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
