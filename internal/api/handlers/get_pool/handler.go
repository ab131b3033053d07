package get_pool

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog"
)

const (
	msgInvalidPoolID = "некорректный ID пула ресурсов"
	msgPoolNotFound  = "пул ресурсов не найден"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/pools/{poolId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	poolID, err := strconv.ParseInt(vars["poolId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /pools/{id} - Invalid pool ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPoolID)
		return
	}

	result, err := h.service.GetPool(r.Context(), poolID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrPoolNotFound):
			h.logger.Warn("GET /pools/{id} - Pool not found: pool_id=%d", poolID)
			handlers.RespondNotFound(w, msgPoolNotFound)

		default:
			h.logger.Error("GET /pools/{id} - Failed to get pool: pool_id=%d, error=%v", poolID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /pools/{id} - Pool retrieved: pool_id=%d, resources=%d", poolID, len(result.Resources))
	handlers.RespondJSON(w, http.StatusOK, result)
}
