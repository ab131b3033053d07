package list_pools

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
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

// Handle GET /api/v1/pools
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListPools(r.Context())
	if err != nil {
		h.logger.Error("GET /pools - Failed to list pools: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /pools - Retrieved %d pools", len(result.Pools))
	handlers.RespondJSON(w, http.StatusOK, result)
}
