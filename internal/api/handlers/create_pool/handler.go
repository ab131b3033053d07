package create_pool

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog"
	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidPool        = "некорректные параметры пула"
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

// Handle POST /api/v1/pools
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /pools - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreatePoolRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pools - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreatePool(r.Context(), &models.CreatePoolRequest{
		AdminID:  adminID,
		Name:     req.Name,
		Kind:     req.Kind,
		Capacity: req.Capacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /pools - Invalid pool params: admin_id=%d, error=%v", adminID, err)
			handlers.RespondBadRequest(w, msgInvalidPool)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /pools - Access denied: admin_id=%d", adminID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /pools - Failed to create pool: admin_id=%d, error=%v", adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pools - Pool created: pool_id=%d, admin_id=%d, capacity=%d", result.ID, adminID, result.Capacity)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
