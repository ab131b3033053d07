package list_open_checkins

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/checkins"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/checkins/open
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /checkins/open - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListOpen(r.Context(), adminID)
	if err != nil {
		switch {
		case errors.Is(err, checkins.ErrAccessDenied):
			h.logger.Warn("GET /checkins/open - Access denied: admin_id=%d", adminID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /checkins/open - Failed to list open check-ins: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /checkins/open - Retrieved %d open check-ins: admin_id=%d", len(result.CheckIns), adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
