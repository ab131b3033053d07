package list_open_checkins

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/checkins/models"
)

type CheckInService interface {
	ListOpen(ctx context.Context, adminID int64) (*models.CheckInListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
