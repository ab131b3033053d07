package check_in

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/checkins/models"
)

type CheckInService interface {
	CheckIn(ctx context.Context, req *models.CheckInRequest) (*models.CheckInResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
