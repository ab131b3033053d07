package check_out

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/checkins/models"
)

type CheckInService interface {
	CheckOut(ctx context.Context, req *models.CheckOutRequest) (*models.CheckInResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
