package checkout_by_actor

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/checkins/models"
)

type CheckInService interface {
	CheckOutByActor(ctx context.Context, req *models.CheckOutByActorRequest) (*models.CheckInResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
