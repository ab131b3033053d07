package approve_reservation

import (
	"context"

	approveReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/approve_reservation"
)

type ApproveReservationUseCase interface {
	Approve(ctx context.Context, req *approveReservation.Request) (*approveReservation.ApproveResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
