package approve_reservation

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/accountservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64, forUpdate bool) (*domain.Reservation, error)
	GetWithFilter(ctx context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error)
	GetExceptionsByReservationIDs(ctx context.Context, reservationIDs []int64) (map[int64][]domain.ReservationException, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Reject(ctx context.Context, id int64, reason string) error
}

// AccountServiceClient интерфейс клиента для AccountService
type AccountServiceClient interface {
	GetAccount(ctx context.Context, accountID int64) (*accountservice.Account, error)
}

// TransactionManager интерфейс для управления транзакциями
// Подтверждение выполняется в сериализуемой транзакции, предпросмотр -
// в read-only: обе ветки считают конфликты одной и той же функцией
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
