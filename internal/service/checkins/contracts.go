package checkins

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/accountservice"
)

// CheckInRepository интерфейс репозитория чек-инов
type CheckInRepository interface {
	Create(ctx context.Context, c *domain.CheckIn) (*domain.CheckIn, error)
	GetOpenByActor(ctx context.Context, actor domain.Actor) (*domain.CheckIn, error)
	Close(ctx context.Context, id int64, checkOutTime time.Time) error
	ListOpen(ctx context.Context) ([]*domain.CheckIn, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64, forUpdate bool) (*domain.Reservation, error)
	GetExceptionsByReservationIDs(ctx context.Context, reservationIDs []int64) (map[int64][]domain.ReservationException, error)
}

// AccountServiceClient интерфейс клиента для AccountService
type AccountServiceClient interface {
	GetAccount(ctx context.Context, accountID int64) (*accountservice.Account, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
