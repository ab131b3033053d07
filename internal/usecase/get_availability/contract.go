package get_availability

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetWithFilter(ctx context.Context, filter domain.ResourceReservationsFilter) ([]*domain.Reservation, error)
	GetExceptionsByReservationIDs(ctx context.Context, reservationIDs []int64) (map[int64][]domain.ReservationException, error)
}

// CatalogRepository интерфейс каталога ресурсов
type CatalogRepository interface {
	GetPoolByID(ctx context.Context, id int64) (*domain.ResourcePool, error)
	ListByPool(ctx context.Context, poolID int64) ([]*domain.Resource, error)
}

// TransactionManager интерфейс для управления транзакциями
// Используется только read-only режим: обе проекции должны читать
// из единого снапшота
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
