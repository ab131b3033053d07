package catalog

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/accountservice"
)

// ResourceRepository интерфейс репозитория каталога ресурсов
type ResourceRepository interface {
	CreatePool(ctx context.Context, pool *domain.ResourcePool) (*domain.ResourcePool, error)
	GetPoolByID(ctx context.Context, id int64) (*domain.ResourcePool, error)
	ListPools(ctx context.Context) ([]*domain.ResourcePool, error)
	ListByPool(ctx context.Context, poolID int64) ([]*domain.Resource, error)
}

// AccountServiceClient интерфейс клиента для AccountService
type AccountServiceClient interface {
	GetAccount(ctx context.Context, accountID int64) (*accountservice.Account, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
