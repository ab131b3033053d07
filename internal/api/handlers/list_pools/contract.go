package list_pools

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
)

type CatalogService interface {
	ListPools(ctx context.Context) (*models.PoolListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
