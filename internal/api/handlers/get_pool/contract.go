package get_pool

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
)

type CatalogService interface {
	GetPool(ctx context.Context, poolID int64) (*models.PoolDetailsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
