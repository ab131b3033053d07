package create_pool

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/catalog/models"
)

type CatalogService interface {
	CreatePool(ctx context.Context, req *models.CreatePoolRequest) (*models.PoolResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
