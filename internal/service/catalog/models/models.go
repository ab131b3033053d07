package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// CreatePoolRequest запрос на создание пула ресурсов
type CreatePoolRequest struct {
	AdminID  int64  `json:"adminId"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Capacity int    `json:"capacity"`
}

// Response модели

// PoolResponse ответ с данными пула ресурсов
type PoolResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ResourceResponse ответ с данными единицы ресурса
type ResourceResponse struct {
	ID     int64  `json:"id"`
	PoolID int64  `json:"poolId"`
	Label  string `json:"label"`
}

// PoolDetailsResponse ответ с пулом и его ресурсами
type PoolDetailsResponse struct {
	Pool      *PoolResponse       `json:"pool"`
	Resources []*ResourceResponse `json:"resources"`
}

// PoolListResponse ответ со списком пулов
type PoolListResponse struct {
	Pools []*PoolResponse `json:"pools"`
}

// FromDomainPool конвертирует доменную модель пула в response
func FromDomainPool(pool *domain.ResourcePool) *PoolResponse {
	return &PoolResponse{
		ID:        pool.ID,
		Name:      pool.Name,
		Kind:      string(pool.Kind),
		Capacity:  pool.Capacity,
		CreatedAt: pool.CreatedAt,
		UpdatedAt: pool.UpdatedAt,
	}
}

// FromDomainResource конвертирует доменную модель ресурса в response
func FromDomainResource(res *domain.Resource) *ResourceResponse {
	return &ResourceResponse{
		ID:     res.ID,
		PoolID: res.PoolID,
		Label:  res.Label,
	}
}

// FromDomainPoolList конвертирует список пулов в response
func FromDomainPoolList(pools []*domain.ResourcePool) *PoolListResponse {
	resp := &PoolListResponse{
		Pools: make([]*PoolResponse, 0, len(pools)),
	}
	for _, pool := range pools {
		resp.Pools = append(resp.Pools, FromDomainPool(pool))
	}
	return resp
}
