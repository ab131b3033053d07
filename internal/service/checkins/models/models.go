package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// CheckInRequest запрос на открытие сессии присутствия
type CheckInRequest struct {
	ActorID       int64  `json:"actorId"`
	ReservationID *int64 `json:"reservationId,omitempty"` // Привязка к брони (опционально)
}

// CheckOutRequest запрос на закрытие собственной сессии
type CheckOutRequest struct {
	ActorID   int64 `json:"actorId"`
	CheckInID int64 `json:"checkInId"`
}

// CheckOutByActorRequest запрос администратора на закрытие сессии актора
type CheckOutByActorRequest struct {
	AdminID int64 `json:"adminId"`
	ActorID int64 `json:"actorId"`
}

// Response модели

// CheckInResponse ответ с данными сессии присутствия
type CheckInResponse struct {
	ID            int64      `json:"id"`
	ActorType     string     `json:"actorType"`
	ActorID       int64      `json:"actorId"`
	ReservationID *int64     `json:"reservationId,omitempty"`
	CheckInTime   time.Time  `json:"checkInTime"`
	CheckOutTime  *time.Time `json:"checkOutTime,omitempty"`
}

// CheckInListResponse ответ со списком открытых сессий
type CheckInListResponse struct {
	CheckIns []*CheckInResponse `json:"checkIns"`
}

// FromDomainCheckIn конвертирует доменную модель в response
func FromDomainCheckIn(c *domain.CheckIn) *CheckInResponse {
	return &CheckInResponse{
		ID:            c.ID,
		ActorType:     string(c.Actor.Type),
		ActorID:       c.Actor.ID,
		ReservationID: c.ReservationID,
		CheckInTime:   c.CheckInTime,
		CheckOutTime:  c.CheckOutTime,
	}
}

// FromDomainCheckInList конвертирует список доменных моделей в response
func FromDomainCheckInList(list []*domain.CheckIn) *CheckInListResponse {
	resp := &CheckInListResponse{
		CheckIns: make([]*CheckInResponse, 0, len(list)),
	}
	for _, c := range list {
		resp.CheckIns = append(resp.CheckIns, FromDomainCheckIn(c))
	}
	return resp
}
