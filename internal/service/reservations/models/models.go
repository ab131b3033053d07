package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// GetActorReservationsRequest запрос на получение бронирований актора
type GetActorReservationsRequest struct {
	ActorID int64   `json:"actorId"`
	Status  *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// RejectReservationRequest запрос на отклонение бронирования администратором
type RejectReservationRequest struct {
	AdminID      int64  `json:"adminId"`
	DenialReason string `json:"denialReason"`
}

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	RequesterID int64 `json:"requesterId"`
}

// ToDomainReservationStatus конвертирует строку в доменный статус
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(status) {
	case domain.StatusPending, domain.StatusApproved, domain.StatusRejected, domain.StatusCancelled:
		return domain.ReservationStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID            int64      `json:"id"`
	ResourceID    int64      `json:"resourceId"`
	PoolID        int64      `json:"poolId"`
	ActorType     string     `json:"actorType"`
	ActorID       int64      `json:"actorId"`
	EventType     string     `json:"eventType"`
	Reason        string     `json:"reason"`
	StartAt       time.Time  `json:"startAt"`
	EndAt         time.Time  `json:"endAt"`
	Status        string     `json:"status"`
	DenialReason  *string    `json:"denialReason,omitempty"`
	RRule         *string    `json:"rrule,omitempty"`
	RecurrenceEnd *time.Time `json:"recurrenceEnd,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует доменную модель в response
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:            res.ID,
		ResourceID:    res.ResourceID,
		PoolID:        res.PoolID,
		ActorType:     string(res.Actor.Type),
		ActorID:       res.Actor.ID,
		EventType:     string(res.EventType),
		Reason:        res.Reason,
		StartAt:       res.StartAt,
		EndAt:         res.EndAt,
		Status:        string(res.Status),
		DenialReason:  res.DenialReason,
		RRule:         res.RRule,
		RecurrenceEnd: res.RecurrenceEnd,
		CreatedAt:     res.CreatedAt,
		UpdatedAt:     res.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список доменных моделей в response
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]*ReservationResponse, 0, len(list)),
	}
	for _, res := range list {
		resp.Reservations = append(resp.Reservations, FromDomainReservation(res))
	}
	return resp
}
