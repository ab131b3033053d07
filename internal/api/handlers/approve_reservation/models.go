package approve_reservation

import (
	"time"

	approveReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/approve_reservation"
)

// ReservationResponse подтвержденное бронирование
type ReservationResponse struct {
	ID            int64   `json:"id"`
	ResourceID    int64   `json:"resourceId"`
	PoolID        int64   `json:"poolId"`
	ActorType     string  `json:"actorType"`
	ActorID       int64   `json:"actorId"`
	EventType     string  `json:"eventType"`
	Reason        string  `json:"reason"`
	StartAt       string  `json:"startAt"`
	EndAt         string  `json:"endAt"`
	Status        string  `json:"status"`
	RRule         *string `json:"rrule,omitempty"`
	RecurrenceEnd *string `json:"recurrenceEnd,omitempty"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ApproveResponse HTTP response model
type ApproveResponse struct {
	Reservation     *ReservationResponse `json:"reservation"`
	AutoRejectedIDs []int64              `json:"autoRejectedIds"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *approveReservation.ApproveResponse) *ApproveResponse {
	view := resp.Reservation

	var recurrenceEnd *string
	if view.RecurrenceEnd != nil {
		formatted := view.RecurrenceEnd.Format(time.RFC3339)
		recurrenceEnd = &formatted
	}

	autoRejected := resp.AutoRejectedIDs
	if autoRejected == nil {
		autoRejected = []int64{}
	}

	return &ApproveResponse{
		Reservation: &ReservationResponse{
			ID:            view.ID,
			ResourceID:    view.ResourceID,
			PoolID:        view.PoolID,
			ActorType:     view.ActorType,
			ActorID:       view.ActorID,
			EventType:     view.EventType,
			Reason:        view.Reason,
			StartAt:       view.StartAt.Format(time.RFC3339),
			EndAt:         view.EndAt.Format(time.RFC3339),
			Status:        view.Status,
			RRule:         view.RRule,
			RecurrenceEnd: recurrenceEnd,
			UpdatedAt:     view.UpdatedAt.Format(time.RFC3339),
		},
		AutoRejectedIDs: autoRejected,
	}
}
