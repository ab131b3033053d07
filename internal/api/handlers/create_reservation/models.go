package create_reservation

import (
	"time"

	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	PoolID        int64   `json:"poolId"`
	StartAt       string  `json:"startAt"` // RFC3339
	EndAt         string  `json:"endAt"`   // RFC3339
	Reason        string  `json:"reason"`
	EventType     string  `json:"eventType"`
	RRule         *string `json:"rrule,omitempty"`
	RecurrenceEnd *string `json:"recurrenceEnd,omitempty"` // RFC3339, обязателен при наличии rrule
}

// ReservationResponse HTTP response model
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
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(actorID int64) (*createReservation.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	var recurrenceEnd *time.Time
	if r.RecurrenceEnd != nil {
		parsed, err := time.Parse(time.RFC3339, *r.RecurrenceEnd)
		if err != nil {
			return nil, err
		}
		recurrenceEnd = &parsed
	}

	return &createReservation.Request{
		ActorID:       actorID,
		PoolID:        r.PoolID,
		StartAt:       startAt,
		EndAt:         endAt,
		Reason:        r.Reason,
		EventType:     r.EventType,
		RRule:         r.RRule,
		RecurrenceEnd: recurrenceEnd,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	var recurrenceEnd *string
	if resp.RecurrenceEnd != nil {
		formatted := resp.RecurrenceEnd.Format(time.RFC3339)
		recurrenceEnd = &formatted
	}

	return &ReservationResponse{
		ID:            resp.ID,
		ResourceID:    resp.ResourceID,
		PoolID:        resp.PoolID,
		ActorType:     resp.ActorType,
		ActorID:       resp.ActorID,
		EventType:     resp.EventType,
		Reason:        resp.Reason,
		StartAt:       resp.StartAt.Format(time.RFC3339),
		EndAt:         resp.EndAt.Format(time.RFC3339),
		Status:        resp.Status,
		RRule:         resp.RRule,
		RecurrenceEnd: recurrenceEnd,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
