package approve_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса операции подтверждения
type Request struct {
	AdminID       int64 // ID администратора (из заголовка аутентификации)
	ReservationID int64 // ID целевого бронирования
}

// PreviewResponse модель ответа предпросмотра: какие pending-брони
// будут автоматически отклонены при подтверждении
type PreviewResponse struct {
	ReservationID int64
	ConflictIDs   []int64
}

// ApproveResponse модель ответа подтверждения
type ApproveResponse struct {
	Reservation     *ReservationView
	AutoRejectedIDs []int64
}

// ReservationView представление подтвержденного бронирования
type ReservationView struct {
	ID            int64
	ResourceID    int64
	PoolID        int64
	ActorType     string
	ActorID       int64
	EventType     string
	Reason        string
	StartAt       time.Time
	EndAt         time.Time
	Status        string
	RRule         *string
	RecurrenceEnd *time.Time
	UpdatedAt     time.Time
}

func fromDomain(res *domain.Reservation) *ReservationView {
	return &ReservationView{
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
		RRule:         res.RRule,
		RecurrenceEnd: res.RecurrenceEnd,
		UpdatedAt:     res.UpdatedAt,
	}
}
