package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusApproved  ReservationStatus = "approved"
	StatusRejected  ReservationStatus = "rejected"
	StatusCancelled ReservationStatus = "cancelled"
)

// EventType represents the category of the reserved event
type EventType string

const (
	EventMeeting    EventType = "meeting"
	EventWorkshop   EventType = "workshop"
	EventConference EventType = "conference"
	EventOther      EventType = "other"
)

// ActorType represents the kind of reservable actor
// Currently only persons make reservations; groups are a future extension
type ActorType string

const (
	ActorPerson ActorType = "person"
	ActorGroup  ActorType = "group"
)

// Actor identifies the party holding a reservation or check-in
type Actor struct {
	Type ActorType
	ID   int64
}

// PersonActor returns an Actor for a registered person
func PersonActor(id int64) Actor {
	return Actor{Type: ActorPerson, ID: id}
}

// Reservation represents a booking of one resource by an actor
// A reservation without a recurrence rule covers exactly [StartAt, EndAt);
// with a rule it represents a series bounded by RecurrenceEnd
type Reservation struct {
	ID         int64
	ResourceID int64
	PoolID     int64 // denormalized, pool of the bound resource
	Actor      Actor
	EventType  EventType
	Reason     string

	StartAt time.Time
	EndAt   time.Time

	Status       ReservationStatus
	DenialReason *string

	RRule         *string // RFC-5545-style rule string, nil for single occurrences
	RecurrenceEnd *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRecurring returns true if the reservation has a recurrence rule
func (r *Reservation) IsRecurring() bool {
	return r.RRule != nil && *r.RRule != ""
}

// IsTerminal returns true if no further status transitions are allowed
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected || r.Status == StatusCancelled
}

// IsBlocking returns true if the reservation occupies its resource
// for availability purposes (pending reservations block pessimistically)
func (r *Reservation) IsBlocking() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// CanBeCancelled returns true if the reservation can still be cancelled
// Approved, rejected and cancelled are terminal states
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending
}

// OccupiedUntil returns the instant after which the reservation occupies
// nothing. For a series this is RecurrenceEnd plus the occurrence duration:
// the final occurrence only needs to start before RecurrenceEnd and may run
// past it
func (r *Reservation) OccupiedUntil() time.Time {
	if r.IsRecurring() && r.RecurrenceEnd != nil {
		return r.RecurrenceEnd.Add(r.EndAt.Sub(r.StartAt))
	}
	return r.EndAt
}

// ReservationException cancels a single occurrence of a recurring reservation,
// keyed by the occurrence's original start instant
type ReservationException struct {
	ID              int64
	ReservationID   int64
	OccurrenceStart time.Time
	Cancelled       bool
	CreatedAt       time.Time
}

// ResourceReservationsFilter фильтр для выборки бронирований ресурсов
type ResourceReservationsFilter struct {
	ResourceIDs []int64             // Обязательный параметр - ресурсы пула
	From        *time.Time          // Начало окна (опционально)
	To          *time.Time          // Конец окна (опционально)
	Statuses    []ReservationStatus // Фильтр по статусам (опционально)
	Actor       *Actor              // Фильтр по актору (опционально)
	ForUpdate   bool                // Блокировать выбранные строки (FOR UPDATE)
}
