package domain

import "time"

// CheckIn represents a physical presence record
// Invariant: at most one open check-in (CheckOutTime == nil) per actor
type CheckIn struct {
	ID            int64
	Actor         Actor
	ReservationID *int64 // optional reference to an approved reservation
	CheckInTime   time.Time
	CheckOutTime  *time.Time
}

// IsOpen returns true if the check-in has not been closed yet
func (c *CheckIn) IsOpen() bool {
	return c.CheckOutTime == nil
}
