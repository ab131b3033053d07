package domain

import "time"

// Occurrence is one concrete time instance derived from a (possibly recurring)
// reservation. Purely computed, never persisted
type Occurrence struct {
	ReservationID int64
	Start         time.Time
	End           time.Time
	Status        ReservationStatus
	Actor         Actor
	Reason        string
}

// Slot is a half-open unavailable time range [Start, End)
type Slot struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) actually intersect. Intervals that merely touch at a
// boundary do not overlap
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// OccurrencesOverlap reports whether any occurrence in a intersects any occurrence in b
func OccurrencesOverlap(a, b []Occurrence) bool {
	for _, x := range a {
		for _, y := range b {
			if Overlaps(x.Start, x.End, y.Start, y.End) {
				return true
			}
		}
	}
	return false
}
