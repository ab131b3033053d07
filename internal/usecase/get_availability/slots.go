package get_availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// mergeSlots объединяет вхождения в минимальный набор занятых интервалов
// Пересекающиеся и примыкающие интервалы (a.End == b.Start) схлопываются
// в один непрерывный слот
func mergeSlots(occs []domain.Occurrence) []Slot {
	if len(occs) == 0 {
		return []Slot{}
	}

	intervals := make([]Slot, len(occs))
	for i, occ := range occs {
		intervals[i] = Slot{Start: occ.Start, End: occ.End}
	}

	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].Start.Equal(intervals[j].Start) {
			return intervals[i].End.Before(intervals[j].End)
		}
		return intervals[i].Start.Before(intervals[j].Start)
	})

	merged := make([]Slot, 0, len(intervals))
	current := intervals[0]

	for _, next := range intervals[1:] {
		// Равенство границ тоже считается продолжением слота
		if !next.Start.After(current.End) {
			if next.End.After(current.End) {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)

	return merged
}

// clampToWindow обрезает вхождение границами окна запроса
func clampToWindow(occ domain.Occurrence, from, to time.Time) domain.Occurrence {
	if occ.Start.Before(from) {
		occ.Start = from
	}
	if occ.End.After(to) {
		occ.End = to
	}
	return occ
}
