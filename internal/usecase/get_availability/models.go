package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса доступности пула
type Request struct {
	ActorID int64     // Актор, делающий запрос (его вхождения исключаются из занятых слотов)
	PoolID  int64     // ID пула ресурсов
	From    time.Time // Начало окна
	To      time.Time // Конец окна
}

// Slot занятый временной интервал [Start, End)
type Slot struct {
	Start time.Time
	End   time.Time
}

// OccurrenceView вхождение брони актора для отрисовки календаря
type OccurrenceView struct {
	ReservationID int64
	Start         time.Time
	End           time.Time
	Status        string
	Reason        string
}

// Response модель ответа: занятые слоты пула и вхождения самого актора
type Response struct {
	PoolID           int64
	From             time.Time
	To               time.Time
	UnavailableSlots []Slot
	ActorOccurrences []OccurrenceView
}

func toOccurrenceViews(occs []domain.Occurrence) []OccurrenceView {
	views := make([]OccurrenceView, len(occs))
	for i, occ := range occs {
		views[i] = OccurrenceView{
			ReservationID: occ.ReservationID,
			Start:         occ.Start,
			End:           occ.End,
			Status:        string(occ.Status),
			Reason:        occ.Reason,
		}
	}
	return views
}
