package recurrence

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Expand разворачивает бронирование в конкретные вхождения внутри окна
// [windowStart, windowEnd). Чистая проекция: не мутирует бронирование и
// может вызываться повторно с разными окнами
//
// Для брони без правила повторения возвращается ровно одно вхождение,
// если [StartAt, EndAt) пересекает окно. Для повторяющейся брони кандидаты
// генерируются от StartAt до min(RecurrenceEnd, UNTIL, windowEnd); каждое
// вхождение имеет ту же длительность, что и исходный интервал. Вхождения,
// чьё начало совпадает с отменённым исключением, отбрасываются
func Expand(
	res *domain.Reservation,
	windowStart, windowEnd time.Time,
	exceptions []domain.ReservationException,
) ([]domain.Occurrence, error) {
	// Пустое или вырожденное окно не содержит вхождений
	if !windowEnd.After(windowStart) {
		return []domain.Occurrence{}, nil
	}

	if !res.IsRecurring() {
		if domain.Overlaps(res.StartAt, res.EndAt, windowStart, windowEnd) {
			return []domain.Occurrence{occurrenceAt(res, res.StartAt, res.EndAt)}, nil
		}
		return []domain.Occurrence{}, nil
	}

	rule, err := ParseRule(*res.RRule)
	if err != nil {
		return nil, err
	}

	duration := res.EndAt.Sub(res.StartAt)
	if duration <= 0 {
		return nil, fmt.Errorf("%w: reservation duration must be positive", ErrInvalidRule)
	}

	// Верхняя граница генерации: окно запроса, ограниченное концом серии
	upperBound := windowEnd
	if res.RecurrenceEnd != nil && res.RecurrenceEnd.Before(upperBound) {
		upperBound = *res.RecurrenceEnd
	}
	if rule.Until != nil && rule.Until.Before(upperBound) {
		upperBound = *rule.Until
	}

	cancelled := make(map[int64]struct{}, len(exceptions))
	for _, exc := range exceptions {
		if exc.Cancelled {
			cancelled[exc.OccurrenceStart.UnixNano()] = struct{}{}
		}
	}

	occurrences := make([]domain.Occurrence, 0)
	generated := 0

	for _, start := range candidates(rule, res.StartAt, upperBound) {
		generated++
		if rule.Count > 0 && generated > rule.Count {
			break
		}

		end := start.Add(duration)
		if !domain.Overlaps(start, end, windowStart, windowEnd) {
			continue
		}
		if _, ok := cancelled[start.UnixNano()]; ok {
			continue
		}

		occurrences = append(occurrences, occurrenceAt(res, start, end))
	}

	return occurrences, nil
}

// candidates генерирует начала вхождений серии от baseStart до upperBound
// (не включая его). Время суток каждого кандидата повторно привязывается к
// календарной дате в таймзоне начала серии, чтобы переход на летнее время
// не сдвигал локальное время вхождений
func candidates(rule *Rule, baseStart, upperBound time.Time) []time.Time {
	loc := baseStart.Location()
	starts := make([]time.Time, 0)

	switch rule.Freq {
	case FrequencyDaily:
		for day := 0; ; day += rule.Interval {
			candidate := addDays(baseStart, day, loc)
			if !candidate.Before(upperBound) {
				break
			}
			starts = append(starts, candidate)
		}

	case FrequencyWeekly:
		weekdaySet := make(map[time.Weekday]struct{}, len(rule.Weekdays))
		for _, day := range rule.Weekdays {
			weekdaySet[day] = struct{}{}
		}
		if len(weekdaySet) == 0 {
			weekdaySet[baseStart.Weekday()] = struct{}{}
		}

		// Недели при INTERVAL > 1 считаются блоками по 7 дней от начала
		// серии, а не календарными неделями (WKST): набор BYDAY,
		// охватывающий день недели начала серии, следует этим блокам
		for day := 0; ; day++ {
			candidate := addDays(baseStart, day, loc)
			if !candidate.Before(upperBound) {
				break
			}
			if (day/7)%rule.Interval != 0 {
				continue
			}
			if _, ok := weekdaySet[candidate.Weekday()]; !ok {
				continue
			}
			starts = append(starts, candidate)
		}

	case FrequencyMonthly:
		for month := 0; ; month += rule.Interval {
			candidate := time.Date(
				baseStart.Year(), baseStart.Month()+time.Month(month), baseStart.Day(),
				baseStart.Hour(), baseStart.Minute(), baseStart.Second(), baseStart.Nanosecond(),
				loc,
			)
			if !candidate.Before(upperBound) {
				break
			}
			// time.Date нормализует переполнение (31 апреля -> 1 мая);
			// такие месяцы пропускаются
			if candidate.Day() != baseStart.Day() {
				continue
			}
			starts = append(starts, candidate)
		}
	}

	return starts
}

// addDays сдвигает дату на days дней, сохраняя локальное время суток
func addDays(base time.Time, days int, loc *time.Location) time.Time {
	y, m, d := base.Date()
	return time.Date(y, m, d+days, base.Hour(), base.Minute(), base.Second(), base.Nanosecond(), loc)
}

func occurrenceAt(res *domain.Reservation, start, end time.Time) domain.Occurrence {
	return domain.Occurrence{
		ReservationID: res.ID,
		Start:         start,
		End:           end,
		Status:        res.Status,
		Actor:         res.Actor,
		Reason:        res.Reason,
	}
}
