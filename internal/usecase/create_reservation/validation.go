package create_reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/recurrence"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.PoolID <= 0 {
		return fmt.Errorf("%w: poolID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	if !domain.IsValidEventType(domain.EventType(req.EventType)) {
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, req.EventType)
	}

	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	// Правило повторения парсится один раз на границе:
	// ошибка парсинга - это ошибка запроса, а не "нет повторений"
	if req.RRule != nil && *req.RRule != "" {
		if _, err := recurrence.ParseRule(*req.RRule); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRecurrenceRule, err)
		}
		if req.RecurrenceEnd == nil {
			return fmt.Errorf("%w: recurrenceEnd is required for recurring reservations", ErrInvalidInput)
		}
		if !req.RecurrenceEnd.After(req.StartAt) {
			return fmt.Errorf("%w: recurrenceEnd must be after startAt", ErrInvalidInput)
		}
	}

	return nil
}

// validateRange проверяет порядок границ интервала
func validateRange(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidRange
	}
	return nil
}

// validateNotPast проверяет, что начало брони не в прошлом
func validateNotPast(start, now time.Time) error {
	if start.Before(now) {
		return ErrPastStart
	}
	return nil
}

// validateBusinessHours проверяет политику рабочих часов:
// будний день (Пн-Пт), начало не раньше открытия, конец не позже закрытия,
// бронь не пересекает границу суток. Все сравнения - в таймзоне площадки
func validateBusinessHours(start, end time.Time, policy BusinessHoursPolicy) error {
	localStart := start.In(policy.Location)
	localEnd := end.In(policy.Location)

	if isWeekend(localStart.Weekday()) || isWeekend(localEnd.Weekday()) {
		return fmt.Errorf("%w: weekdays only", ErrOutsideBusinessHours)
	}

	// Бронь через полночь всегда выходит за время закрытия
	sy, sm, sd := localStart.Date()
	ey, em, ed := localEnd.Date()
	if sy != ey || sm != em || sd != ed {
		return fmt.Errorf("%w: reservation must not cross midnight", ErrOutsideBusinessHours)
	}

	openMinutes, err := policy.Open.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}
	closeMinutes, err := policy.Close.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	// Сравнение с точностью до наносекунды: конец в 18:00:30
	// при закрытии в 18:00 уже выходит за рабочие часы
	if sinceMidnight(localStart) < time.Duration(openMinutes)*time.Minute {
		return fmt.Errorf("%w: starts before opening", ErrOutsideBusinessHours)
	}
	if sinceMidnight(localEnd) > time.Duration(closeMinutes)*time.Minute {
		return fmt.Errorf("%w: ends after closing", ErrOutsideBusinessHours)
	}

	return nil
}

// sinceMidnight возвращает смещение от начала суток в локальном времени t
func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

func isWeekend(day time.Weekday) bool {
	return day == time.Saturday || day == time.Sunday
}

// expandExisting разворачивает существующую бронь в окне конфликта
// Ошибка правила существующей брони - внутренняя: строка уже прошла
// валидацию при создании
func expandExisting(
	res *domain.Reservation,
	windowStart, windowEnd time.Time,
	exceptions map[int64][]domain.ReservationException,
) ([]domain.Occurrence, error) {
	occs, err := recurrence.Expand(res, windowStart, windowEnd, exceptions[res.ID])
	if err != nil {
		if errors.Is(err, recurrence.ErrInvalidRule) {
			return nil, fmt.Errorf("%w: stored reservation id=%d has invalid rule: %v", ErrInternal, res.ID, err)
		}
		return nil, err
	}
	return occs, nil
}
