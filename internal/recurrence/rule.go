package recurrence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidRule возвращается при некорректной или неподдерживаемой строке правила
// Ошибка парсинга никогда не интерпретируется как "нет повторений"
var ErrInvalidRule = errors.New("recurrence: invalid recurrence rule")

// Frequency частота повторения
type Frequency int

const (
	FrequencyDaily Frequency = iota + 1
	FrequencyWeekly
	FrequencyMonthly
)

// Rule структурированное правило повторения, разобранное из строки
// вида "FREQ=WEEKLY;INTERVAL=1;BYDAY=MO,WE,FR;COUNT=10;UNTIL=20251231T000000Z"
// Парсится один раз на границе, дальше используется только структура
type Rule struct {
	Freq     Frequency
	Interval int
	Weekdays []time.Weekday // только для FREQ=WEEKLY; пусто = день недели начала серии
	Count    int            // 0 = без ограничения по количеству
	Until    *time.Time     // nil = без ограничения по дате
}

// untilFormats поддерживаемые форматы значения UNTIL (RFC 5545)
var untilFormats = []string{"20060102T150405Z", "20060102"}

var weekdayNames = map[string]time.Weekday{
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
	"SU": time.Sunday,
}

// ParseRule разбирает строку правила повторения
func ParseRule(raw string) (*Rule, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty rule", ErrInvalidRule)
	}

	rule := &Rule{Interval: 1}

	for _, part := range strings.Split(raw, ";") {
		if part == "" {
			continue
		}

		key, value, found := strings.Cut(part, "=")
		if !found || value == "" {
			return nil, fmt.Errorf("%w: malformed component %q", ErrInvalidRule, part)
		}

		switch strings.ToUpper(key) {
		case "FREQ":
			switch strings.ToUpper(value) {
			case "DAILY":
				rule.Freq = FrequencyDaily
			case "WEEKLY":
				rule.Freq = FrequencyWeekly
			case "MONTHLY":
				rule.Freq = FrequencyMonthly
			default:
				return nil, fmt.Errorf("%w: unsupported frequency %q", ErrInvalidRule, value)
			}

		case "INTERVAL":
			interval, err := strconv.Atoi(value)
			if err != nil || interval < 1 {
				return nil, fmt.Errorf("%w: invalid interval %q", ErrInvalidRule, value)
			}
			rule.Interval = interval

		case "COUNT":
			count, err := strconv.Atoi(value)
			if err != nil || count < 1 {
				return nil, fmt.Errorf("%w: invalid count %q", ErrInvalidRule, value)
			}
			rule.Count = count

		case "UNTIL":
			until, err := parseUntil(value)
			if err != nil {
				return nil, err
			}
			rule.Until = &until

		case "BYDAY":
			for _, name := range strings.Split(value, ",") {
				day, ok := weekdayNames[strings.ToUpper(strings.TrimSpace(name))]
				if !ok {
					return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidRule, name)
				}
				rule.Weekdays = append(rule.Weekdays, day)
			}

		default:
			return nil, fmt.Errorf("%w: unsupported component %q", ErrInvalidRule, key)
		}
	}

	if rule.Freq == 0 {
		return nil, fmt.Errorf("%w: FREQ is required", ErrInvalidRule)
	}
	if len(rule.Weekdays) > 0 && rule.Freq != FrequencyWeekly {
		return nil, fmt.Errorf("%w: BYDAY is only supported with FREQ=WEEKLY", ErrInvalidRule)
	}

	return rule, nil
}

func parseUntil(value string) (time.Time, error) {
	for _, format := range untilFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid UNTIL value %q", ErrInvalidRule, value)
}
