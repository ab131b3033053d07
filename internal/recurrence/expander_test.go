package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

func reservation(start, end time.Time, rrule string, recurrenceEnd *time.Time) *domain.Reservation {
	res := &domain.Reservation{
		ID:         42,
		ResourceID: 7,
		Actor:      domain.PersonActor(100),
		Status:     domain.StatusPending,
		StartAt:    start,
		EndAt:      end,
	}
	if rrule != "" {
		res.RRule = ptr.Ptr(rrule)
		res.RecurrenceEnd = recurrenceEnd
	}
	return res
}

func TestExpand_SingleOccurrenceInsideWindow(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	res := reservation(start, end, "", nil)

	occs, err := Expand(res, start.Add(-24*time.Hour), end.Add(24*time.Hour), nil)
	require.NoError(t, err)

	require.Len(t, occs, 1)
	assert.Equal(t, start, occs[0].Start)
	assert.Equal(t, end, occs[0].End)
	assert.Equal(t, res.ID, occs[0].ReservationID)
}

func TestExpand_SingleOccurrenceOutsideWindow(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	res := reservation(start, start.Add(time.Hour), "", nil)

	occs, err := Expand(res, start.Add(48*time.Hour), start.Add(72*time.Hour), nil)
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestExpand_BoundaryTouchIsNotOverlap(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	res := reservation(start, end, "", nil)

	// Окно начинается ровно в конце вхождения
	occs, err := Expand(res, end, end.Add(time.Hour), nil)
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestExpand_EmptyWindow(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	res := reservation(start, start.Add(time.Hour), "", nil)

	occs, err := Expand(res, start, start, nil)
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestExpand_DailySeries(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // понедельник
	end := start.Add(time.Hour)
	seriesEnd := start.AddDate(0, 0, 5)
	res := reservation(start, end, "FREQ=DAILY", &seriesEnd)

	occs, err := Expand(res, start, start.AddDate(0, 0, 30), nil)
	require.NoError(t, err)

	require.Len(t, occs, 5)
	for i, occ := range occs {
		assert.Equal(t, start.AddDate(0, 0, i), occ.Start)
		assert.Equal(t, time.Hour, occ.End.Sub(occ.Start))
	}
}

func TestExpand_DailyInterval(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	seriesEnd := start.AddDate(0, 0, 7)
	res := reservation(start, start.Add(time.Hour), "FREQ=DAILY;INTERVAL=2", &seriesEnd)

	occs, err := Expand(res, start, seriesEnd, nil)
	require.NoError(t, err)

	require.Len(t, occs, 4)
	assert.Equal(t, start, occs[0].Start)
	assert.Equal(t, start.AddDate(0, 0, 2), occs[1].Start)
	assert.Equal(t, start.AddDate(0, 0, 4), occs[2].Start)
	assert.Equal(t, start.AddDate(0, 0, 6), occs[3].Start)
}

func TestExpand_WeeklyByDay(t *testing.T) {
	// Понедельник 2 марта 2026
	start := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	seriesEnd := start.AddDate(0, 0, 14)
	res := reservation(start, start.Add(time.Hour), "FREQ=WEEKLY;BYDAY=MO,FR", &seriesEnd)

	occs, err := Expand(res, start, seriesEnd, nil)
	require.NoError(t, err)

	require.Len(t, occs, 4)
	assert.Equal(t, time.Monday, occs[0].Start.Weekday())
	assert.Equal(t, time.Friday, occs[1].Start.Weekday())
	assert.Equal(t, time.Monday, occs[2].Start.Weekday())
	assert.Equal(t, time.Friday, occs[3].Start.Weekday())
}

func TestExpand_WeeklyIntervalAnchorsAtSeriesStart(t *testing.T) {
	// Пятница 6 марта 2026. Недели при INTERVAL=2 считаются блоками по
	// 7 дней от начала серии: понедельник 9 марта попадает в первый блок
	// вместе с пятницей 6-го, хотя календарная неделя уже следующая
	start := time.Date(2026, 3, 6, 14, 0, 0, 0, time.UTC)
	seriesEnd := start.AddDate(0, 0, 21)
	res := reservation(start, start.Add(time.Hour), "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,FR", &seriesEnd)

	occs, err := Expand(res, start, seriesEnd, nil)
	require.NoError(t, err)

	require.Len(t, occs, 4)
	assert.Equal(t, start, occs[0].Start)
	assert.Equal(t, start.AddDate(0, 0, 3), occs[1].Start)  // понедельник, блок 0
	assert.Equal(t, start.AddDate(0, 0, 14), occs[2].Start) // пятница, блок 2
	assert.Equal(t, start.AddDate(0, 0, 17), occs[3].Start) // понедельник, блок 2
}

func TestExpand_WeeklyDefaultsToSeriesWeekday(t *testing.T) {
	start := time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC) // среда
	seriesEnd := start.AddDate(0, 0, 21)
	res := reservation(start, start.Add(time.Hour), "FREQ=WEEKLY", &seriesEnd)

	occs, err := Expand(res, start, seriesEnd, nil)
	require.NoError(t, err)

	require.Len(t, occs, 3)
	for _, occ := range occs {
		assert.Equal(t, time.Wednesday, occ.Start.Weekday())
	}
}

func TestExpand_MonthlySkipsShortMonths(t *testing.T) {
	// Серия по 31-м числам: февраль и апрель пропускаются
	start := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)
	seriesEnd := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	res := reservation(start, start.Add(time.Hour), "FREQ=MONTHLY", &seriesEnd)

	occs, err := Expand(res, start, seriesEnd, nil)
	require.NoError(t, err)

	require.Len(t, occs, 3)
	assert.Equal(t, time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC), occs[0].Start)
	assert.Equal(t, time.Date(2026, 3, 31, 10, 0, 0, 0, time.UTC), occs[1].Start)
	assert.Equal(t, time.Date(2026, 5, 31, 10, 0, 0, 0, time.UTC), occs[2].Start)
}

func TestExpand_CountLimitsSeries(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	seriesEnd := start.AddDate(0, 0, 30)
	res := reservation(start, start.Add(time.Hour), "FREQ=DAILY;COUNT=3", &seriesEnd)

	occs, err := Expand(res, start, seriesEnd, nil)
	require.NoError(t, err)
	assert.Len(t, occs, 3)
}

func TestExpand_UntilClipsSeries(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	seriesEnd := start.AddDate(0, 0, 30)
	res := reservation(start, start.Add(time.Hour), "FREQ=DAILY;UNTIL=20260305T000000Z", &seriesEnd)

	occs, err := Expand(res, start, seriesEnd, nil)
	require.NoError(t, err)
	// 2, 3 и 4 марта; 5 марта уже за UNTIL
	assert.Len(t, occs, 3)
}

func TestExpand_CancelledExceptionsRemoveOccurrences(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	seriesEnd := start.AddDate(0, 0, 5)
	res := reservation(start, start.Add(time.Hour), "FREQ=DAILY", &seriesEnd)

	exceptions := []domain.ReservationException{
		{ReservationID: res.ID, OccurrenceStart: start.AddDate(0, 0, 1), Cancelled: true},
		{ReservationID: res.ID, OccurrenceStart: start.AddDate(0, 0, 3), Cancelled: true},
		// Неотменённое исключение вхождение не удаляет
		{ReservationID: res.ID, OccurrenceStart: start.AddDate(0, 0, 2), Cancelled: false},
	}

	occs, err := Expand(res, start, seriesEnd, exceptions)
	require.NoError(t, err)

	require.Len(t, occs, 3)
	assert.Equal(t, start, occs[0].Start)
	assert.Equal(t, start.AddDate(0, 0, 2), occs[1].Start)
	assert.Equal(t, start.AddDate(0, 0, 4), occs[2].Start)
}

func TestExpand_WindowClipsSeries(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	seriesEnd := start.AddDate(0, 0, 10)
	res := reservation(start, start.Add(time.Hour), "FREQ=DAILY", &seriesEnd)

	// Окно покрывает только 4-й и 5-й дни серии
	windowStart := start.AddDate(0, 0, 3)
	windowEnd := start.AddDate(0, 0, 5)

	occs, err := Expand(res, windowStart, windowEnd, nil)
	require.NoError(t, err)

	require.Len(t, occs, 2)
	assert.Equal(t, start.AddDate(0, 0, 3), occs[0].Start)
	assert.Equal(t, start.AddDate(0, 0, 4), occs[1].Start)
}

func TestExpand_WallClockStableAcrossDST(t *testing.T) {
	// Переход на летнее время 8 марта 2026 в США
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	start := time.Date(2026, 3, 5, 10, 0, 0, 0, loc)
	seriesEnd := start.AddDate(0, 0, 10)
	res := reservation(start, start.Add(time.Hour), "FREQ=DAILY", &seriesEnd)

	occs, err := Expand(res, start, seriesEnd, nil)
	require.NoError(t, err)

	for _, occ := range occs {
		local := occ.Start.In(loc)
		assert.Equal(t, 10, local.Hour())
		assert.Equal(t, 0, local.Minute())
	}
}

func TestExpand_InvalidStoredRule(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	seriesEnd := start.AddDate(0, 0, 5)
	res := reservation(start, start.Add(time.Hour), "FREQ=HOURLY", &seriesEnd)

	_, err := Expand(res, start, seriesEnd, nil)
	assert.ErrorIs(t, err, ErrInvalidRule)
}
