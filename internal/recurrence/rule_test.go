package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRule_Daily(t *testing.T) {
	rule, err := ParseRule("FREQ=DAILY")
	require.NoError(t, err)

	assert.Equal(t, FrequencyDaily, rule.Freq)
	assert.Equal(t, 1, rule.Interval)
	assert.Empty(t, rule.Weekdays)
	assert.Zero(t, rule.Count)
	assert.Nil(t, rule.Until)
}

func TestParseRule_WeeklyWithByDay(t *testing.T) {
	rule, err := ParseRule("FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE,FR")
	require.NoError(t, err)

	assert.Equal(t, FrequencyWeekly, rule.Freq)
	assert.Equal(t, 2, rule.Interval)
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, rule.Weekdays)
}

func TestParseRule_CountAndUntil(t *testing.T) {
	rule, err := ParseRule("FREQ=MONTHLY;COUNT=6;UNTIL=20261231T000000Z")
	require.NoError(t, err)

	assert.Equal(t, FrequencyMonthly, rule.Freq)
	assert.Equal(t, 6, rule.Count)
	require.NotNil(t, rule.Until)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), *rule.Until)
}

func TestParseRule_UntilDateOnly(t *testing.T) {
	rule, err := ParseRule("FREQ=DAILY;UNTIL=20260601")
	require.NoError(t, err)

	require.NotNil(t, rule.Until)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), *rule.Until)
}

func TestParseRule_LowercaseComponents(t *testing.T) {
	rule, err := ParseRule("freq=weekly;byday=mo")
	require.NoError(t, err)

	assert.Equal(t, FrequencyWeekly, rule.Freq)
	assert.Equal(t, []time.Weekday{time.Monday}, rule.Weekdays)
}

func TestParseRule_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"missing freq", "INTERVAL=2"},
		{"unsupported freq", "FREQ=YEARLY"},
		{"malformed component", "FREQ=DAILY;INTERVAL"},
		{"empty value", "FREQ=DAILY;COUNT="},
		{"zero interval", "FREQ=DAILY;INTERVAL=0"},
		{"negative count", "FREQ=DAILY;COUNT=-1"},
		{"bad until", "FREQ=DAILY;UNTIL=tomorrow"},
		{"unknown weekday", "FREQ=WEEKLY;BYDAY=XX"},
		{"byday without weekly", "FREQ=DAILY;BYDAY=MO"},
		{"unknown component", "FREQ=DAILY;FOO=1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRule(tc.raw)
			assert.ErrorIs(t, err, ErrInvalidRule)
		})
	}
}
