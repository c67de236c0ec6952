package expenses

import (
	"testing"
	"time"

	"github.com/cdy-agency/api-sky-solutions/internal/domain"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate(t *testing.T) {
	cases := []struct {
		name      string
		current   time.Time
		frequency string
		value     int
		want      time.Time
	}{
		{"seven days", date(2024, time.January, 10), domain.FrequencyDays, 7, date(2024, time.January, 17)},
		{"days defaults to one", date(2024, time.January, 10), domain.FrequencyDays, 0, date(2024, time.January, 11)},
		{"month", date(2024, time.January, 1), domain.FrequencyMonth, 0, date(2024, time.February, 1)},
		{"month rollover from Jan 31", date(2024, time.January, 31), domain.FrequencyMonth, 0, date(2024, time.March, 2)},
		{"quarter", date(2024, time.January, 15), domain.FrequencyQuarter, 0, date(2024, time.April, 15)},
		{"half", date(2024, time.January, 15), domain.FrequencyHalf, 0, date(2024, time.July, 15)},
		{"year", date(2024, time.February, 29), domain.FrequencyYear, 0, date(2025, time.March, 1)},
		{"unknown falls back to month", date(2024, time.January, 1), "fortnight", 0, date(2024, time.February, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextDueDate(tc.current, tc.frequency, tc.value)
			assert.True(t, got.Equal(tc.want), "got %s want %s", got, tc.want)
			// Deterministic: same inputs, same output.
			assert.True(t, got.Equal(NextDueDate(tc.current, tc.frequency, tc.value)))
		})
	}
}

func TestValidFrequency(t *testing.T) {
	for _, f := range []string{"days", "month", "quarter", "half", "year"} {
		assert.True(t, ValidFrequency(f), f)
	}
	assert.False(t, ValidFrequency("weekly"))
	assert.False(t, ValidFrequency(""))
}
