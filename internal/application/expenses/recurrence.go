package expenses

import (
	"time"

	"github.com/cdy-agency/api-sky-solutions/internal/domain"
)

// NextDueDate advances a due date by one recurrence period. Pure and
// deterministic. Calendar-month arithmetic follows Go's AddDate
// normalization, so adding a month to Jan 31 rolls into early March; that
// approximation is accepted rather than pinning "same day next month".
func NextDueDate(current time.Time, frequency string, frequencyValue int) time.Time {
	switch frequency {
	case domain.FrequencyDays:
		if frequencyValue < 1 {
			frequencyValue = 1
		}
		return current.AddDate(0, 0, frequencyValue)
	case domain.FrequencyMonth:
		return current.AddDate(0, 1, 0)
	case domain.FrequencyQuarter:
		return current.AddDate(0, 3, 0)
	case domain.FrequencyHalf:
		return current.AddDate(0, 6, 0)
	case domain.FrequencyYear:
		return current.AddDate(1, 0, 0)
	default:
		// Unrecognized frequencies fall back to monthly.
		return current.AddDate(0, 1, 0)
	}
}

// ValidFrequency reports whether f is a recognised recurrence frequency.
func ValidFrequency(f string) bool {
	switch f {
	case domain.FrequencyDays, domain.FrequencyMonth, domain.FrequencyQuarter, domain.FrequencyHalf, domain.FrequencyYear:
		return true
	}
	return false
}
