package schedule

import (
	"time"

	"github.com/hearthhq/hearth-api/internal/models"
)

// NextDue returns the next due timestamp for a chore completed (or
// anchored) at from.
//
// daily adds one day and weekly adds seven; both preserve the clock
// time. monthly advances by one calendar month keeping the same
// day-of-month; when the target month is shorter the result clamps to
// the last valid day of that month (Jan 31 -> Feb 29 in a leap year,
// Feb 28 otherwise).
func NextDue(frequency models.ChoreFrequency, from time.Time) time.Time {
	switch frequency {
	case models.FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case models.FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case models.FrequencyMonthly:
		next := from.AddDate(0, 1, 0)
		// AddDate normalizes day overflow into the following month
		// (Jan 31 + 1 month = Mar 2/3). Walk back to the last day of
		// the intended month.
		if next.Day() != from.Day() {
			next = next.AddDate(0, 0, -next.Day())
		}
		return next
	default:
		// Frequency is a closed enum validated upstream.
		return from
	}
}
