package stats

import (
	"fmt"
	"time"
)

// Granularity selects the bucket period used for aggregation.
type Granularity string

const (
	Week  Granularity = "week"
	Month Granularity = "month"
)

// ParseGranularity accepts the English names and the Portuguese labels the
// planning sheets use ("Semana", "Mês").
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "week", "weekly", "Semana", "semana":
		return Week, nil
	case "month", "monthly", "Mês", "mês", "Mes", "mes":
		return Month, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedGranularity, s)
	}
}

// Valid reports whether g is a supported bucket period.
func (g Granularity) Valid() bool {
	return g == Week || g == Month
}

// SnapToStart normalizes a date to the first day of its bucket. Weeks start
// on Monday.
func SnapToStart(t time.Time, g Granularity) time.Time {
	switch g {
	case Month:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case Week:
		weekday := int(t.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday -> 7
		}
		return time.Date(t.Year(), t.Month(), t.Day()-(weekday-1), 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// StepBack moves t one bucket period earlier. Months clamp to the last day
// of the previous month, so 31/05 steps back to 30/04.
func StepBack(t time.Time, g Granularity) time.Time {
	switch g {
	case Month:
		prev := time.Date(t.Year(), t.Month()-1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
		day := min(t.Day(), daysIn(prev))
		return time.Date(prev.Year(), prev.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	case Week:
		return t.AddDate(0, 0, -7)
	default:
		return t
	}
}

// Label renders the bucket key: "MM/YY" for months, "DD/MM/YY" of the
// Monday for weeks.
func Label(bucketStart time.Time, g Granularity) string {
	switch g {
	case Month:
		return bucketStart.Format("01/06")
	case Week:
		return bucketStart.Format("02/01/06")
	default:
		return bucketStart.Format("2006-01-02")
	}
}

// IsBusinessDay reports Monday to Friday.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// BusinessDays lists every Monday-Friday date in [start, end], inclusive.
func BusinessDays(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			days = append(days, d)
		}
	}
	return days
}

func daysIn(monthStart time.Time) int {
	return time.Date(monthStart.Year(), monthStart.Month()+1, 0, 0, 0, 0, 0, monthStart.Location()).Day()
}
