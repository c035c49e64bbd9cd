package schedule

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// DateLayout is the canonical date encoding used in files and logs.
const DateLayout = "2006-01-02"

// Accepted layouts, tried in order. The day-first forms are what the
// planning tool exports.
var dateLayouts = []string{
	DateLayout,
	"02/01/2006",
	"02/01/06",
	time.RFC3339,
}

// DateOf strips the time of day and location, keeping the calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts ISO and day-first dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q (use DD/MM/YYYY or YYYY-MM-DD)", ErrInput, s)
}

// HolidayError reports a single holiday entry that could not be parsed.
type HolidayError struct {
	Line int    `json:"line"`
	Text string `json:"text"`
	Err  error  `json:"-"`
}

func (e *HolidayError) Error() string {
	return fmt.Sprintf("holiday line %d: %v", e.Line, e.Err)
}

func (e *HolidayError) Unwrap() error { return e.Err }

// ParseHolidays reads one DD/MM/YYYY date per line. Blank lines are ignored,
// invalid lines are reported and skipped, duplicates collapse. The result is
// sorted.
func ParseHolidays(text string) ([]time.Time, []*HolidayError) {
	return ParseHolidayList(strings.Split(text, "\n"))
}

// ParseHolidayList is ParseHolidays over pre-split entries.
func ParseHolidayList(entries []string) ([]time.Time, []*HolidayError) {
	seen := make(map[time.Time]bool)
	var holidays []time.Time
	var errs []*HolidayError

	for i, raw := range entries {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		d, err := ParseDate(entry)
		if err != nil {
			errs = append(errs, &HolidayError{Line: i + 1, Text: entry, Err: err})
			continue
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		holidays = append(holidays, d)
	}

	slices.SortFunc(holidays, func(a, b time.Time) int {
		return a.Compare(b)
	})
	return holidays, errs
}
