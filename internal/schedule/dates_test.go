package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-03-07", "07/03/2024", "07/03/24", " 07/03/2024 ", "2024-03-07T18:30:00-03:00"} {
		got, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q) failed: %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseDate("31/02/2024"); !errors.Is(err, ErrInput) {
		t.Errorf("Expected input error, got %v", err)
	}
}

func TestParseHolidays(t *testing.T) {
	text := "25/12/2024\n\n01/01/2025\nnot a date\n25/12/2024\n 21/04/2025 \n2025/13/01"

	holidays, errs := ParseHolidays(text)

	if len(holidays) != 3 {
		t.Fatalf("Expected 3 unique holidays, got %d: %v", len(holidays), holidays)
	}
	if !holidays[0].Equal(time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected sorted output, first = %v", holidays[0])
	}

	if len(errs) != 2 {
		t.Fatalf("Expected 2 invalid lines, got %d", len(errs))
	}
	if errs[0].Line != 4 || errs[0].Text != "not a date" {
		t.Errorf("Unexpected first error: %+v", errs[0])
	}
	if errs[1].Line != 7 {
		t.Errorf("Expected second error on line 7, got %d", errs[1].Line)
	}
	if !errors.Is(errs[0], ErrInput) {
		t.Errorf("HolidayError must wrap ErrInput")
	}
}
