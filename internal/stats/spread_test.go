package stats

import (
	"errors"
	"math"
	"testing"
	"time"

	"scurve-mcp/internal/schedule"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func floatPtr(f float64) *float64 { return &f }

func weekTask() schedule.Task {
	return schedule.Task{
		Name:             "A",
		BaselineStart:    date("2024-01-01"), // Monday
		BaselineEnd:      date("2024-01-05"), // Friday
		BaselineDuration: 5,
		Cost:             500,
	}
}

func TestSpread_SingleWeekTask(t *testing.T) {
	series, err := Spread([]schedule.Task{weekTask()}, nil, Week)
	if err != nil {
		t.Fatalf("Spread failed: %v", err)
	}

	// Domain is extended one week back: 25/12 to 05/01 on business days.
	if series.Len() != 10 {
		t.Fatalf("Expected 10 business days, got %d", series.Len())
	}
	if !series.Days[0].Equal(date("2023-12-25")) {
		t.Errorf("Expected domain to start 2023-12-25, got %s", series.Days[0].Format("2006-01-02"))
	}

	for i, d := range series.Days {
		want := 0.0
		if !d.Before(date("2024-01-01")) {
			want = 100
		}
		if series.Cost[i] != want {
			t.Errorf("%s: expected %.2f, got %.2f", d.Format("2006-01-02"), want, series.Cost[i])
		}
	}

	if series.Total() != 500 {
		t.Errorf("Expected total 500, got %.2f", series.Total())
	}
}

func TestSpread_HolidayExclusion(t *testing.T) {
	series, err := Spread([]schedule.Task{weekTask()}, []time.Time{date("2024-01-03")}, Week)
	if err != nil {
		t.Fatalf("Spread failed: %v", err)
	}
	if series.Total() != 400 {
		t.Errorf("Expected total 400 after excluding the holiday, got %.2f", series.Total())
	}
	for i, d := range series.Days {
		if d.Equal(date("2024-01-03")) && series.Cost[i] != 0 {
			t.Errorf("Holiday carried cost %.2f", series.Cost[i])
		}
	}
}

func TestSpread_HolidayTimeOfDayIgnored(t *testing.T) {
	holiday := time.Date(2024, 1, 3, 15, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	series, err := Spread([]schedule.Task{weekTask()}, []time.Time{holiday}, Week)
	if err != nil {
		t.Fatalf("Spread failed: %v", err)
	}
	if series.Total() != 400 {
		t.Errorf("Expected total 400, got %.2f", series.Total())
	}
}

func TestSpread_OneDayTaskOnHoliday(t *testing.T) {
	task := schedule.Task{
		Name:             "Holiday work",
		BaselineStart:    date("2024-01-03"),
		BaselineEnd:      date("2024-01-03"),
		BaselineDuration: 1,
		Cost:             250,
	}
	series, err := Spread([]schedule.Task{task}, []time.Time{date("2024-01-03")}, Month)
	if err != nil {
		t.Fatalf("Spread failed: %v", err)
	}
	if series.Total() != 0 {
		t.Errorf("Expected no cost, got %.2f", series.Total())
	}
}

func TestSpread_WeekendOnlyTaskContributesNothing(t *testing.T) {
	weekend := schedule.Task{
		Name:             "Weekend",
		BaselineStart:    date("2024-01-06"),
		BaselineEnd:      date("2024-01-07"),
		BaselineDuration: 2,
		Cost:             999,
	}
	series, err := Spread([]schedule.Task{weekTask(), weekend}, nil, Week)
	if err != nil {
		t.Fatalf("Spread failed: %v", err)
	}
	if series.Total() != 500 {
		t.Errorf("Expected only the weekday task cost 500, got %.2f", series.Total())
	}
}

func TestSpread_OverlappingTasksSum(t *testing.T) {
	b := weekTask()
	b.Name = "B"
	b.Cost = 250 // 50 per day

	series, err := Spread([]schedule.Task{weekTask(), b}, nil, Week)
	if err != nil {
		t.Fatalf("Spread failed: %v", err)
	}
	last := series.Cost[series.Len()-1]
	if last != 150 {
		t.Errorf("Expected 150 on the shared day, got %.2f", last)
	}

	reversed, err := Spread([]schedule.Task{b, weekTask()}, nil, Week)
	if err != nil {
		t.Fatalf("Spread failed: %v", err)
	}
	for i := range series.Cost {
		if series.Cost[i] != reversed.Cost[i] {
			t.Errorf("Task order changed day %d: %.4f vs %.4f", i, series.Cost[i], reversed.Cost[i])
		}
	}
}

func TestSpread_MonthExtension(t *testing.T) {
	series, err := Spread([]schedule.Task{weekTask()}, nil, Month)
	if err != nil {
		t.Fatalf("Spread failed: %v", err)
	}
	if !series.Days[0].Equal(date("2023-12-01")) {
		t.Errorf("Expected domain to start 2023-12-01, got %s", series.Days[0].Format("2006-01-02"))
	}
}

func TestSpread_MonthExtensionEndOfMonth(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		first string
	}{
		{"ThirtyFirst", "2024-05-31", "2024-05-31", "2024-04-30"},
		{"MarchThirtiethNonLeap", "2025-03-30", "2025-03-31", "2025-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := schedule.Task{
				Name:             "A",
				BaselineStart:    date(tt.start),
				BaselineEnd:      date(tt.end),
				BaselineDuration: 1,
				Cost:             100,
			}
			series, err := Spread([]schedule.Task{task}, nil, Month)
			if err != nil {
				t.Fatalf("Spread failed: %v", err)
			}
			if !series.Days[0].Equal(date(tt.first)) {
				t.Errorf("Expected domain to start %s, got %s", tt.first, series.Days[0].Format("2006-01-02"))
			}

			curve, err := BuildSCurve([]schedule.Task{task}, nil, Month, DefaultShapes())
			if err != nil {
				t.Fatalf("BuildSCurve failed: %v", err)
			}
			if len(curve.Buckets) != 2 {
				t.Errorf("Expected 2 monthly buckets, got %d", len(curve.Buckets))
			}
		})
	}
}

func TestSpread_SummaryRowsSkipped(t *testing.T) {
	summary := weekTask()
	summary.Name = "Phase 1"
	summary.Summary = true
	summary.BaselineDuration = 0 // rollups are not validated

	series, err := Spread([]schedule.Task{summary, weekTask()}, nil, Week)
	if err != nil {
		t.Fatalf("Spread failed: %v", err)
	}
	if series.Total() != 500 {
		t.Errorf("Expected summary row to be ignored, got total %.2f", series.Total())
	}
}

func TestSpread_Errors(t *testing.T) {
	zero := weekTask()
	zero.BaselineDuration = 0

	inverted := weekTask()
	inverted.BaselineEnd = date("2023-12-29")

	tests := []struct {
		name  string
		tasks []schedule.Task
		g     Granularity
		want  error
	}{
		{"NoTasks", nil, Week, ErrNoTasks},
		{"OnlySummary", []schedule.Task{{Name: "S", Summary: true}}, Week, ErrNoTasks},
		{"ZeroDuration", []schedule.Task{zero}, Week, ErrDomain},
		{"EndBeforeStart", []schedule.Task{inverted}, Week, ErrDomain},
		{"Granularity", []schedule.Task{weekTask()}, Granularity("day"), ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Spread(tt.tasks, nil, tt.g)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSpread_DailyCostNotRounded(t *testing.T) {
	task := weekTask()
	task.Cost = 100
	task.BaselineDuration = 3

	series, err := Spread([]schedule.Task{task}, nil, Week)
	if err != nil {
		t.Fatalf("Spread failed: %v", err)
	}
	want := 100.0 / 3.0
	if got := series.Cost[series.Len()-1]; math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected %.10f, got %.10f", want, got)
	}
}
