package visuals

import (
	"strings"
	"testing"
	"time"

	"scurve-mcp/internal/stats"
)

func TestGenerateSCurveChart(t *testing.T) {
	if GenerateSCurveChart(stats.SCurve{}) != "" {
		t.Error("Expected empty chart for empty curve")
	}

	curve := stats.SCurve{
		Granularity: stats.Month,
		Buckets: stats.BucketSeries{
			{Label: "12/23", CumulativePercent: 0},
			{Label: "01/24", CumulativePercent: 40, Curve30: 55.5, Curve50: 45, Curve70: 38},
			{Label: "02/24", CumulativePercent: 100, Curve30: 100, Curve50: 100, Curve70: 100},
		},
	}

	chart := GenerateSCurveChart(curve)
	for _, want := range []string{
		"xychart-beta",
		`x-axis ["12/23", "01/24", "02/24"]`,
		"line [0.0, 40.0, 100.0]",
		"line [0.0, 55.5, 100.0]",
	} {
		if !strings.Contains(chart, want) {
			t.Errorf("Chart missing %q:\n%s", want, chart)
		}
	}
}

func TestGenerateSCurveChart_Subsamples(t *testing.T) {
	buckets := make(stats.BucketSeries, 130)
	for i := range buckets {
		buckets[i] = stats.Bucket{Label: "w"}
	}
	chart := GenerateSCurveChart(stats.SCurve{Granularity: stats.Week, Buckets: buckets})

	axis := chart[strings.Index(chart, "x-axis"):]
	axis = axis[:strings.Index(axis, "\n")]
	if n := strings.Count(axis, `"w"`); n > maxAxisPoints+1 {
		t.Errorf("Expected at most %d axis points, got %d", maxAxisPoints+1, n)
	}
}

func TestGenerateBucketCostChart(t *testing.T) {
	if GenerateBucketCostChart(stats.SCurve{}) != "" {
		t.Error("Expected empty chart for empty curve")
	}

	curve := stats.SCurve{
		Granularity: stats.Month,
		Buckets: stats.BucketSeries{
			{Label: "12/23", Cost: 0},
			{Label: "01/24", Cost: 4000},
			{Label: "02/24", Cost: 6000},
		},
	}

	chart := GenerateBucketCostChart(curve)
	for _, want := range []string{
		"xychart-beta",
		`x-axis ["12/23", "01/24", "02/24"]`,
		"y-axis \"Cost\" 0 --> ",
		"bar [0, 4000, 6000]",
	} {
		if !strings.Contains(chart, want) {
			t.Errorf("Chart missing %q:\n%s", want, chart)
		}
	}
}

func TestGenerateCriticalGantt(t *testing.T) {
	tasks := []stats.CriticalTask{
		{Name: "Fundação: blocos", Start: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC)},
	}
	chart := GenerateCriticalGantt(tasks)
	if !strings.Contains(chart, "Fundação  blocos :crit, c1, 2024-01-08, 2024-01-20") {
		t.Errorf("Unexpected gantt:\n%s", chart)
	}
	if GenerateCriticalGantt(nil) != "" {
		t.Error("Expected empty gantt for no tasks")
	}
}
