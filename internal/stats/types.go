package stats

import (
	"time"

	"scurve-mcp/internal/schedule"
)

// DailyCostSeries is the cost planned for every business day of the
// analysis domain, in chronological order. Days and Cost are parallel.
type DailyCostSeries struct {
	Days []time.Time `json:"days"`
	Cost []float64   `json:"cost"`
}

// Len returns the number of business days in the domain.
func (s DailyCostSeries) Len() int {
	return len(s.Days)
}

// Total sums the cost of every day.
func (s DailyCostSeries) Total() float64 {
	total := 0.0
	for _, c := range s.Cost {
		total += c
	}
	return total
}

// Bucket is one period of the S-curve table.
type Bucket struct {
	Label             string    `json:"label"`
	Start             time.Time `json:"start"`
	Cost              float64   `json:"cost"`
	Percent           float64   `json:"percent"`
	CumulativePercent float64   `json:"cumulative_percent"`
	Curve30           float64   `json:"curve_30"`
	Curve50           float64   `json:"curve_50"`
	Curve70           float64   `json:"curve_70"`
}

// BucketSeries is a chronologically ordered S-curve table.
type BucketSeries []Bucket

// IndicatorSet holds the schedule quality indicators, as percentages of the
// analyzed task count.
type IndicatorSet struct {
	TaskCount           int       `json:"task_count"`
	LeadsPct            float64   `json:"leads_pct"`
	LagsPct             float64   `json:"lags_pct"`
	RelationshipTypePct float64   `json:"relationship_type_pct"`
	NoLogicPct          float64   `json:"no_logic_pct"`
	ProjectStart        time.Time `json:"project_start"`
	ProjectEnd          time.Time `json:"project_end"`
	DurationDays        int       `json:"duration_days"`
	MissingFloat        int       `json:"missing_float"`
	MalformedLinks      int       `json:"malformed_links"`
}

// DurationOutliers is the result of a high or low duration filter.
type DurationOutliers struct {
	Threshold      int             `json:"threshold"`
	Ratio          float64         `json:"ratio"`
	MedianDuration float64         `json:"median_duration"` // across all analyzed tasks
	Tasks          []schedule.Task `json:"tasks"`
}

// CriticalTask is one row of the critical path table.
type CriticalTask struct {
	Name         string    `json:"name"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Duration     int       `json:"duration"`
	Quantity     *float64  `json:"quantity,omitempty"`
	Productivity *float64  `json:"productivity,omitempty"`
}
