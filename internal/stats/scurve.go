package stats

import (
	"fmt"
	"time"

	"scurve-mcp/internal/schedule"
)

// SCurve is the combined planned-cost and reference curve table.
type SCurve struct {
	Granularity Granularity  `json:"granularity"`
	Shapes      Shapes       `json:"shapes"`
	Buckets     BucketSeries `json:"buckets"`
	PlannedCost float64      `json:"planned_cost"` // after holiday exclusion
	TaskCost    float64      `json:"task_cost"`    // sum of baseline task cost
}

// HolidayLoss is the cost that fell on holidays and was dropped.
func (c SCurve) HolidayLoss() float64 {
	return c.TaskCost - c.PlannedCost
}

// BuildSCurve runs spread, aggregation and the reference curves. Unlike
// Aggregate, an unsupported granularity is an error here, and fewer than two
// buckets is reported as ErrInsufficientBuckets.
func BuildSCurve(tasks []schedule.Task, holidays []time.Time, g Granularity, shapes Shapes) (SCurve, error) {
	if !g.Valid() {
		return SCurve{}, fmt.Errorf("%w: %q", ErrUnsupportedGranularity, g)
	}
	if err := shapes.Validate(); err != nil {
		return SCurve{}, err
	}

	daily, err := Spread(tasks, holidays, g)
	if err != nil {
		return SCurve{}, err
	}

	buckets, err := Aggregate(daily, g)
	if err != nil {
		return SCurve{}, err
	}

	if err := ApplyReferenceCurves(buckets, shapes); err != nil {
		return SCurve{}, err
	}

	taskCost := 0.0
	for _, t := range schedule.Analyzable(tasks) {
		taskCost += t.Cost
	}

	return SCurve{
		Granularity: g,
		Shapes:      shapes,
		Buckets:     buckets,
		PlannedCost: buckets.Total(),
		TaskCost:    taskCost,
	}, nil
}
