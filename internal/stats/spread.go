package stats

import (
	"fmt"
	"time"

	"scurve-mcp/internal/schedule"
)

// Spread distributes every task's daily cost over the business days of its
// baseline span and superposes the result on one business-day series.
//
// The domain runs from one bucket period before the earliest baseline start
// up to the latest baseline end, so the first bucket starts from zero.
// Holidays receive no cost and the cost is not moved elsewhere: the series
// total is lower than the summed task cost whenever a holiday falls inside
// a task span.
func Spread(tasks []schedule.Task, holidays []time.Time, g Granularity) (DailyCostSeries, error) {
	if !g.Valid() {
		return DailyCostSeries{}, fmt.Errorf("%w: %q", ErrUnsupportedGranularity, g)
	}

	tasks = schedule.Analyzable(tasks)
	if len(tasks) == 0 {
		return DailyCostSeries{}, ErrNoTasks
	}

	first, last, err := span(tasks)
	if err != nil {
		return DailyCostSeries{}, err
	}

	days := BusinessDays(StepBack(first, g), last)
	index := make(map[time.Time]int, len(days))
	for i, d := range days {
		index[d] = i
	}

	skip := make(map[time.Time]bool, len(holidays))
	for _, h := range holidays {
		skip[schedule.DateOf(h)] = true
	}

	cost := make([]float64, len(days))
	for _, t := range tasks {
		daily, err := t.DailyCost()
		if err != nil {
			return DailyCostSeries{}, err
		}
		for _, d := range BusinessDays(schedule.DateOf(t.BaselineStart), schedule.DateOf(t.BaselineEnd)) {
			if skip[d] {
				continue
			}
			i, ok := index[d]
			if !ok {
				return DailyCostSeries{}, fmt.Errorf("%w: %s (task %q)", ErrOutsideDomain, d.Format(schedule.DateLayout), t.Name)
			}
			cost[i] += daily
		}
	}

	return DailyCostSeries{Days: days, Cost: cost}, nil
}

// span returns the earliest baseline start and latest baseline end after
// validating every task.
func span(tasks []schedule.Task) (time.Time, time.Time, error) {
	var first, last time.Time
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return time.Time{}, time.Time{}, err
		}
		start := schedule.DateOf(t.BaselineStart)
		end := schedule.DateOf(t.BaselineEnd)
		if i == 0 || start.Before(first) {
			first = start
		}
		if i == 0 || end.After(last) {
			last = end
		}
	}
	return first, last, nil
}
