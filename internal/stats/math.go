package stats

import (
	"slices"

	"scurve-mcp/internal/schedule"
)

// medianDuration is the median baseline duration of tasks, in days.
func medianDuration(tasks []schedule.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}

	durations := make([]int, len(tasks))
	for i, t := range tasks {
		durations[i] = t.BaselineDuration
	}
	slices.Sort(durations)

	n := len(durations)
	if n%2 == 1 {
		return float64(durations[n/2])
	}
	return float64(durations[n/2-1]+durations[n/2]) / 2.0
}
