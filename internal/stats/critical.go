package stats

import (
	"scurve-mcp/internal/schedule"
)

// CriticalPath lists the critical tasks ordered by baseline start. Tasks that
// start on the same day keep their input order.
func CriticalPath(tasks []schedule.Task) []CriticalTask {
	var critical []schedule.Task
	for _, t := range schedule.Analyzable(tasks) {
		if t.Critical {
			critical = append(critical, t)
		}
	}
	sortByStart(critical)

	out := make([]CriticalTask, 0, len(critical))
	for _, t := range critical {
		duration := t.Duration
		if duration == 0 {
			duration = t.BaselineDuration
		}
		out = append(out, CriticalTask{
			Name:         t.Name,
			Start:        t.BaselineStart,
			End:          t.BaselineEnd,
			Duration:     duration,
			Quantity:     t.Quantity,
			Productivity: t.Productivity,
		})
	}
	return out
}
