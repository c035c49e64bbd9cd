package stats

import (
	"fmt"
	"slices"

	"scurve-mcp/internal/schedule"
)

// ComputeIndicators classifies every task's dependency logic and reports the
// share of tasks with leads, lags, only default relationships and no logic
// at all, plus the overall baseline span.
func ComputeIndicators(tasks []schedule.Task) (IndicatorSet, error) {
	tasks = schedule.Analyzable(tasks)
	if len(tasks) == 0 {
		return IndicatorSet{}, ErrNoTasks
	}

	var leads, lags, defaultType, noLogic int
	set := IndicatorSet{TaskCount: len(tasks)}

	for i, t := range tasks {
		links := t.Links()
		if links.HasLead() {
			leads++
		}
		if links.HasLag() {
			lags++
		}
		if links.DefaultTypeOnly() {
			defaultType++
		}
		set.MalformedLinks += links.MalformedCount()

		// Whitespace is not empty: only a blank cell means no logic.
		if t.Predecessors == "" && t.Successors == "" {
			noLogic++
		}
		if t.Float == nil {
			set.MissingFloat++
		}

		if i == 0 || t.BaselineStart.Before(set.ProjectStart) {
			set.ProjectStart = t.BaselineStart
		}
		if i == 0 || t.BaselineEnd.After(set.ProjectEnd) {
			set.ProjectEnd = t.BaselineEnd
		}
	}

	total := float64(len(tasks))
	set.LeadsPct = 100 * float64(leads) / total
	set.LagsPct = 100 * float64(lags) / total
	set.RelationshipTypePct = 100 * float64(defaultType) / total
	set.NoLogicPct = 100 * float64(noLogic) / total
	set.DurationDays = int(schedule.DateOf(set.ProjectEnd).Sub(schedule.DateOf(set.ProjectStart)).Hours() / 24)

	return set, nil
}

// HighDuration returns the tasks whose baseline duration exceeds threshold
// and their share of all tasks.
func HighDuration(tasks []schedule.Task, threshold int) (DurationOutliers, error) {
	return durationFilter(tasks, threshold, func(d int) bool { return d > threshold })
}

// LowDuration returns the tasks whose baseline duration is below threshold
// and their share of all tasks.
func LowDuration(tasks []schedule.Task, threshold int) (DurationOutliers, error) {
	return durationFilter(tasks, threshold, func(d int) bool { return d < threshold })
}

func durationFilter(tasks []schedule.Task, threshold int, match func(int) bool) (DurationOutliers, error) {
	tasks = schedule.Analyzable(tasks)
	if len(tasks) == 0 {
		return DurationOutliers{}, ErrNoTasks
	}

	res := DurationOutliers{
		Threshold:      threshold,
		MedianDuration: medianDuration(tasks),
		Tasks:          []schedule.Task{},
	}
	for _, t := range tasks {
		if match(t.BaselineDuration) {
			res.Tasks = append(res.Tasks, t)
		}
	}
	res.Ratio = 100 * float64(len(res.Tasks)) / float64(len(tasks))
	return res, nil
}

// ShortFloat returns tasks whose float is positive but at most maxFloat days,
// ordered by baseline start. Tasks with a missing float are left out.
func ShortFloat(tasks []schedule.Task, maxFloat int) []schedule.Task {
	out := []schedule.Task{}
	for _, t := range schedule.Analyzable(tasks) {
		if t.Float == nil {
			continue
		}
		if f := *t.Float; f > 0 && f <= float64(maxFloat) {
			out = append(out, t)
		}
	}
	sortByStart(out)
	return out
}

func sortByStart(tasks []schedule.Task) {
	slices.SortStableFunc(tasks, func(a, b schedule.Task) int {
		return a.BaselineStart.Compare(b.BaselineStart)
	})
}

// Thresholds are the guidance limits for schedule quality indicators, all
// in percent.
type Thresholds struct {
	MaxLeads           float64 `json:"max_leads"`
	MaxLags            float64 `json:"max_lags"`
	MinDefaultRelation float64 `json:"min_default_relation"`
	MaxNoLogic         float64 `json:"max_no_logic"`
	MaxHighDuration    float64 `json:"max_high_duration"`
	MaxLowDuration     float64 `json:"max_low_duration"`
}

// DefaultThresholds are the common schedule assessment targets.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxLeads:           0,
		MaxLags:            5,
		MinDefaultRelation: 95,
		MaxNoLogic:         5,
		MaxHighDuration:    5,
		MaxLowDuration:     10,
	}
}

// Breach is one indicator outside its guidance limit.
type Breach struct {
	Indicator string  `json:"indicator"`
	Value     float64 `json:"value"`
	Limit     string  `json:"limit"`
}

// Assess compares the indicators with th. The duration ratios are optional
// because they depend on caller-chosen thresholds; pass nil to skip them.
func (s IndicatorSet) Assess(th Thresholds, high, low *DurationOutliers) []Breach {
	var out []Breach
	check := func(name string, value float64, bad bool, limit string) {
		if bad {
			out = append(out, Breach{Indicator: name, Value: value, Limit: limit})
		}
	}

	check("leads", s.LeadsPct, s.LeadsPct > th.MaxLeads, fmt.Sprintf("= %.0f%%", th.MaxLeads))
	check("lags", s.LagsPct, s.LagsPct > th.MaxLags, fmt.Sprintf("< %.0f%%", th.MaxLags))
	check("relationship_type", s.RelationshipTypePct, s.RelationshipTypePct < th.MinDefaultRelation, fmt.Sprintf("> %.0f%%", th.MinDefaultRelation))
	check("no_logic", s.NoLogicPct, s.NoLogicPct > th.MaxNoLogic, fmt.Sprintf("< %.0f%%", th.MaxNoLogic))
	if high != nil {
		check("high_duration", high.Ratio, high.Ratio > th.MaxHighDuration, fmt.Sprintf("< %.0f%%", th.MaxHighDuration))
	}
	if low != nil {
		check("low_duration", low.Ratio, low.Ratio > th.MaxLowDuration, fmt.Sprintf("< %.0f%%", th.MaxLowDuration))
	}
	return out
}
