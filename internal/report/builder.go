package report

import (
	"context"
	"fmt"
	"slices"
	"time"

	"scurve-mcp/internal/config"
	"scurve-mcp/internal/schedule"
	"scurve-mcp/internal/stats"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Options selects the analysis parameters for a report run.
type Options struct {
	Source                string
	Granularity           stats.Granularity
	Shapes                stats.Shapes
	HighDurationThreshold int
	LowDurationThreshold  int
	ShortFloatDays        int
	Thresholds            stats.Thresholds
	Holidays              []time.Time // merged with the schedule's own holidays
}

// DefaultOptions matches the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Granularity:           stats.Month,
		Shapes:                stats.DefaultShapes(),
		HighDurationThreshold: 20,
		LowDurationThreshold:  5,
		ShortFloatDays:        6,
		Thresholds:            stats.DefaultThresholds(),
	}
}

// OptionsFromConfig carries the configured analysis defaults into a run.
func OptionsFromConfig(a config.AnalysisConfig) Options {
	return Options{
		Granularity:           a.Granularity,
		Shapes:                a.Shapes,
		HighDurationThreshold: a.HighDurationThreshold,
		LowDurationThreshold:  a.LowDurationThreshold,
		ShortFloatDays:        a.ShortFloatDays,
		Thresholds:            stats.DefaultThresholds(),
		Holidays:              a.Holidays,
	}
}

// Report is the full analysis of one schedule.
type Report struct {
	RunID        string                 `json:"run_id"`
	GeneratedAt  time.Time              `json:"generated_at"`
	Source       string                 `json:"source,omitempty"`
	TotalCost    float64                `json:"total_cost"`
	Curve        stats.SCurve           `json:"s_curve"`
	Indicators   stats.IndicatorSet     `json:"indicators"`
	HighDuration stats.DurationOutliers `json:"high_duration"`
	LowDuration  stats.DurationOutliers `json:"low_duration"`
	ShortFloat   []schedule.Task        `json:"short_float"`
	ShortFloatAt int                    `json:"short_float_days"`
	CriticalPath []stats.CriticalTask   `json:"critical_path"`
	Thresholds   stats.Thresholds       `json:"thresholds"`
	Breaches     []stats.Breach         `json:"breaches,omitempty"`
	Warnings     []string               `json:"warnings,omitempty"`
}

// Build runs every analysis over sched concurrently. The analyses share the
// read-only task slice; the first failure cancels the rest.
func Build(ctx context.Context, sched *schedule.Schedule, diag *schedule.Diagnostics, opts Options) (*Report, error) {
	if sched == nil {
		return nil, fmt.Errorf("%w: no schedule", stats.ErrNoTasks)
	}

	r := &Report{
		RunID:        uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		Source:       opts.Source,
		TotalCost:    sched.TotalCost(),
		ShortFloatAt: opts.ShortFloatDays,
		Thresholds:   opts.Thresholds,
		Warnings:     diag.Messages(),
	}
	tasks := sched.Tasks
	holidays := MergeHolidays(sched.Holidays, opts.Holidays)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		curve, err := stats.BuildSCurve(tasks, holidays, opts.Granularity, opts.Shapes)
		if err != nil {
			return fmt.Errorf("s-curve: %w", err)
		}
		r.Curve = curve
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		set, err := stats.ComputeIndicators(tasks)
		if err != nil {
			return fmt.Errorf("indicators: %w", err)
		}
		r.Indicators = set
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		high, err := stats.HighDuration(tasks, opts.HighDurationThreshold)
		if err != nil {
			return fmt.Errorf("high duration: %w", err)
		}
		low, err := stats.LowDuration(tasks, opts.LowDurationThreshold)
		if err != nil {
			return fmt.Errorf("low duration: %w", err)
		}
		r.HighDuration, r.LowDuration = high, low
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.ShortFloat = stats.ShortFloat(tasks, opts.ShortFloatDays)
		r.CriticalPath = stats.CriticalPath(tasks)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.Breaches = r.Indicators.Assess(opts.Thresholds, &r.HighDuration, &r.LowDuration)
	if r.Indicators.MissingFloat > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d task(s) have no numeric float and were left out of the short float list", r.Indicators.MissingFloat))
	}
	if r.Indicators.MalformedLinks > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d relationship entries could not be parsed and were counted as plain finish-to-start links", r.Indicators.MalformedLinks))
	}
	if loss := r.Curve.HolidayLoss(); loss > 0.005 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%.2f of planned cost falls on holidays and is not part of the S-curve", loss))
	}

	log.Info().
		Str("run", r.RunID).
		Int("tasks", r.Indicators.TaskCount).
		Int("buckets", len(r.Curve.Buckets)).
		Str("granularity", string(opts.Granularity)).
		Int("breaches", len(r.Breaches)).
		Msg("Report built")

	return r, nil
}

// MergeHolidays combines holiday sets, dropping duplicates and sorting.
func MergeHolidays(sets ...[]time.Time) []time.Time {
	seen := make(map[time.Time]bool)
	var out []time.Time
	for _, set := range sets {
		for _, h := range set {
			d := schedule.DateOf(h)
			if seen[d] {
				continue
			}
			seen[d] = true
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out
}
