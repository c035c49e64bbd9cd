package mcp

import (
	"context"
	"fmt"

	"scurve-mcp/internal/report"
	"scurve-mcp/internal/stats"
	"scurve-mcp/internal/visuals"
)

func (s *Server) handleGetReviewRoadmap(_ context.Context, in roadmapArgs) (any, error) {
	roadmaps := map[string]any{
		"cost_baseline": map[string]any{
			"title":       "Review Workflow: Cost Baseline Distribution",
			"description": "Recommended sequence to judge whether planned spending follows a realistic S-shape.",
			"steps": []any{
				map[string]any{"step": 1, "tool": "analyze_s_curve", "description": "Build the monthly S-curve and compare the planned cumulative line with the 30/50/70 references."},
				map[string]any{"step": 2, "tool": "analyze_s_curve", "description": "Repeat with granularity 'week' for the first months to spot early front-loading."},
				map[string]any{"step": 3, "tool": "get_duration_outliers", "description": "Long tasks carry large flat cost blocks; list them before blaming the curve."},
			},
		},
		"logic_quality": map[string]any{
			"title":       "Review Workflow: Schedule Logic Quality",
			"description": "Recommended sequence to judge whether the network logic can be trusted.",
			"steps": []any{
				map[string]any{"step": 1, "tool": "analyze_schedule_indicators", "description": "Check leads, lags, relationship types and tasks without logic against guidance."},
				map[string]any{"step": 2, "tool": "get_duration_outliers", "description": "Find tasks too long to be tracked or too short to be meaningful."},
			},
		},
		"execution_risk": map[string]any{
			"title":       "Review Workflow: Execution Risk",
			"description": "Recommended sequence to find where delays will hurt first.",
			"steps": []any{
				map[string]any{"step": 1, "tool": "get_critical_path", "description": "Walk the critical tasks in start order."},
				map[string]any{"step": 2, "tool": "get_short_float_tasks", "description": "List near-critical tasks that become critical after a small slip."},
				map[string]any{"step": 3, "tool": "generate_report", "description": "Consolidate the findings into a shareable report."},
			},
		},
	}

	res, ok := roadmaps[in.Goal]
	if !ok {
		return nil, fmt.Errorf("unknown goal: %s. Available goals: cost_baseline, logic_quality, execution_risk", in.Goal)
	}
	return WrapResponse(res, "", nil, "", nil), nil
}

func (s *Server) handleAnalyzeSCurve(_ context.Context, in sCurveArgs) (any, error) {
	l, err := s.loadSchedule(in.Path, in.Holidays)
	if err != nil {
		return nil, err
	}

	opts := s.options()
	g, err := granularityOr(in.Granularity, opts.Granularity)
	if err != nil {
		return nil, err
	}
	shapes := stats.Shapes{
		S30: floatOr(in.S30, opts.Shapes.S30),
		S50: floatOr(in.S50, opts.Shapes.S50),
		S70: floatOr(in.S70, opts.Shapes.S70),
	}

	curve, err := stats.BuildSCurve(l.sched.Tasks, l.sched.Holidays, g, shapes)
	if err != nil {
		return nil, err
	}

	warnings := l.warnings
	if loss := curve.HolidayLoss(); loss > 0.005 {
		warnings = append(warnings, fmt.Sprintf("%.2f of planned cost falls on holidays and is not part of the curve", loss))
	}

	var chart string
	if s.mermaidEnabled() {
		chart = visuals.GenerateSCurveChart(curve)
	}

	res := map[string]any{
		"s_curve":      curve,
		"total_cost":   l.sched.TotalCost(),
		"holiday_loss": curve.HolidayLoss(),
	}
	guidance := []string{
		"Compare 'cumulative_percent' with 'curve_30', 'curve_50' and 'curve_70' bucket by bucket.",
		"The 30 curve rises earliest and the 70 curve latest; a planned line above all three means a front-loaded baseline.",
	}
	return WrapResponse(res, l.path, warnings, chart, guidance), nil
}

func (s *Server) handleScheduleIndicators(_ context.Context, in scheduleArgs) (any, error) {
	l, err := s.loadSchedule(in.Path, in.Holidays)
	if err != nil {
		return nil, err
	}

	set, err := stats.ComputeIndicators(l.sched.Tasks)
	if err != nil {
		return nil, err
	}

	opts := s.options()
	high, err := stats.HighDuration(l.sched.Tasks, opts.HighDurationThreshold)
	if err != nil {
		return nil, err
	}
	low, err := stats.LowDuration(l.sched.Tasks, opts.LowDurationThreshold)
	if err != nil {
		return nil, err
	}

	warnings := l.warnings
	if set.MissingFloat > 0 {
		warnings = append(warnings, fmt.Sprintf("%d task(s) have no numeric float", set.MissingFloat))
	}
	if set.MalformedLinks > 0 {
		warnings = append(warnings, fmt.Sprintf("%d relationship entries could not be parsed", set.MalformedLinks))
	}

	res := map[string]any{
		"indicators":      set,
		"high_duration":   map[string]any{"threshold": high.Threshold, "ratio": high.Ratio},
		"low_duration":    map[string]any{"threshold": low.Threshold, "ratio": low.Ratio},
		"thresholds":      opts.Thresholds,
		"breaches":        set.Assess(opts.Thresholds, &high, &low),
		"median_duration": high.MedianDuration,
	}
	return WrapResponse(res, l.path, warnings, "", nil), nil
}

func (s *Server) handleCriticalPath(_ context.Context, in scheduleArgs) (any, error) {
	l, err := s.loadSchedule(in.Path, in.Holidays)
	if err != nil {
		return nil, err
	}

	path := stats.CriticalPath(l.sched.Tasks)
	var chart string
	if s.mermaidEnabled() {
		chart = visuals.GenerateCriticalGantt(path)
	}

	var guidance []string
	if len(path) == 0 {
		guidance = append(guidance, "No task is flagged critical. Check that the export includes the critical column.")
	}
	return WrapResponse(map[string]any{"critical_tasks": path, "count": len(path)}, l.path, l.warnings, chart, guidance), nil
}

func (s *Server) handleShortFloat(_ context.Context, in shortFloatArgs) (any, error) {
	l, err := s.loadSchedule(in.Path, nil)
	if err != nil {
		return nil, err
	}

	maxFloat := intOr(in.MaxFloat, s.options().ShortFloatDays)
	tasks := stats.ShortFloat(l.sched.Tasks, maxFloat)

	res := map[string]any{
		"max_float": maxFloat,
		"tasks":     tasks,
		"count":     len(tasks),
	}
	return WrapResponse(res, l.path, l.warnings, "", nil), nil
}

func (s *Server) handleDurationOutliers(_ context.Context, in durationArgs) (any, error) {
	l, err := s.loadSchedule(in.Path, nil)
	if err != nil {
		return nil, err
	}

	opts := s.options()
	high, err := stats.HighDuration(l.sched.Tasks, intOr(in.HighThreshold, opts.HighDurationThreshold))
	if err != nil {
		return nil, err
	}
	low, err := stats.LowDuration(l.sched.Tasks, intOr(in.LowThreshold, opts.LowDurationThreshold))
	if err != nil {
		return nil, err
	}

	return WrapResponse(map[string]any{"high": high, "low": low}, l.path, l.warnings, "", nil), nil
}

func (s *Server) handleGenerateReport(ctx context.Context, in reportArgs) (any, error) {
	format := report.FormatMarkdown
	if in.Format != "" {
		f, err := report.ParseFormat(in.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}

	l, err := s.loadSchedule(in.Path, in.Holidays)
	if err != nil {
		return nil, err
	}

	opts := s.options()
	opts.Source = l.path
	if opts.Granularity, err = granularityOr(in.Granularity, opts.Granularity); err != nil {
		return nil, err
	}

	r, err := report.Build(ctx, l.sched, nil, opts)
	if err != nil {
		return nil, err
	}
	r.Warnings = append(l.warnings, r.Warnings...)

	dir := "reports"
	if s.cfg != nil && s.cfg.ReportDir != "" {
		dir = s.cfg.ReportDir
	}
	written, err := report.WriteFile(dir, r, format)
	if err != nil {
		return nil, err
	}

	res := map[string]any{
		"run_id":     r.RunID,
		"report":     written,
		"format":     format,
		"total_cost": r.TotalCost,
		"buckets":    len(r.Curve.Buckets),
		"breaches":   r.Breaches,
	}
	return WrapResponse(res, l.path, r.Warnings, "", []string{"Open the report file to review the full tables and charts."}), nil
}
