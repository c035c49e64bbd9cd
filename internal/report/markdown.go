package report

import (
	"fmt"
	"io"
	"strings"

	"scurve-mcp/internal/schedule"
	"scurve-mcp/internal/visuals"
)

const dayLayout = "02/01/2006"

// RenderMarkdown writes the report as Markdown with Mermaid charts.
func RenderMarkdown(w io.Writer, r *Report) error {
	var sb strings.Builder

	title := "Schedule Analysis"
	if r.Source != "" {
		title += ": " + r.Source
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("- Run: `%s`\n", r.RunID))
	sb.WriteString(fmt.Sprintf("- Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04 MST")))
	sb.WriteString(fmt.Sprintf("- Total cost: %.2f\n", r.TotalCost))
	if r.Indicators.TaskCount > 0 {
		sb.WriteString(fmt.Sprintf("- Project span: %s to %s (%d days, %d tasks)\n",
			r.Indicators.ProjectStart.Format(dayLayout), r.Indicators.ProjectEnd.Format(dayLayout),
			r.Indicators.DurationDays, r.Indicators.TaskCount))
	}
	sb.WriteString("\n")

	writeCurve(&sb, r)
	writeIndicators(&sb, r)
	writeDurations(&sb, r)
	writeShortFloat(&sb, r)
	writeCritical(&sb, r)

	if len(r.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, msg := range r.Warnings {
			sb.WriteString(fmt.Sprintf("- %s\n", msg))
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeCurve(sb *strings.Builder, r *Report) {
	c := r.Curve
	sb.WriteString(fmt.Sprintf("## S-Curve (%s)\n\n", c.Granularity))
	sb.WriteString(fmt.Sprintf("Shapes: s30=%.1f s50=%.1f s70=%.1f. Planned cost %.2f", c.Shapes.S30, c.Shapes.S50, c.Shapes.S70, c.PlannedCost))
	if loss := c.HolidayLoss(); loss > 0.005 {
		sb.WriteString(fmt.Sprintf(" (%.2f on holidays)", loss))
	}
	sb.WriteString(".\n\n")

	if chart := visuals.GenerateSCurveChart(c); chart != "" {
		sb.WriteString(chart)
		sb.WriteString("\n\nLines: planned, 30, 50, 70.\n\n")
	}
	if chart := visuals.GenerateBucketCostChart(c); chart != "" {
		sb.WriteString(chart)
		sb.WriteString("\n\n")
	}

	sb.WriteString("| Period | Cost | % | Cumulative % | Curve 30 | Curve 50 | Curve 70 |\n")
	sb.WriteString("|---|---:|---:|---:|---:|---:|---:|\n")
	for _, b := range c.Buckets {
		sb.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
			b.Label, b.Cost, b.Percent, b.CumulativePercent, b.Curve30, b.Curve50, b.Curve70))
	}
	sb.WriteString("\n")
}

func writeIndicators(sb *strings.Builder, r *Report) {
	in, th := r.Indicators, r.Thresholds
	breached := make(map[string]bool, len(r.Breaches))
	for _, b := range r.Breaches {
		breached[b.Indicator] = true
	}
	status := func(name string) string {
		if breached[name] {
			return "review"
		}
		return "ok"
	}

	sb.WriteString("## Schedule Indicators\n\n")
	sb.WriteString("| Indicator | Value | Should be | Status |\n")
	sb.WriteString("|---|---:|---|---|\n")
	rows := []struct {
		name, label string
		value       float64
		limit       string
	}{
		{"leads", "Leads", in.LeadsPct, fmt.Sprintf("= %.0f%%", th.MaxLeads)},
		{"lags", "Lags", in.LagsPct, fmt.Sprintf("< %.0f%%", th.MaxLags)},
		{"relationship_type", "Finish-to-start only", in.RelationshipTypePct, fmt.Sprintf("> %.0f%%", th.MinDefaultRelation)},
		{"no_logic", "No logic", in.NoLogicPct, fmt.Sprintf("< %.0f%%", th.MaxNoLogic)},
		{"high_duration", fmt.Sprintf("Duration > %d days", r.HighDuration.Threshold), r.HighDuration.Ratio, fmt.Sprintf("< %.0f%%", th.MaxHighDuration)},
		{"low_duration", fmt.Sprintf("Duration < %d days", r.LowDuration.Threshold), r.LowDuration.Ratio, fmt.Sprintf("< %.0f%%", th.MaxLowDuration)},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("| %s | %.1f%% | %s | %s |\n", row.label, row.value, row.limit, status(row.name)))
	}
	sb.WriteString("\n")
}

func writeDurations(sb *strings.Builder, r *Report) {
	writeTaskList(sb, fmt.Sprintf("Tasks longer than %d days", r.HighDuration.Threshold), r.HighDuration.Tasks, false)
	writeTaskList(sb, fmt.Sprintf("Tasks shorter than %d days", r.LowDuration.Threshold), r.LowDuration.Tasks, false)
}

func writeShortFloat(sb *strings.Builder, r *Report) {
	writeTaskList(sb, fmt.Sprintf("Tasks with float up to %d days", r.ShortFloatAt), r.ShortFloat, true)
}

func writeTaskList(sb *strings.Builder, title string, tasks []schedule.Task, withFloat bool) {
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))
	if len(tasks) == 0 {
		sb.WriteString("None.\n\n")
		return
	}
	if withFloat {
		sb.WriteString("| Task | Start | End | Duration | Float |\n|---|---|---|---:|---:|\n")
	} else {
		sb.WriteString("| Task | Start | End | Duration |\n|---|---|---|---:|\n")
	}
	for _, t := range tasks {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d", mdCell(t.Name),
			t.BaselineStart.Format(dayLayout), t.BaselineEnd.Format(dayLayout), t.BaselineDuration))
		if withFloat {
			sb.WriteString(" | " + optional(t.Float))
		}
		sb.WriteString(" |\n")
	}
	sb.WriteString("\n")
}

func writeCritical(sb *strings.Builder, r *Report) {
	sb.WriteString("## Critical Path\n\n")
	if len(r.CriticalPath) == 0 {
		sb.WriteString("No task is flagged critical.\n\n")
		return
	}
	if gantt := visuals.GenerateCriticalGantt(r.CriticalPath); gantt != "" {
		sb.WriteString(gantt)
		sb.WriteString("\n\n")
	}
	sb.WriteString("| Task | Start | End | Duration | Quantity | Productivity |\n")
	sb.WriteString("|---|---|---|---:|---:|---:|\n")
	for _, c := range r.CriticalPath {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %s | %s |\n", mdCell(c.Name),
			c.Start.Format(dayLayout), c.End.Format(dayLayout), c.Duration, optional(c.Quantity), optional(c.Productivity)))
	}
	sb.WriteString("\n")
}

func optional(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
