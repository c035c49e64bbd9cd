package visuals

import (
	"fmt"
	"math"
	"strings"

	"scurve-mcp/internal/stats"
)

// maxAxisPoints is where Mermaid's xychart layout starts overlapping labels.
const maxAxisPoints = 60

// GenerateSCurveChart creates a Mermaid xychart-beta with the planned
// cumulative percent and the three reference curves.
func GenerateSCurveChart(curve stats.SCurve) string {
	if len(curve.Buckets) == 0 {
		return ""
	}

	subsampleRate := 1
	if len(curve.Buckets) > maxAxisPoints {
		subsampleRate = int(math.Ceil(float64(len(curve.Buckets)) / float64(maxAxisPoints)))
	}

	var labels, planned, c30, c50, c70 []string
	for i, b := range curve.Buckets {
		if i%subsampleRate != 0 && i != len(curve.Buckets)-1 {
			continue
		}
		labels = append(labels, fmt.Sprintf("\"%s\"", b.Label))
		planned = append(planned, fmt.Sprintf("%.1f", b.CumulativePercent))
		c30 = append(c30, fmt.Sprintf("%.1f", b.Curve30))
		c50 = append(c50, fmt.Sprintf("%.1f", b.Curve50))
		c70 = append(c70, fmt.Sprintf("%.1f", b.Curve70))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"S-Curve (%s)\"\n", curve.Granularity))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Cumulative %\" 0 --> 100\n")
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(planned, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(c30, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(c50, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(c70, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateBucketCostChart creates a Mermaid bar chart of the planned cost per
// bucket.
func GenerateBucketCostChart(curve stats.SCurve) string {
	if len(curve.Buckets) == 0 {
		return ""
	}

	var labels, values []string
	maxVal := 0.0
	for _, b := range curve.Buckets {
		labels = append(labels, fmt.Sprintf("\"%s\"", b.Label))
		values = append(values, fmt.Sprintf("%.0f", b.Cost))
		maxVal = math.Max(maxVal, b.Cost)
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Planned Cost per Period\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Cost\" 0 --> %d\n", int(math.Ceil(maxVal*1.1))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateCriticalGantt creates a Mermaid gantt of the critical tasks in the
// given order.
func GenerateCriticalGantt(tasks []stats.CriticalTask) string {
	if len(tasks) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("gantt\n")
	sb.WriteString("    title Critical Tasks\n")
	sb.WriteString("    dateFormat YYYY-MM-DD\n")
	sb.WriteString("    axisFormat %d-%m-%y\n")
	sb.WriteString("    section Critical path\n")
	for i, t := range tasks {
		// Gantt end dates are exclusive.
		end := t.End.AddDate(0, 0, 1)
		sb.WriteString(fmt.Sprintf("    %s :crit, c%d, %s, %s\n",
			ganttSafe(t.Name), i+1, t.Start.Format("2006-01-02"), end.Format("2006-01-02")))
	}
	sb.WriteString("```")
	return sb.String()
}

// ganttSafe strips characters Mermaid treats as task syntax.
func ganttSafe(name string) string {
	r := strings.NewReplacer(":", " ", "#", " ", ";", " ", "\n", " ")
	return strings.TrimSpace(r.Replace(name))
}
