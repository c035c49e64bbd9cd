package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/evanw/esbuild/pkg/api"
)

// chartScript draws the S-curve into #chart as inline SVG from the embedded
// report data.
const chartScript = `
(function () {
  const report = window.scurveReport;
  const buckets = (report.s_curve && report.s_curve.buckets) || [];
  const host = document.getElementById("chart");
  if (!host || buckets.length < 2) {
    return;
  }

  const width = 900, height = 360, pad = 40;
  const xStep = (width - 2 * pad) / (buckets.length - 1);
  const toY = (pct) => height - pad - (pct / 100) * (height - 2 * pad);

  const series = [
    { key: "cumulative_percent", color: "#1f77b4", label: "Planned" },
    { key: "curve_30", color: "#2ca02c", label: "Curve 30" },
    { key: "curve_50", color: "#ff7f0e", label: "Curve 50" },
    { key: "curve_70", color: "#d62728", label: "Curve 70" },
  ];

  const ns = "http://www.w3.org/2000/svg";
  const svg = document.createElementNS(ns, "svg");
  svg.setAttribute("viewBox", "0 0 " + width + " " + height);
  svg.setAttribute("width", "100%");

  for (let pct = 0; pct <= 100; pct += 25) {
    const grid = document.createElementNS(ns, "line");
    grid.setAttribute("x1", pad);
    grid.setAttribute("x2", width - pad);
    grid.setAttribute("y1", toY(pct));
    grid.setAttribute("y2", toY(pct));
    grid.setAttribute("stroke", "#ddd");
    svg.appendChild(grid);
  }

  series.forEach(function (s, idx) {
    const points = buckets.map(function (b, i) {
      return (pad + i * xStep).toFixed(1) + "," + toY(b[s.key]).toFixed(1);
    });
    const line = document.createElementNS(ns, "polyline");
    line.setAttribute("points", points.join(" "));
    line.setAttribute("fill", "none");
    line.setAttribute("stroke", s.color);
    line.setAttribute("stroke-width", idx === 0 ? 3 : 1.5);
    svg.appendChild(line);

    const legend = document.createElementNS(ns, "text");
    legend.setAttribute("x", pad + idx * 120);
    legend.setAttribute("y", 16);
    legend.setAttribute("fill", s.color);
    legend.textContent = s.label;
    svg.appendChild(legend);
  });

  const step = Math.max(1, Math.ceil(buckets.length / 12));
  buckets.forEach(function (b, i) {
    if (i % step !== 0 && i !== buckets.length - 1) {
      return;
    }
    const tick = document.createElementNS(ns, "text");
    tick.setAttribute("x", pad + i * xStep);
    tick.setAttribute("y", height - pad / 3);
    tick.setAttribute("font-size", "10");
    tick.setAttribute("text-anchor", "middle");
    tick.textContent = b.label;
    svg.appendChild(tick);
  });

  host.appendChild(svg);
})();
`

var minifiedScript = sync.OnceValues(func() (string, error) {
	return minifyJS(chartScript)
})

// minifyJS compresses an inline script the same way the bundler does for
// shipped assets.
func minifyJS(src string) (string, error) {
	result := api.Transform(src, api.TransformOptions{
		Loader:            api.LoaderJS,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
	})
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, m := range result.Errors {
			msgs = append(msgs, m.Text)
		}
		return "", fmt.Errorf("failed to minify chart script: %s", strings.Join(msgs, "; "))
	}
	return string(result.Code), nil
}

var pageTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"day": func(t time.Time) string { return t.Format(dayLayout) },
	"pct": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>S-Curve {{.Report.Source}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.review { color: #b00; font-weight: bold; }
</style>
</head>
<body>
<h1>Schedule Analysis{{if .Report.Source}}: {{.Report.Source}}{{end}}</h1>
<p>Run <code>{{.Report.RunID}}</code>, total cost {{printf "%.2f" .Report.TotalCost}}, {{.Report.Indicators.TaskCount}} tasks.</p>

<h2>S-Curve ({{.Report.Curve.Granularity}})</h2>
<div id="chart"></div>
<table>
<tr><th>Period</th><th>Cost</th><th>%</th><th>Cumulative %</th><th>Curve 30</th><th>Curve 50</th><th>Curve 70</th></tr>
{{range .Report.Curve.Buckets}}<tr><td>{{.Label}}</td><td>{{pct .Cost}}</td><td>{{pct .Percent}}</td><td>{{pct .CumulativePercent}}</td><td>{{pct .Curve30}}</td><td>{{pct .Curve50}}</td><td>{{pct .Curve70}}</td></tr>
{{end}}</table>

<h2>Indicators</h2>
<table>
<tr><th>Indicator</th><th>Value</th></tr>
<tr><td>Leads</td><td>{{pct .Report.Indicators.LeadsPct}}%</td></tr>
<tr><td>Lags</td><td>{{pct .Report.Indicators.LagsPct}}%</td></tr>
<tr><td>Finish-to-start only</td><td>{{pct .Report.Indicators.RelationshipTypePct}}%</td></tr>
<tr><td>No logic</td><td>{{pct .Report.Indicators.NoLogicPct}}%</td></tr>
<tr><td>High duration</td><td>{{pct .Report.HighDuration.Ratio}}%</td></tr>
<tr><td>Low duration</td><td>{{pct .Report.LowDuration.Ratio}}%</td></tr>
</table>
{{if .Report.Breaches}}<ul>{{range .Report.Breaches}}<li class="review">{{.Indicator}}: {{pct .Value}}% (should be {{.Limit}})</li>{{end}}</ul>{{end}}

<h2>Critical Path</h2>
<table>
<tr><th>Task</th><th>Start</th><th>End</th><th>Duration</th></tr>
{{range .Report.CriticalPath}}<tr><td>{{.Name}}</td><td>{{day .Start}}</td><td>{{day .End}}</td><td>{{.Duration}}</td></tr>
{{end}}</table>

{{if .Report.Warnings}}<h2>Warnings</h2><ul>{{range .Report.Warnings}}<li>{{.}}</li>{{end}}</ul>{{end}}

<script>window.scurveReport = {{.Report}};</script>
<script>{{.Script}}</script>
</body>
</html>
`))

// RenderHTML writes a self-contained page with the report data embedded and
// an inline SVG chart.
func RenderHTML(w io.Writer, r *Report) error {
	script, err := minifiedScript()
	if err != nil {
		return err
	}
	return pageTemplate.Execute(w, struct {
		Report *Report
		Script template.JS
	}{Report: r, Script: template.JS(script)})
}
