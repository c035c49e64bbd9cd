package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"scurve-mcp/internal/config"
	"scurve-mcp/internal/stats"
)

const scheduleJSON = `{
  "tasks": [
    {"name": "A", "baseline_start": "2024-01-01", "baseline_end": "2024-01-05", "baseline_duration": 5, "cost": 500, "critical": true, "float": 0},
    {"name": "B", "baseline_start": "2024-01-08", "baseline_end": "2024-01-12", "baseline_duration": 5, "cost": 500, "predecessors": "1", "float": "3 dias"}
  ]
}`

func setup(t *testing.T) string {
	t.Helper()
	cfg = &config.AppConfig{
		Analysis: config.AnalysisConfig{
			Granularity:           stats.Month,
			Shapes:                stats.DefaultShapes(),
			HighDurationThreshold: 20,
			LowDurationThreshold:  5,
			ShortFloatDays:        6,
		},
		ReportDir: t.TempDir(),
	}
	path := filepath.Join(t.TempDir(), "obra.json")
	if err := os.WriteFile(path, []byte(scheduleJSON), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCurveCommand(t *testing.T) {
	path := setup(t)
	if err := curveCmd.Flags().Parse([]string{"--granularity", "week", "--s50", "1.5"}); err != nil {
		t.Fatal(err)
	}

	opts, err := analysisOptions(curveCmd)
	if err != nil {
		t.Fatalf("analysisOptions failed: %v", err)
	}
	if opts.Granularity != stats.Week || opts.Shapes.S50 != 1.5 || opts.Shapes.S30 != stats.DefaultShape {
		t.Errorf("Unexpected options: %+v", opts)
	}

	var buf bytes.Buffer
	curveCmd.SetOut(&buf)
	if err := curveCmd.RunE(curveCmd, []string{path}); err != nil {
		t.Fatalf("curve failed: %v", err)
	}

	var curve stats.SCurve
	if err := json.Unmarshal(buf.Bytes(), &curve); err != nil {
		t.Fatalf("Output is not an S-curve: %v", err)
	}
	// One lead-in week plus the two task weeks.
	if len(curve.Buckets) != 3 {
		t.Errorf("Expected 3 weekly buckets, got %d", len(curve.Buckets))
	}
}

func TestFloatCommand(t *testing.T) {
	path := setup(t)

	var buf bytes.Buffer
	floatCmd.SetOut(&buf)
	if err := floatCmd.RunE(floatCmd, []string{path}); err != nil {
		t.Fatalf("float failed: %v", err)
	}

	var tasks []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &tasks); err != nil {
		t.Fatalf("Output is not a task list: %v", err)
	}
	if len(tasks) != 1 || tasks[0]["name"] != "B" {
		t.Errorf("Expected only task B, got %v", tasks)
	}
}

func TestWriteReport(t *testing.T) {
	path := setup(t)
	opts, err := analysisOptions(indicatorsCmd)
	if err != nil {
		t.Fatal(err)
	}

	written, err := writeReport(t.Context(), path, cfg.ReportDir, "json", opts)
	if err != nil {
		t.Fatalf("writeReport failed: %v", err)
	}
	if filepath.Dir(written) != cfg.ReportDir {
		t.Errorf("Report written outside %s: %s", cfg.ReportDir, written)
	}
}
