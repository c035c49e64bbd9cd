package engine

import (
	"path/filepath"
	"testing"
	"time"

	"scurve-mcp/internal/schedule"
	"scurve-mcp/internal/stats"
)

func TestGenerate(t *testing.T) {
	start := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC) // Saturday
	sched, err := Generate(GeneratorConfig{Scenario: "balanced", Count: 20, Start: start, Seed: 7})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tasks := schedule.Analyzable(sched.Tasks)
	if len(tasks) != 20 {
		t.Fatalf("Expected 20 tasks, got %d", len(tasks))
	}
	if len(sched.Tasks)-len(tasks) != 3 {
		t.Errorf("Expected 3 summary rows, got %d", len(sched.Tasks)-len(tasks))
	}
	if !tasks[0].BaselineStart.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected first task on Monday 2024-03-04, got %s", tasks[0].BaselineStart)
	}

	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			t.Errorf("Generated invalid task: %v", err)
		}
		if n := len(stats.BusinessDays(task.BaselineStart, task.BaselineEnd)); n != task.BaselineDuration {
			t.Errorf("%s: %d business days for duration %d", task.Name, n, task.BaselineDuration)
		}
		if task.Critical && (task.Float == nil || *task.Float != 0) {
			t.Errorf("%s: critical task must have zero float", task.Name)
		}
	}

	if len(stats.CriticalPath(sched.Tasks)) != 10 {
		t.Errorf("Expected 10 critical tasks")
	}
	if _, err := stats.BuildSCurve(sched.Tasks, sched.Holidays, stats.Month, stats.DefaultShapes()); err != nil {
		t.Errorf("Generated schedule is not analyzable: %v", err)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := GeneratorConfig{Scenario: "frontloaded", Count: 12, Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Seed: 42}
	a, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if a.TotalCost() != b.TotalCost() {
		t.Errorf("Same seed produced different totals: %.2f vs %.2f", a.TotalCost(), b.TotalCost())
	}
}

func TestGenerate_Errors(t *testing.T) {
	if _, err := Generate(GeneratorConfig{Scenario: "chaos", Count: 10}); err == nil {
		t.Error("Expected error for unknown scenario")
	}
	if _, err := Generate(GeneratorConfig{Scenario: "balanced", Count: 1}); err == nil {
		t.Error("Expected error for count below 2")
	}
}

func TestGenerate_RoundTrip(t *testing.T) {
	sched, err := Generate(GeneratorConfig{Scenario: "backloaded", Count: 16, Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "gen.json")
	if err := schedule.Save(path, sched); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, _, err := schedule.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(loaded.Tasks) != len(sched.Tasks) {
		t.Errorf("Expected %d rows, got %d", len(sched.Tasks), len(loaded.Tasks))
	}
	if loaded.TotalCost() != sched.TotalCost() {
		t.Errorf("Total cost changed across save/load: %.2f vs %.2f", sched.TotalCost(), loaded.TotalCost())
	}
}
