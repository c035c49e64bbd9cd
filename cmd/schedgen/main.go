package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"scurve-mcp/cmd/schedgen/engine"
	"scurve-mcp/internal/schedule"
)

func main() {
	scenario := flag.String("scenario", "balanced", "Scenario to generate: balanced, frontloaded, backloaded")
	count := flag.Int("count", 60, "Number of tasks to generate (summary rows not included)")
	start := flag.String("start", time.Now().Format(schedule.DateLayout), "Project start date (YYYY-MM-DD)")
	out := flag.String("out", "./schedule.json", "Output schedule file")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	startDate, err := schedule.ParseDate(*start)
	if err != nil {
		fmt.Printf("Invalid start date: %v\n", err)
		os.Exit(1)
	}

	cfg := engine.GeneratorConfig{
		Scenario: *scenario,
		Count:    *count,
		Start:    startDate,
		Seed:     *seed,
	}

	fmt.Printf("Generating scenario '%s' (Count: %d, Start: %s, Seed: %d) to %s...\n", cfg.Scenario, cfg.Count, *start, cfg.Seed, *out)

	sched, err := engine.Generate(cfg)
	if err != nil {
		fmt.Printf("Failed to generate schedule: %v\n", err)
		os.Exit(1)
	}

	if err := schedule.Save(*out, sched); err != nil {
		fmt.Printf("Failed to save schedule: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done. Total cost %.2f over %d rows.\n", sched.TotalCost(), len(sched.Tasks))
}
