package engine

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"scurve-mcp/internal/schedule"
	"scurve-mcp/internal/stats"
)

type GeneratorConfig struct {
	Scenario string // "balanced", "frontloaded" or "backloaded"
	Count    int
	Start    time.Time
	Seed     int64
}

var scenarios = map[string]bool{"balanced": true, "frontloaded": true, "backloaded": true}

// phaseSize is how many tasks share one summary row.
const phaseSize = 8

// Generate builds a synthetic schedule: a critical chain of finish-to-start
// tasks with parallel support tasks hanging off it, some leads and lags,
// and one summary row per phase.
func Generate(cfg GeneratorConfig) (*schedule.Schedule, error) {
	if !scenarios[cfg.Scenario] {
		return nil, fmt.Errorf("unknown scenario %q (use balanced, frontloaded or backloaded)", cfg.Scenario)
	}
	if cfg.Count < 2 {
		return nil, fmt.Errorf("count must be at least 2, got %d", cfg.Count)
	}
	if cfg.Start.IsZero() {
		cfg.Start = time.Now()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	var tasks []schedule.Task
	cursor := nextBusinessDay(schedule.DateOf(cfg.Start))
	prevChain := 0 // row number of the previous chain task, 1-based

	for i := 0; i < cfg.Count; i++ {
		if i%phaseSize == 0 {
			tasks = append(tasks, schedule.Task{
				Name:    fmt.Sprintf("Fase %d", i/phaseSize+1),
				Summary: true,
			})
		}

		progress := float64(i) / float64(cfg.Count-1)
		duration := int(math.Max(1, math.Round(weibullSample(rng, 1.6, 12))))
		onChain := i%2 == 0

		start := cursor
		var preds string
		switch {
		case prevChain == 0:
		case onChain:
			preds = strconv.Itoa(prevChain)
		default:
			// Support tasks start with their chain task, sometimes offset.
			start = tasks[prevChain-1].BaselineStart
			switch rng.Intn(6) {
			case 0:
				preds = fmt.Sprintf("%dII+2 dias", prevChain)
				start = addBusinessDays(start, 2)
			case 1:
				preds = fmt.Sprintf("%d-1 dia", prevChain)
			default:
				preds = fmt.Sprintf("%dII", prevChain)
			}
		}
		end := addBusinessDays(start, duration-1)

		t := schedule.Task{
			Name:             fmt.Sprintf("Atividade %03d", i+1),
			BaselineStart:    start,
			BaselineEnd:      end,
			BaselineDuration: duration,
			Cost:             math.Round(float64(duration) * dailyRate(cfg.Scenario, progress, rng)),
			Predecessors:     preds,
			Critical:         onChain,
			Duration:         duration,
		}
		if onChain {
			zero := 0.0
			t.Float = &zero
			q := float64(10 * (1 + rng.Intn(20)))
			p := math.Round(q/float64(duration)*100) / 100
			t.Quantity, t.Productivity = &q, &p
		} else if rng.Intn(10) > 0 {
			f := float64(1 + rng.Intn(15))
			t.Float = &f
		}

		tasks = append(tasks, t)
		if onChain {
			prevChain = len(tasks)
			cursor = nextBusinessDay(end.AddDate(0, 0, 1))
		}
	}

	linkSuccessors(tasks)

	return &schedule.Schedule{
		Tasks:    tasks,
		Holidays: holidaysBetween(tasks[1].BaselineStart, cursor),
	}, nil
}

// dailyRate shapes cost intensity over the project life.
func dailyRate(scenario string, progress float64, rng *rand.Rand) float64 {
	base := 800 + rng.Float64()*400
	switch scenario {
	case "frontloaded":
		return base * (1.8 - 1.2*progress)
	case "backloaded":
		return base * (0.6 + 1.2*progress)
	default:
		// Peaks mid-project like a typical construction baseline.
		return base * (0.6 + 1.6*math.Sin(math.Pi*progress))
	}
}

// linkSuccessors fills the successor column from the predecessor numbers so
// both sides of every relationship are present, as planning exports do.
func linkSuccessors(tasks []schedule.Task) {
	succ := make(map[int][]string)
	for i, t := range tasks {
		for _, l := range t.Links() {
			id, err := strconv.Atoi(l.ID)
			if l.Malformed || err != nil || id < 1 || id > len(tasks) {
				continue
			}
			succ[id] = append(succ[id], strconv.Itoa(i+1))
		}
	}
	for id, rows := range succ {
		tasks[id-1].Successors = strings.Join(rows, ";")
	}
}

// holidaysBetween returns the fixed national holidays that fall on business
// days inside [from, to].
func holidaysBetween(from, to time.Time) []time.Time {
	var out []time.Time
	for y := from.Year(); y <= to.Year(); y++ {
		for _, md := range [][2]int{{1, 1}, {4, 21}, {5, 1}, {9, 7}, {10, 12}, {11, 2}, {11, 15}, {12, 25}} {
			d := time.Date(y, time.Month(md[0]), md[1], 0, 0, 0, 0, time.UTC)
			if d.Before(from) || d.After(to) || !stats.IsBusinessDay(d) {
				continue
			}
			out = append(out, d)
		}
	}
	return out
}

func nextBusinessDay(t time.Time) time.Time {
	for !stats.IsBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// addBusinessDays moves n business days forward from a business day.
func addBusinessDays(t time.Time, n int) time.Time {
	t = nextBusinessDay(t)
	for n > 0 {
		t = t.AddDate(0, 0, 1)
		if stats.IsBusinessDay(t) {
			n--
		}
	}
	return t
}

func weibullSample(rng *rand.Rand, k, lambda float64) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.0001
	}
	// X = lambda * (-ln(1-u))^(1/k)
	return lambda * math.Pow(-math.Log(1.0-u), 1.0/k)
}
