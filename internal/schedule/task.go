package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInput marks malformed caller-supplied text (holiday lines, dates).
	ErrInput = errors.New("input error")
	// ErrDomain marks a task record the engine cannot analyze.
	ErrDomain = errors.New("domain error")
)

// Task is one schedule line item as exported from the planning tool.
type Task struct {
	Name             string    `json:"name"`
	BaselineStart    time.Time `json:"baseline_start"`
	BaselineEnd      time.Time `json:"baseline_end"`
	BaselineDuration int       `json:"baseline_duration"` // days
	Cost             float64   `json:"cost"`
	Predecessors     string    `json:"predecessors"`
	Successors       string    `json:"successors"`
	Critical         bool      `json:"critical"`
	Float            *float64  `json:"float,omitempty"` // nil when missing or non-numeric
	Summary          bool      `json:"summary"`

	// Presentation columns carried for the critical path table.
	Duration     int      `json:"duration,omitempty"`
	Quantity     *float64 `json:"quantity,omitempty"`
	Productivity *float64 `json:"productivity,omitempty"`
}

// DailyCost spreads the baseline cost evenly over the baseline duration.
func (t Task) DailyCost() (float64, error) {
	if t.BaselineDuration <= 0 {
		return 0, fmt.Errorf("%w: task %q has non-positive baseline duration %d", ErrDomain, t.Name, t.BaselineDuration)
	}
	return t.Cost / float64(t.BaselineDuration), nil
}

// Validate checks the invariants every analyzable task must hold.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: task name is empty", ErrDomain)
	}
	if t.BaselineDuration <= 0 {
		return fmt.Errorf("%w: task %q has non-positive baseline duration %d", ErrDomain, t.Name, t.BaselineDuration)
	}
	if t.BaselineEnd.Before(t.BaselineStart) {
		return fmt.Errorf("%w: task %q ends (%s) before it starts (%s)", ErrDomain, t.Name,
			t.BaselineEnd.Format(DateLayout), t.BaselineStart.Format(DateLayout))
	}
	if t.Cost < 0 {
		return fmt.Errorf("%w: task %q has negative cost %.2f", ErrDomain, t.Name, t.Cost)
	}
	return nil
}

// Links parses the predecessor expression.
func (t Task) Links() Links {
	return ParseLinks(t.Predecessors)
}

// Analyzable drops summary rows, which never take part in any analysis.
// The input slice is not modified.
func Analyzable(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Summary {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Schedule is a parsed schedule file.
type Schedule struct {
	Tasks    []Task      `json:"tasks"`
	Holidays []time.Time `json:"holidays,omitempty"`
}

// TotalCost sums the baseline cost of all non-summary tasks.
func (s *Schedule) TotalCost() float64 {
	total := 0.0
	for _, t := range Analyzable(s.Tasks) {
		total += t.Cost
	}
	return total
}
