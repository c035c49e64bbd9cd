package schedule

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a schedule file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// taskRecord is the on-disk shape of a task. Dates stay textual so that both
// ISO and day-first exports are accepted; float is untyped because planning
// tools export it as "3 dias", "3" or "NA".
type taskRecord struct {
	Name             string   `json:"name" yaml:"name" jsonschema:"task name as shown in the schedule"`
	BaselineStart    string   `json:"baseline_start" yaml:"baseline_start" jsonschema:"baseline start date (YYYY-MM-DD or DD/MM/YYYY)"`
	BaselineEnd      string   `json:"baseline_end" yaml:"baseline_end" jsonschema:"baseline finish date (YYYY-MM-DD or DD/MM/YYYY)"`
	BaselineDuration int      `json:"baseline_duration" yaml:"baseline_duration" jsonschema:"baseline duration in days"`
	Cost             float64  `json:"cost" yaml:"cost" jsonschema:"baseline cost"`
	Predecessors     string   `json:"predecessors,omitempty" yaml:"predecessors,omitempty" jsonschema:"predecessor expression, e.g. 3;5II+2 dias"`
	Successors       string   `json:"successors,omitempty" yaml:"successors,omitempty" jsonschema:"successor expression"`
	Critical         bool     `json:"critical,omitempty" yaml:"critical,omitempty" jsonschema:"task lies on the critical path"`
	Float            any      `json:"float,omitempty" yaml:"float,omitempty" jsonschema:"total float in days; non-numeric values are treated as missing"`
	Summary          bool     `json:"summary,omitempty" yaml:"summary,omitempty" jsonschema:"summary rows are excluded from analysis"`
	Duration         int      `json:"duration,omitempty" yaml:"duration,omitempty" jsonschema:"scheduled duration in days"`
	Quantity         *float64 `json:"quantity,omitempty" yaml:"quantity,omitempty" jsonschema:"planned quantity"`
	Productivity     *float64 `json:"productivity,omitempty" yaml:"productivity,omitempty" jsonschema:"planned productivity"`
}

type fileRecord struct {
	Tasks    []taskRecord `json:"tasks" yaml:"tasks" jsonschema:"schedule line items"`
	Holidays []string     `json:"holidays,omitempty" yaml:"holidays,omitempty" jsonschema:"holiday dates, DD/MM/YYYY"`
}

// Warning is a non-fatal data quality finding.
type Warning struct {
	Task    string `json:"task,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Diagnostics collects everything a load reported without failing.
type Diagnostics struct {
	Warnings      []Warning       `json:"warnings,omitempty"`
	HolidayErrors []*HolidayError `json:"holiday_errors,omitempty"`
}

// Messages flattens diagnostics into human-readable lines.
func (d *Diagnostics) Messages() []string {
	if d == nil {
		return nil
	}
	var out []string
	for _, w := range d.Warnings {
		if w.Task != "" {
			out = append(out, fmt.Sprintf("%s (%s): %s", w.Task, w.Field, w.Message))
		} else {
			out = append(out, fmt.Sprintf("%s: %s", w.Field, w.Message))
		}
	}
	for _, e := range d.HolidayErrors {
		out = append(out, e.Error())
	}
	return out
}

var (
	schemaOnce     sync.Once
	resolvedSchema *jsonschema.Resolved
	schemaErr      error
)

func fileSchema() (*jsonschema.Resolved, error) {
	schemaOnce.Do(func() {
		s, err := jsonschema.For[fileRecord](nil)
		if err != nil {
			schemaErr = fmt.Errorf("failed to derive schedule schema: %w", err)
			return
		}
		resolvedSchema, schemaErr = s.Resolve(nil)
	})
	return resolvedSchema, schemaErr
}

// FormatFromPath infers the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unsupported schedule file extension %q", ErrInput, filepath.Ext(path))
	}
}

// LoadFile reads and parses a schedule file.
func LoadFile(path string) (*Schedule, *Diagnostics, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read schedule: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes, validates and converts a schedule document.
func Parse(data []byte, format Format) (*Schedule, *Diagnostics, error) {
	jsonData := data
	if format == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, nil, fmt.Errorf("%w: invalid YAML: %v", ErrInput, err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: YAML document is not representable as JSON: %v", ErrInput, err)
		}
		jsonData = converted
	}

	var instance any
	if err := json.Unmarshal(jsonData, &instance); err != nil {
		return nil, nil, fmt.Errorf("%w: invalid JSON: %v", ErrInput, err)
	}
	schema, err := fileSchema()
	if err != nil {
		return nil, nil, err
	}
	if err := schema.Validate(instance); err != nil {
		return nil, nil, fmt.Errorf("%w: schedule does not match schema: %v", ErrInput, err)
	}

	var rec fileRecord
	if err := json.Unmarshal(jsonData, &rec); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInput, err)
	}

	diag := &Diagnostics{}
	sched := &Schedule{Tasks: make([]Task, 0, len(rec.Tasks))}

	for i, r := range rec.Tasks {
		t, err := r.toTask(diag)
		if err != nil {
			return nil, nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		sched.Tasks = append(sched.Tasks, t)
	}

	sched.Holidays, diag.HolidayErrors = ParseHolidayList(rec.Holidays)
	return sched, diag, nil
}

func (r taskRecord) toTask(diag *Diagnostics) (Task, error) {
	name := strings.TrimSpace(r.Name)
	start, err := ParseDate(r.BaselineStart)
	if err != nil {
		return Task{}, fmt.Errorf("%q baseline_start: %w", name, err)
	}
	end, err := ParseDate(r.BaselineEnd)
	if err != nil {
		return Task{}, fmt.Errorf("%q baseline_end: %w", name, err)
	}

	t := Task{
		Name:             name,
		BaselineStart:    start,
		BaselineEnd:      end,
		BaselineDuration: r.BaselineDuration,
		Cost:             r.Cost,
		Predecessors:     r.Predecessors,
		Successors:       r.Successors,
		Critical:         r.Critical,
		Summary:          r.Summary,
		Duration:         r.Duration,
		Quantity:         r.Quantity,
		Productivity:     r.Productivity,
	}

	if r.Float != nil {
		if f, ok := coerceFloat(r.Float); ok {
			t.Float = &f
		} else {
			diag.Warnings = append(diag.Warnings, Warning{
				Task:    name,
				Field:   "float",
				Message: fmt.Sprintf("non-numeric value %v treated as missing", r.Float),
			})
		}
	}

	// Summary rows are dropped before analysis, so their rollup values are
	// not held to task invariants.
	if !t.Summary {
		if err := t.Validate(); err != nil {
			return Task{}, err
		}
	}
	return t, nil
}

// coerceFloat mirrors the spreadsheet export: numbers pass through, text
// may carry a day unit suffix and a decimal comma, anything else is missing.
// NaN and infinities count as missing.
func coerceFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x) && !math.IsInf(x, 0)
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		for _, suffix := range []string{"dias", "dia", "days", "day", "ed", "d"} {
			if strings.HasSuffix(s, suffix) {
				s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
				break
			}
		}
		s = strings.Replace(s, ",", ".", 1)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Save writes a schedule as JSON in the same shape Parse accepts.
func Save(path string, s *Schedule) error {
	rec := fileRecord{Tasks: make([]taskRecord, 0, len(s.Tasks))}
	for _, t := range s.Tasks {
		r := taskRecord{
			Name:             t.Name,
			BaselineStart:    t.BaselineStart.Format(DateLayout),
			BaselineEnd:      t.BaselineEnd.Format(DateLayout),
			BaselineDuration: t.BaselineDuration,
			Cost:             t.Cost,
			Predecessors:     t.Predecessors,
			Successors:       t.Successors,
			Critical:         t.Critical,
			Summary:          t.Summary,
			Duration:         t.Duration,
			Quantity:         t.Quantity,
			Productivity:     t.Productivity,
		}
		if t.Float != nil {
			r.Float = *t.Float
		}
		rec.Tasks = append(rec.Tasks, r)
	}
	for _, h := range s.Holidays {
		rec.Holidays = append(rec.Holidays, h.Format("02/01/2006"))
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(out, '\n'), 0644)
}
