package schedule

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const sampleJSON = `{
  "tasks": [
    {"name": " Mobilização ", "baseline_start": "01/01/2024", "baseline_end": "05/01/2024", "baseline_duration": 5, "cost": 500, "critical": true, "float": "0 dias"},
    {"name": "Fundação", "baseline_start": "2024-01-08", "baseline_end": "2024-01-19", "baseline_duration": 10, "cost": 2000, "predecessors": "1TI+2 dias", "float": 3},
    {"name": "Alvenaria", "baseline_start": "2024-01-22", "baseline_end": "2024-02-02", "baseline_duration": 10, "cost": 1500, "predecessors": "2", "float": "NA"},
    {"name": "Etapa 1", "baseline_start": "2024-01-01", "baseline_end": "2024-02-02", "baseline_duration": 0, "cost": 4000, "summary": true}
  ],
  "holidays": ["25/01/2024", "invalid", "25/01/2024"]
}`

const sampleYAML = `
tasks:
  - name: Mobilização
    baseline_start: 2024-01-01
    baseline_end: 2024-01-05
    baseline_duration: 5
    cost: 500
    float: 2,5 dias
  - name: Fundação
    baseline_start: "08/01/2024"
    baseline_end: "19/01/2024"
    baseline_duration: 10
    cost: 2000
    quantity: 120
holidays:
  - 25/01/2024
`

func TestParse_JSON(t *testing.T) {
	sched, diag, err := Parse([]byte(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(sched.Tasks) != 4 {
		t.Fatalf("Expected 4 tasks, got %d", len(sched.Tasks))
	}
	if sched.Tasks[0].Name != "Mobilização" {
		t.Errorf("Expected trimmed name, got %q", sched.Tasks[0].Name)
	}
	if f := sched.Tasks[0].Float; f == nil || *f != 0 {
		t.Errorf("Expected float 0 from \"0 dias\", got %v", f)
	}
	if f := sched.Tasks[1].Float; f == nil || *f != 3 {
		t.Errorf("Expected float 3, got %v", f)
	}
	if sched.Tasks[2].Float != nil {
		t.Errorf("Expected NA float to be missing")
	}

	if len(diag.Warnings) != 1 || diag.Warnings[0].Task != "Alvenaria" {
		t.Errorf("Expected one float warning for Alvenaria, got %+v", diag.Warnings)
	}
	if len(sched.Holidays) != 1 || len(diag.HolidayErrors) != 1 {
		t.Errorf("Expected 1 holiday and 1 holiday error, got %d and %d", len(sched.Holidays), len(diag.HolidayErrors))
	}
	if got := sched.TotalCost(); got != 4000 {
		t.Errorf("Expected total cost 4000 without the summary row, got %.2f", got)
	}
	if len(diag.Messages()) != 2 {
		t.Errorf("Expected 2 diagnostic messages, got %v", diag.Messages())
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   float64
		wantOK bool
	}{
		{"Number", 4.0, 4, true},
		{"Text", "3", 3, true},
		{"DaysSuffix", "5 dias", 5, true},
		{"DecimalComma", "2,5 d", 2.5, true},
		{"NA", "NA", 0, false},
		{"NaNText", "NaN", 0, false},
		{"InfText", "Inf", 0, false},
		{"NegativeInfText", "-Infinity", 0, false},
		{"NaNNumber", math.NaN(), 0, false},
		{"InfNumber", math.Inf(1), 0, false},
		{"Bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceFloat(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("coerceFloat(%v) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("coerceFloat(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_NaNFloatIsMissing(t *testing.T) {
	data := `{"tasks": [{"name": "A", "baseline_start": "2024-01-01", "baseline_end": "2024-01-05", "baseline_duration": 5, "cost": 500, "float": "NaN"}]}`
	sched, diag, err := Parse([]byte(data), FormatJSON)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if sched.Tasks[0].Float != nil {
		t.Errorf("Expected NaN float to be missing, got %v", *sched.Tasks[0].Float)
	}
	if len(diag.Warnings) != 1 || diag.Warnings[0].Field != "float" {
		t.Errorf("Expected one float warning, got %+v", diag.Warnings)
	}
}

func TestParse_YAML(t *testing.T) {
	sched, diag, err := Parse([]byte(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(sched.Tasks) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(sched.Tasks))
	}
	if f := sched.Tasks[0].Float; f == nil || *f != 2.5 {
		t.Errorf("Expected float 2.5, got %v", f)
	}
	if q := sched.Tasks[1].Quantity; q == nil || *q != 120 {
		t.Errorf("Expected quantity 120, got %v", q)
	}
	if len(diag.Warnings) != 0 {
		t.Errorf("Unexpected warnings: %+v", diag.Warnings)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"NotJSON", `{tasks: [`, ErrInput},
		{"MissingName", `{"tasks":[{"baseline_start":"2024-01-01","baseline_end":"2024-01-02","baseline_duration":1,"cost":1}]}`, ErrInput},
		{"WrongType", `{"tasks":[{"name":"A","baseline_start":"2024-01-01","baseline_end":"2024-01-02","baseline_duration":"one","cost":1}]}`, ErrInput},
		{"BadDate", `{"tasks":[{"name":"A","baseline_start":"2024-13-01","baseline_end":"2024-01-02","baseline_duration":1,"cost":1}]}`, ErrInput},
		{"ZeroDuration", `{"tasks":[{"name":"A","baseline_start":"2024-01-01","baseline_end":"2024-01-02","baseline_duration":0,"cost":1}]}`, ErrDomain},
		{"EndBeforeStart", `{"tasks":[{"name":"A","baseline_start":"2024-01-03","baseline_end":"2024-01-02","baseline_duration":1,"cost":1}]}`, ErrDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tt.doc), FormatJSON)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	sched, _, err := Parse([]byte(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out", "schedule.json")
	if err := Save(path, sched); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Saved file missing: %v", err)
	}

	loaded, diag, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(loaded.Tasks) != len(sched.Tasks) {
		t.Errorf("Expected %d tasks, got %d", len(sched.Tasks), len(loaded.Tasks))
	}
	if !loaded.Tasks[1].BaselineStart.Equal(sched.Tasks[1].BaselineStart) {
		t.Errorf("Baseline start changed: %v vs %v", loaded.Tasks[1].BaselineStart, sched.Tasks[1].BaselineStart)
	}
	if len(diag.HolidayErrors) != 0 {
		t.Errorf("Saved holidays must reload cleanly: %+v", diag.HolidayErrors)
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, err := FormatFromPath("plan.YML"); err != nil || f != FormatYAML {
		t.Errorf("Expected yaml, got %q %v", f, err)
	}
	if _, err := FormatFromPath("plan.xlsx"); !errors.Is(err, ErrInput) {
		t.Errorf("Expected input error for xlsx, got %v", err)
	}
}
