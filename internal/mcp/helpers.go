package mcp

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"scurve-mcp/internal/report"
	"scurve-mcp/internal/schedule"
	"scurve-mcp/internal/stats"

	"github.com/rs/zerolog/log"
)

// WrapResponse is the common envelope of every tool answer.
func WrapResponse(data any, source string, warnings []string, chart string, guidance []string) map[string]any {
	res := map[string]any{
		"data": data,
	}
	if source != "" {
		res["source"] = source
	}
	if len(warnings) > 0 {
		res["warnings"] = warnings
	}
	if chart != "" {
		res["chart"] = chart
	}
	if len(guidance) > 0 {
		res["guidance"] = guidance
	}
	return res
}

func formatResult(data any) string {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(out)
}

// loaded is a schedule ready for analysis together with what its load
// reported.
type loaded struct {
	path     string
	sched    *schedule.Schedule
	warnings []string
}

func (s *Server) resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%w: path is required", schedule.ErrInput)
	}
	if !filepath.IsAbs(path) && s.cfg != nil && s.cfg.DataPath != "" {
		path = filepath.Join(s.cfg.DataPath, path)
	}
	return path, nil
}

// loadSchedule reads the file and merges request, file and configured
// holidays. Invalid extra holiday entries become warnings.
func (s *Server) loadSchedule(path string, extraHolidays []string) (*loaded, error) {
	resolved, err := s.resolvePath(path)
	if err != nil {
		return nil, err
	}

	sched, diag, err := schedule.LoadFile(resolved)
	if err != nil {
		return nil, err
	}

	warnings := diag.Messages()
	extra, errs := schedule.ParseHolidayList(extraHolidays)
	for _, e := range errs {
		warnings = append(warnings, e.Error())
	}
	sched.Holidays = report.MergeHolidays(sched.Holidays, extra, s.options().Holidays)

	log.Debug().Str("path", resolved).Int("tasks", len(sched.Tasks)).Int("holidays", len(sched.Holidays)).Msg("Schedule loaded")

	return &loaded{path: resolved, sched: sched, warnings: warnings}, nil
}

func (s *Server) options() report.Options {
	if s.cfg == nil {
		return report.DefaultOptions()
	}
	return report.OptionsFromConfig(s.cfg.Analysis)
}

func (s *Server) mermaidEnabled() bool {
	return s.cfg != nil && s.cfg.EnableMermaidCharts
}

func granularityOr(value string, fallback stats.Granularity) (stats.Granularity, error) {
	if value == "" {
		return fallback, nil
	}
	return stats.ParseGranularity(value)
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
