package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/browser"
)

// Format is an output encoding for a report.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
)

// ParseFormat accepts the format names and their file extensions.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported report format %q (use markdown, json or html)", s)
	}
}

// Ext returns the file extension for f.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	default:
		return ".json"
	}
}

// Render writes r to w in the given format.
func Render(w io.Writer, r *Report, f Format) error {
	switch f {
	case FormatMarkdown:
		return RenderMarkdown(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatHTML:
		return RenderHTML(w, r)
	default:
		return fmt.Errorf("unsupported report format %q", f)
	}
}

// WriteFile renders r into dir and returns the path written.
func WriteFile(dir string, r *Report, f Format) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, r, f); err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName(r, f))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// FileName derives a stable name from the source and the run ID.
func FileName(r *Report, f Format) string {
	base := "schedule"
	if r.Source != "" {
		base = strings.TrimSuffix(filepath.Base(r.Source), filepath.Ext(r.Source))
	}
	id := r.RunID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s-scurve-%s%s", base, id, f.Ext())
}

// Open shows a written report in the default browser.
func Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return browser.OpenFile(abs)
}
