package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

type scheduleArgs struct {
	Path     string   `json:"path" jsonschema:"path to a JSON or YAML schedule file; relative paths resolve against DATA_PATH"`
	Holidays []string `json:"holidays,omitempty" jsonschema:"extra holiday dates (DD/MM/YYYY) on top of the file and HOLIDAYS_FILE"`
}

type sCurveArgs struct {
	Path        string   `json:"path" jsonschema:"path to a JSON or YAML schedule file; relative paths resolve against DATA_PATH"`
	Holidays    []string `json:"holidays,omitempty" jsonschema:"extra holiday dates (DD/MM/YYYY)"`
	Granularity string   `json:"granularity,omitempty" jsonschema:"bucket period: month or week (default from SCURVE_GRANULARITY)"`
	S30         *float64 `json:"s30,omitempty" jsonschema:"shape of the 30 reference curve, one of 1.0 1.5 2.0 2.5 3.0"`
	S50         *float64 `json:"s50,omitempty" jsonschema:"shape of the 50 reference curve, one of 1.0 1.5 2.0 2.5 3.0"`
	S70         *float64 `json:"s70,omitempty" jsonschema:"shape of the 70 reference curve, one of 1.0 1.5 2.0 2.5 3.0"`
}

type shortFloatArgs struct {
	Path     string `json:"path" jsonschema:"path to a JSON or YAML schedule file"`
	MaxFloat *int   `json:"max_float,omitempty" jsonschema:"largest float in days to report (default from SHORT_FLOAT_DAYS)"`
}

type durationArgs struct {
	Path          string `json:"path" jsonschema:"path to a JSON or YAML schedule file"`
	HighThreshold *int   `json:"high_threshold,omitempty" jsonschema:"tasks longer than this many days are reported"`
	LowThreshold  *int   `json:"low_threshold,omitempty" jsonschema:"tasks shorter than this many days are reported"`
}

type reportArgs struct {
	Path        string   `json:"path" jsonschema:"path to a JSON or YAML schedule file"`
	Format      string   `json:"format,omitempty" jsonschema:"markdown, json or html (default markdown)"`
	Granularity string   `json:"granularity,omitempty" jsonschema:"bucket period: month or week"`
	Holidays    []string `json:"holidays,omitempty" jsonschema:"extra holiday dates (DD/MM/YYYY)"`
}

type roadmapArgs struct {
	Goal string `json:"goal" jsonschema:"cost_baseline, logic_quality or execution_risk"`
}

var toolNames = []string{
	"guide_schedule_review",
	"analyze_s_curve",
	"analyze_schedule_indicators",
	"get_critical_path",
	"get_short_float_tasks",
	"get_duration_outliers",
	"generate_report",
}

func (s *Server) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "guide_schedule_review",
		Description: "Returns the recommended sequence of tools for a schedule review goal. Call this first when the user's intent is broad.",
	}, textTool("guide_schedule_review", s.handleGetReviewRoadmap))

	mcp.AddTool(server, &mcp.Tool{
		Name: "analyze_s_curve",
		Description: "Spread each task's baseline cost over its business days, aggregate it per month or week, and compare the cumulative percentage with the 30/50/70 reference curves. " +
			"Cost falling on holidays is dropped, not moved; the response reports the loss.",
	}, textTool("analyze_s_curve", s.handleAnalyzeSCurve))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_schedule_indicators",
		Description: "Compute schedule logic quality indicators (leads, lags, non finish-to-start relationships, tasks without logic) as percentages, and flag the ones outside guidance.",
	}, textTool("analyze_schedule_indicators", s.handleScheduleIndicators))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_critical_path",
		Description: "List the tasks flagged critical, ordered by baseline start, with duration, quantity and productivity.",
	}, textTool("get_critical_path", s.handleCriticalPath))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_short_float_tasks",
		Description: "List tasks whose total float is positive and at most max_float days. Tasks without a numeric float are counted as missing, never as zero.",
	}, textTool("get_short_float_tasks", s.handleShortFloat))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_duration_outliers",
		Description: "List tasks with baseline duration above the high threshold or below the low threshold, with their share of all tasks and the median duration.",
	}, textTool("get_duration_outliers", s.handleDurationOutliers))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_report",
		Description: "Run every analysis and write a Markdown, JSON or HTML report into the reports folder. Returns the file path and a summary.",
	}, textTool("generate_report", s.handleGenerateReport))
}

// textTool adapts a handler returning plain data into a go-sdk tool handler
// that answers with pretty-printed JSON text.
func textTool[In any](name string, h func(context.Context, In) (any, error)) mcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		log.Debug().Str("tool", name).Msg("Tool call")
		data, err := h(ctx, in)
		if err != nil {
			log.Warn().Err(err).Str("tool", name).Msg("Tool call failed")
			return nil, nil, err
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: formatResult(data)}},
		}, nil, nil
	}
}
