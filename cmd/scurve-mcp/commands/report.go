package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"scurve-mcp/internal/report"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	reportFormat string
	reportOut    string
	openReport   bool
	watchReport  bool
)

var reportCmd = &cobra.Command{
	Use:   "report <schedule>",
	Short: "Write a full Markdown, JSON or HTML analysis report",
	Long: `Runs the S-curve, indicator, duration, float and critical path analyses and
writes one report file. With --watch the report is rebuilt every time the
schedule file changes, until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(reportFormat)
		if err != nil {
			return err
		}
		opts, err := analysisOptions(cmd)
		if err != nil {
			return err
		}
		opts.Source = args[0]

		dir := reportOut
		if dir == "" {
			dir = cfg.ReportDir
		}

		path, err := writeReport(cmd.Context(), args[0], dir, format, opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)

		if openReport {
			if err := report.Open(path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Could not open report in browser")
			}
		}
		if !watchReport {
			return nil
		}

		log.Info().Str("path", args[0]).Msg("Watching schedule for changes")
		err = report.Watch(cmd.Context(), args[0], 500*time.Millisecond, func() {
			path, err := writeReport(cmd.Context(), args[0], dir, format, opts)
			if err != nil {
				log.Error().Err(err).Str("path", args[0]).Msg("Report rebuild failed")
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func writeReport(ctx context.Context, path, dir string, format report.Format, opts report.Options) (string, error) {
	sched, warnings, err := loadInput(path)
	if err != nil {
		return "", err
	}
	r, err := report.Build(ctx, sched, nil, opts)
	if err != nil {
		return "", err
	}
	r.Warnings = append(warnings, r.Warnings...)

	written, err := report.WriteFile(dir, r, format)
	if err != nil {
		return "", err
	}
	log.Info().Str("run", r.RunID).Str("report", filepath.Clean(written)).Msg("Report written")
	return written, nil
}

func init() {
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "markdown", "report format: markdown, json or html")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output directory (default <DATA_PATH>/reports)")
	reportCmd.Flags().BoolVar(&openReport, "open", false, "open the report in the default browser")
	reportCmd.Flags().BoolVarP(&watchReport, "watch", "w", false, "rebuild the report whenever the schedule file changes")

	rootCmd.AddCommand(reportCmd)
}
