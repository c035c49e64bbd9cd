package commands

import (
	"encoding/json"
	"io"
	"time"

	"scurve-mcp/internal/config"
	"scurve-mcp/internal/report"
	"scurve-mcp/internal/schedule"
	"scurve-mcp/internal/stats"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	holidaysFile string
	granularity  string
	s30          float64
	s50          float64
	s70          float64
	highDays     int
	lowDays      int
	maxFloat     int
)

// loadInput reads the schedule and merges file, configured and --holidays
// dates. Load diagnostics are logged, not fatal.
func loadInput(path string) (*schedule.Schedule, []string, error) {
	sched, diag, err := schedule.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	warnings := diag.Messages()
	for _, w := range warnings {
		log.Warn().Str("path", path).Msg(w)
	}

	var extra []time.Time
	if holidaysFile != "" {
		if extra, err = config.LoadHolidays(holidaysFile); err != nil {
			return nil, nil, err
		}
	}
	sched.Holidays = report.MergeHolidays(sched.Holidays, cfg.Analysis.Holidays, extra)
	return sched, warnings, nil
}

// analysisOptions applies command flags on top of the configured defaults.
func analysisOptions(cmd *cobra.Command) (report.Options, error) {
	opts := report.OptionsFromConfig(cfg.Analysis)
	if cmd.Flags().Changed("granularity") {
		g, err := stats.ParseGranularity(granularity)
		if err != nil {
			return opts, err
		}
		opts.Granularity = g
	}
	if cmd.Flags().Changed("s30") {
		opts.Shapes.S30 = s30
	}
	if cmd.Flags().Changed("s50") {
		opts.Shapes.S50 = s50
	}
	if cmd.Flags().Changed("s70") {
		opts.Shapes.S70 = s70
	}
	if cmd.Flags().Changed("high") {
		opts.HighDurationThreshold = highDays
	}
	if cmd.Flags().Changed("low") {
		opts.LowDurationThreshold = lowDays
	}
	if cmd.Flags().Changed("max-float") {
		opts.ShortFloatDays = maxFloat
	}
	return opts, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var curveCmd = &cobra.Command{
	Use:   "curve <schedule>",
	Short: "Print the S-curve table with the 30/50/70 reference curves",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sched, _, err := loadInput(args[0])
		if err != nil {
			return err
		}
		opts, err := analysisOptions(cmd)
		if err != nil {
			return err
		}
		curve, err := stats.BuildSCurve(sched.Tasks, sched.Holidays, opts.Granularity, opts.Shapes)
		if err != nil {
			return err
		}
		if loss := curve.HolidayLoss(); loss > 0.005 {
			log.Warn().Float64("loss", loss).Msg("Planned cost falls on holidays and is left out of the curve")
		}
		return printJSON(cmd.OutOrStdout(), curve)
	},
}

var indicatorsCmd = &cobra.Command{
	Use:   "indicators <schedule>",
	Short: "Print schedule logic indicators and guidance breaches",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sched, _, err := loadInput(args[0])
		if err != nil {
			return err
		}
		opts, err := analysisOptions(cmd)
		if err != nil {
			return err
		}
		set, err := stats.ComputeIndicators(sched.Tasks)
		if err != nil {
			return err
		}
		high, err := stats.HighDuration(sched.Tasks, opts.HighDurationThreshold)
		if err != nil {
			return err
		}
		low, err := stats.LowDuration(sched.Tasks, opts.LowDurationThreshold)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"indicators": set,
			"breaches":   set.Assess(opts.Thresholds, &high, &low),
		})
	},
}

var criticalCmd = &cobra.Command{
	Use:   "critical <schedule>",
	Short: "Print the critical tasks ordered by baseline start",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sched, _, err := loadInput(args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), stats.CriticalPath(sched.Tasks))
	},
}

var floatCmd = &cobra.Command{
	Use:   "float <schedule>",
	Short: "Print tasks with positive float up to --max-float days",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sched, _, err := loadInput(args[0])
		if err != nil {
			return err
		}
		opts, err := analysisOptions(cmd)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), stats.ShortFloat(sched.Tasks, opts.ShortFloatDays))
	},
}

var durationsCmd = &cobra.Command{
	Use:   "durations <schedule>",
	Short: "Print tasks above --high or below --low baseline duration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sched, _, err := loadInput(args[0])
		if err != nil {
			return err
		}
		opts, err := analysisOptions(cmd)
		if err != nil {
			return err
		}
		high, err := stats.HighDuration(sched.Tasks, opts.HighDurationThreshold)
		if err != nil {
			return err
		}
		low, err := stats.LowDuration(sched.Tasks, opts.LowDurationThreshold)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), map[string]any{"high": high, "low": low})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&holidaysFile, "holidays", "", "holiday text file, one DD/MM/YYYY date per line")

	for _, c := range []*cobra.Command{curveCmd, reportCmd} {
		c.Flags().StringVarP(&granularity, "granularity", "g", "month", "bucket period: month or week")
		c.Flags().Float64Var(&s30, "s30", stats.DefaultShape, "shape of the 30 reference curve")
		c.Flags().Float64Var(&s50, "s50", stats.DefaultShape, "shape of the 50 reference curve")
		c.Flags().Float64Var(&s70, "s70", stats.DefaultShape, "shape of the 70 reference curve")
	}
	for _, c := range []*cobra.Command{indicatorsCmd, durationsCmd, reportCmd} {
		c.Flags().IntVar(&highDays, "high", 20, "high duration threshold in days")
		c.Flags().IntVar(&lowDays, "low", 5, "low duration threshold in days")
	}
	for _, c := range []*cobra.Command{floatCmd, reportCmd} {
		c.Flags().IntVar(&maxFloat, "max-float", 6, "largest float in days to report")
	}

	rootCmd.AddCommand(curveCmd, indicatorsCmd, criticalCmd, floatCmd, durationsCmd)
}
