package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"scurve-mcp/internal/config"
	"scurve-mcp/internal/logging"
	"scurve-mcp/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "scurve-mcp",
	Short: "scurve-mcp is a schedule S-curve and risk analysis MCP server",
	Long: `An MCP server and CLI that spreads baseline task costs over business days,
compares the cumulative curve with reference S-curves, and reports schedule
logic indicators, duration outliers, short float tasks and the critical path.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("command", cmd.Name()).
			Msg("scurve-mcp starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info().Msg("MCP Server starting Stdio loop")
		return mcp.NewServer(cfg, Version).Start(cmd.Context())
	},
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
