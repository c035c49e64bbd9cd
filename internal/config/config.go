package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"scurve-mcp/internal/schedule"
	"scurve-mcp/internal/stats"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AnalysisConfig holds the defaults applied when a caller does not override them.
type AnalysisConfig struct {
	Granularity           stats.Granularity
	Shapes                stats.Shapes
	HighDurationThreshold int
	LowDurationThreshold  int
	ShortFloatDays        int
	Holidays              []time.Time
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Analysis            AnalysisConfig
	DataPath            string
	LogDir              string
	ReportDir           string
	HolidaysFile        string
	EnableMermaidCharts bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	reportDir := filepath.Join(dataPath, "reports")

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", reportDir).Msg("Failed to create report directory")
	}

	analysis, err := loadAnalysis()
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		Analysis:            analysis,
		DataPath:            dataPath,
		LogDir:              logDir,
		ReportDir:           reportDir,
		HolidaysFile:        getEnv("HOLIDAYS_FILE", ""),
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
	}

	if cfg.HolidaysFile != "" {
		holidays, err := LoadHolidays(cfg.HolidaysFile)
		if err != nil {
			return nil, err
		}
		cfg.Analysis.Holidays = holidays
	}

	return cfg, nil
}

// loadAnalysis reads the analysis defaults and rejects values the engine
// would refuse later anyway.
func loadAnalysis() (AnalysisConfig, error) {
	g, err := stats.ParseGranularity(getEnv("SCURVE_GRANULARITY", string(stats.Month)))
	if err != nil {
		return AnalysisConfig{}, fmt.Errorf("SCURVE_GRANULARITY: %w", err)
	}

	shapes := stats.Shapes{
		S30: getEnvFloat("SCURVE_S30", stats.DefaultShape),
		S50: getEnvFloat("SCURVE_S50", stats.DefaultShape),
		S70: getEnvFloat("SCURVE_S70", stats.DefaultShape),
	}
	if err := shapes.Validate(); err != nil {
		return AnalysisConfig{}, fmt.Errorf("SCURVE_S30/S50/S70: %w", err)
	}

	return AnalysisConfig{
		Granularity:           g,
		Shapes:                shapes,
		HighDurationThreshold: getEnvInt("HIGH_DURATION_THRESHOLD", 20),
		LowDurationThreshold:  getEnvInt("LOW_DURATION_THRESHOLD", 5),
		ShortFloatDays:        getEnvInt("SHORT_FLOAT_DAYS", 6),
	}, nil
}

// LoadHolidays reads a holiday text file. Invalid lines are logged and
// skipped; only an unreadable file is an error.
func LoadHolidays(path string) ([]time.Time, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holidays file: %w", err)
	}
	holidays, errs := schedule.ParseHolidays(string(data))
	for _, e := range errs {
		log.Warn().Err(e).Str("path", path).Msg("Skipping holiday line")
	}
	return holidays, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer setting")
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric setting")
	}
	return fallback
}
