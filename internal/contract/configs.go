package contract

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/fastball/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit   = 10
	MaxResultLimit       = 1000
	DefaultPrecision     = 1
	DefaultTimeout       = 30 * time.Second
	DefaultHistogramBins = 20
	DefaultHardThrow     = 100.0
	DefaultFastAverage   = 95.0
	DefaultProgressEvery = 100
)

// Config holds the runtime configuration for a fetch, speeds or report run.
// This struct remains the "final, validated" config.
type Config struct {
	StartDate time.Time
	EndDate   time.Time
	HasRange  bool // Start/End were provided

	SportID   int
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	ResultLimit int // 0 shows every pitcher
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	InputFile   string // speeds JSON consumed by the report command
	Width       int    // Terminal width override (0 = auto-detect)

	FastballCodes      []string
	MinAvgFilter       bool // drop pitchers without a fastball average before reporting
	HardThrowThreshold float64
	FastAvgThreshold   float64
	HistogramBins      int

	CacheBackend   schema.DatabaseBackend
	CacheDir       string
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputFileStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Start             string        `mapstructure:"start"`
	End               string        `mapstructure:"end"`
	SportID           int           `mapstructure:"sport-id"`
	BaseURL           string        `mapstructure:"base-url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	UserAgent         string        `mapstructure:"user-agent"`
	Limit             int           `mapstructure:"limit"`
	Precision         int           `mapstructure:"precision"`
	Output            string        `mapstructure:"output"`
	OutputFile        string        `mapstructure:"output-file"`
	Width             int           `mapstructure:"width"`
	CacheBackend      string        `mapstructure:"cache-backend"`
	CacheDir          string        `mapstructure:"cache-dir"`
	CacheDBConnect    string        `mapstructure:"cache-db-connect"`
	AnalysisBackend   string        `mapstructure:"analysis-backend"`
	AnalysisDBConnect string        `mapstructure:"analysis-db-connect"`
	Color             string        `mapstructure:"color"`
	FastballCodes     string        `mapstructure:"fastball-codes"`

	// --- Fields from reportCmd.Flags() ---
	MinAvg        string  `mapstructure:"min-avg"`
	HardThrow     float64 `mapstructure:"hard-throw"`
	FastAverage   float64 `mapstructure:"fast-average"`
	HistogramBins int     `mapstructure:"bins"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.FastballCodes != nil {
		clone.FastballCodes = slices.Clone(c.FastballCodes)
	}
	return &clone
}

// ConfigParams returns the subset of the config recorded alongside a tracked run.
func (c *Config) ConfigParams() map[string]any {
	params := map[string]any{
		"sport_id":       c.SportID,
		"fastball_codes": strings.Join(c.FastballCodes, ","),
		"cache_backend":  string(c.CacheBackend),
	}
	if c.HasRange {
		params["start_date"] = c.StartDate.Format(DateFormat)
		params["end_date"] = c.EndDate.Format(DateFormat)
	}
	return params
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	return processAndValidateAt(cfg, input, time.Now())
}

// processAndValidateAt is ProcessAndValidate with an injectable clock.
func processAndValidateAt(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDateRange(cfg, input, now); err != nil {
		return err
	}
	if err := processFastballCodes(cfg, input); err != nil {
		return err
	}
	if err := processReportOptions(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of connection strings
// for MySQL, PostgreSQL and Redis backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.FileBackend, schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	case schema.RedisBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.HasPrefix(connStr, "redis://") && !strings.HasPrefix(connStr, "rediss://") {
			return fmt.Errorf("Redis connection string must be a URL starting with redis:// or rediss://")
		}
	}
	return nil
}

// validateBackendConfigs validates feed cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Feed Cache Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.FileBackend
	}
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be file, sqlite, mysql, postgresql, redis, none", input.CacheBackend)
	}
	cfg.CacheDir = input.CacheDir
	if cfg.CacheDir == "" {
		cfg.CacheDir = schema.DefaultCacheDir
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		return nil
	}
	if _, ok := schema.ValidAnalysisBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return err
	}

	// Validate that cache and analysis use different SQLite files
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		analysisDBPath := cfg.AnalysisDBConnect
		if analysisDBPath == "" {
			analysisDBPath = GetAnalysisDBFilePath()
		}
		if cacheDBPath == analysisDBPath {
			return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-date fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.InputFile = input.InputFileStr
	cfg.Width = input.Width
	cfg.UserAgent = input.UserAgent
	if cfg.UserAgent == "" {
		cfg.UserAgent = schema.DefaultUserAgent
	}

	cfg.UseColors = true
	if input.Color != "" {
		colors, err := ParseBoolString(input.Color)
		if err != nil {
			return fmt.Errorf("invalid --color value: %w", err)
		}
		cfg.UseColors = colors
	}

	// --- 1. ResultLimit Validation ---
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Stats API Validation ---
	if input.SportID <= 0 {
		return fmt.Errorf("sport-id must be greater than 0 (received %d)", input.SportID)
	}
	cfg.SportID = input.SportID

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(input.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = schema.DefaultBaseURL
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return fmt.Errorf("base-url must start with http:// or https:// (received %q)", input.BaseURL)
	}

	if input.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative (received %s)", input.Timeout)
	}
	cfg.Timeout = input.Timeout
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet, xlsx", cfg.Output)
	}
	if (cfg.Output == schema.ParquetOut || cfg.Output == schema.XLSXOut) && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for %s output", cfg.Output)
	}

	// --- 4. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processDateRange handles the date parsing and range validation.
// A single bound means a one-day range.
func processDateRange(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.HasRange = false
	cfg.StartDate, cfg.EndDate = time.Time{}, time.Time{}

	start, end := strings.TrimSpace(input.Start), strings.TrimSpace(input.End)
	if start == "" && end == "" {
		return nil
	}

	if start != "" {
		t, err := ParseDate(start, now)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		cfg.StartDate = t
	}
	if end != "" {
		t, err := ParseDate(end, now)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
		cfg.EndDate = t
	}

	if cfg.StartDate.IsZero() {
		cfg.StartDate = cfg.EndDate
	}
	if cfg.EndDate.IsZero() {
		cfg.EndDate = cfg.StartDate
	}

	if cfg.StartDate.After(cfg.EndDate) {
		return fmt.Errorf("start date (%s) cannot be after end date (%s)", cfg.StartDate.Format(DateFormat), cfg.EndDate.Format(DateFormat))
	}
	cfg.HasRange = true
	return nil
}

// processFastballCodes parses the comma-separated fastball code list.
func processFastballCodes(cfg *Config, input *ConfigRawInput) error {
	cfg.FastballCodes = nil
	for p := range strings.SplitSeq(input.FastballCodes, ",") {
		code := strings.ToUpper(strings.TrimSpace(p))
		if code == "" || slices.Contains(cfg.FastballCodes, code) {
			continue
		}
		cfg.FastballCodes = append(cfg.FastballCodes, code)
	}
	if len(cfg.FastballCodes) == 0 {
		cfg.FastballCodes = slices.Clone(schema.DefaultFastballCodes)
	}
	return nil
}

// processReportOptions validates the thresholds and toggles used by the report command.
func processReportOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.MinAvgFilter = true
	if input.MinAvg != "" {
		v, err := ParseBoolString(input.MinAvg)
		if err != nil {
			return fmt.Errorf("invalid --min-avg value: %w", err)
		}
		cfg.MinAvgFilter = v
	}

	cfg.HardThrowThreshold = input.HardThrow
	if cfg.HardThrowThreshold == 0 {
		cfg.HardThrowThreshold = DefaultHardThrow
	}
	cfg.FastAvgThreshold = input.FastAverage
	if cfg.FastAvgThreshold == 0 {
		cfg.FastAvgThreshold = DefaultFastAverage
	}
	if cfg.HardThrowThreshold < 0 || cfg.FastAvgThreshold < 0 {
		return fmt.Errorf("speed thresholds must not be negative")
	}

	if input.HistogramBins < 0 || input.HistogramBins > 200 {
		return fmt.Errorf("bins must be between 1 and 200 (received %d)", input.HistogramBins)
	}
	cfg.HistogramBins = input.HistogramBins
	if cfg.HistogramBins == 0 {
		cfg.HistogramBins = DefaultHistogramBins
	}
	return nil
}
