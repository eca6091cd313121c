package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/internal/iocache"
	"github.com/huangsam/fastball/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadAnalysisBackend reads and validates the analysis backend settings.
// An empty backend is treated as NoneBackend.
func loadAnalysisBackend() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("analysis-backend")))
	if backend == "" {
		backend = schema.NoneBackend
	}
	connStr := viper.GetString("analysis-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// analysisSetup loads minimal configuration needed for analysis operations.
// This is used by commands that need analysis access without full shared setup.
func analysisSetup() error {
	backend, connStr, err := loadAnalysisBackend()
	if err != nil {
		return err
	}

	// Initialize stores with the loaded config (no feed caching for analysis commands)
	if err := iocache.InitStores(rootCtx, iocache.StoreOptions{
		CacheBackend:    schema.NoneBackend,
		AnalysisBackend: backend,
		AnalysisConnStr: connStr,
	}); err != nil {
		return fmt.Errorf("failed to initialize analysis: %w", err)
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// analysisSetupWrapper wraps analysisSetup to provide PreRunE for analysis commands.
func analysisSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisSetup()
}

// analysisMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func analysisMigrateSetup() error {
	backend, connStr, err := loadAnalysisBackend()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetAnalysisDBFilePath()
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr

	return nil
}

// analysisMigrateSetupWrapper wraps analysisMigrateSetup to provide PreRunE for migrate command.
func analysisMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisMigrateSetup()
}

// analysisCmd focused on run history management.
//
// Note: Analysis subcommands use minimal initialization (analysisSetup) instead of
// the full sharedSetup used by run commands.
var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Manage the history of speeds runs and exports",
	Long: `Manage the history of speeds runs.

When enabled with --analysis-backend, every speeds run is tracked, storing:
- Run metadata (timestamp, configuration, duration, game count)
- The aggregated speeds of every pitcher in the run

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  fastball analysis status --analysis-backend sqlite

  # Export for analysis in pandas/DuckDB
  fastball analysis export --analysis-backend sqlite --output-file runs`,
}

// analysisClearCmd clears the analysis data.
var analysisClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all tracked runs",
	Long: `Delete all stored runs and pitcher speed history.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  fastball analysis export --output-file backup
  fastball analysis clear`,
	PreRunE: analysisMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearAnalysis(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
			contract.LogFatal("Failed to clear analysis data", err)
		}
		fmt.Println("Analysis data cleared successfully.")
	},
}

// analysisStatusCmd shows analysis status.
var analysisStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about tracked runs.

Displays:
- Backend type and connection status
- Total number of runs stored
- Last and oldest run timestamps
- Total games aggregated across all runs
- Database table sizes

Examples:
  # Check run tracking status
  fastball analysis status --analysis-backend sqlite`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetAnalysisStore()
		if store == nil {
			contract.LogFatal("Failed to get analysis status", fmt.Errorf("analysis tracking is not configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get analysis status", err)
		}
		iocache.PrintAnalysisStatus(status)
	},
}

// analysisExportCmd exports analysis data to Parquet files.
var analysisExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all tracked runs to Parquet format.

Writes two files next to --output-file:
- <output-file>.analysis_runs.parquet  - metadata about each run
- <output-file>.pitcher_speeds.parquet - aggregated speeds per pitcher and run

Requires: --output-file parameter

Examples:
  # Export all data
  fastball analysis export --analysis-backend sqlite --output-file fastball

  # Query with DuckDB
  duckdb -c "SELECT * FROM read_parquet('fastball.pitcher_speeds.parquet') ORDER BY max_speed DESC LIMIT 10"`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteAnalysisExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export analysis data", err)
		}
	},
}

// analysisMigrateCmd runs database migrations for the analysis store.
var analysisMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run tracking store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  fastball analysis migrate --analysis-backend sqlite

  # Rollback to initial state
  fastball analysis migrate --analysis-backend sqlite --target-version 0`,
	PreRunE: analysisMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateAnalysis(cfg.AnalysisBackend, cfg.AnalysisDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
