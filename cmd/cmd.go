// Package cmd defines the command-line interface for fastball.
package cmd

import (
	"github.com/huangsam/fastball/core"
	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(speedsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(analysisCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("start", "", "Start date as YYYY-MM-DD or 'N days ago'")
	rootCmd.PersistentFlags().String("end", "", "End date as YYYY-MM-DD or 'N days ago'")
	rootCmd.PersistentFlags().Int("sport-id", schema.DefaultSportID, "Stats API sport id (1 = MLB)")
	rootCmd.PersistentFlags().String("base-url", schema.DefaultBaseURL, "Stats API base URL")
	rootCmd.PersistentFlags().Duration("timeout", contract.DefaultTimeout, "Timeout of each Stats API request")
	rootCmd.PersistentFlags().String("user-agent", schema.DefaultUserAgent, "User-Agent header sent to the Stats API")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of pitchers to display (0 = all)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet or xlsx")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for speed columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("fastball-codes", "FF,FT,SI,FC", "Comma-separated pitch type codes counted as fastballs")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.FileBackend), "Feed cache backend: file or sqlite or mysql or postgresql or redis or none")
	rootCmd.PersistentFlags().String("cache-dir", schema.DefaultCacheDir, "Directory of the file feed cache")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Connection string for the feed cache (mysql/postgresql DSN or redis:// URL)")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for run tracking")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().String("min-avg", "yes", "Drop pitchers without a positive fastball average (yes/no)")
	reportCmd.Flags().Float64("hard-throw", contract.DefaultHardThrow, "Max speed threshold in mph for the hard thrower list")
	reportCmd.Flags().Float64("fast-average", contract.DefaultFastAverage, "Average fastball threshold in mph")
	reportCmd.Flags().Int("bins", contract.DefaultHistogramBins, "Number of histogram bins")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}

// runExecutor executes one run mode with the shared client and cache manager.
func runExecutor(msg string, executeFunc core.ExecutorFunc) {
	if err := executeFunc(rootCtx, cfg, statsClient, cacheManager); err != nil {
		contract.LogFatal(msg, err)
	}
}
