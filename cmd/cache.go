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

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("cache-backend")))
	if backend == "" {
		backend = schema.FileBackend
	}
	cacheDir := viper.GetString("cache-dir")
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.CacheBackend = backend
	cfg.CacheDir = cacheDir
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by run commands. This avoids date parsing and
// output validation for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the game feed cache",
	Long: `Manage the cache of raw game feeds.

Every downloaded feed is stored verbatim, keyed by game id. Presence of a key
is the only cache-hit signal, so a cached game is never downloaded again.

Supported backends: file (default), SQLite, MySQL, PostgreSQL, Redis, or None

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached feeds

Examples:
  # Check cache status
  fastball cache status

  # Clear a Redis cache
  FASTBALL_CACHE_BACKEND=redis FASTBALL_CACHE_DB_CONNECT=redis://localhost:6379/0 fastball cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached game feeds",
	Long: `Delete all cached game feeds from the configured backend.

For file: Deletes the cached feed files
For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table
For Redis: Deletes every feed key

Examples:
  # Clear the default file cache
  fastball cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(rootCtx, cfg.CacheBackend, cfg.CacheDir, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the game feed cache.

Displays:
- Backend type and connection status
- Total number of cached games
- Last and oldest cache entry timestamps
- Cache storage size

Examples:
  # Check cache status
  fastball cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := iocache.NewFeedStore(rootCtx, cfg.CacheBackend, cfg.CacheDir, cfg.CacheDBConnect)
		if err != nil {
			contract.LogFatal("Failed to open cache", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
