package cmd

import (
	"github.com/huangsam/fastball/core"
	"github.com/spf13/cobra"
)

// fetchCmd downloads game feeds into the cache.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download game feeds for a date range into the feed cache.",
	Long: `Download the live feed of every game scheduled in a date range.

For each date, fetch asks the Stats API for the schedule and downloads the
feed of each game that is not cached yet. Cached games are never downloaded
again, so an interrupted fetch can simply be rerun.

Failures of a single date or game are logged and counted; the batch continues.

Examples:
  # Fetch one week of games
  fastball fetch --start 2024-04-01 --end 2024-04-07

  # Fetch yesterday into a Redis cache
  FASTBALL_CACHE_BACKEND=redis FASTBALL_CACHE_DB_CONNECT=redis://localhost:6379/0 fastball fetch --start yesterday`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("Cannot run fetch", core.ExecuteFetch)
	},
}
