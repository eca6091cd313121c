package cmd

import (
	"github.com/huangsam/fastball/core"
	"github.com/spf13/cobra"
)

// speedsCmd ranks pitchers by speed.
var speedsCmd = &cobra.Command{
	Use:   "speeds",
	Short: "Rank pitchers by max speed and average fastball speed.",
	Long: `Aggregate per-pitcher speeds across many games and rank the results.

For every pitcher:
- max_speed is the fastest pitch seen in any game
- avg_fastball_speed is the mean of per-game fastball averages

With --start/--end, games in the range are fetched through the cache first.
Without a range, every cached game is aggregated.

Use --output json to write the speeds file consumed by the report command.

Examples:
  # Top 10 pitchers of the first week of April
  fastball speeds --start 2024-04-01 --end 2024-04-07

  # Every cached game, saved for reporting
  fastball speeds --output json --output-file mlb_speeds.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("Cannot run speeds", core.ExecuteSpeeds)
	},
}
