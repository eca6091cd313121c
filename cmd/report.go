package cmd

import (
	"github.com/huangsam/fastball/core"
	"github.com/spf13/cobra"
)

// reportCmd summarizes a saved speeds file.
var reportCmd = &cobra.Command{
	Use:   "report <speeds.json>",
	Short: "Print summary statistics about a saved speeds file.",
	Long: `Load a speeds JSON file and describe it.

The report shows:
- count, mean, std, min, quartiles and max of both speed columns
- the top pitchers by max speed and by average fastball speed
- histograms of both columns and a max vs average scatter plot
- pitchers above the hard-throw and fast-average thresholds
- the correlation between max speed and average fastball speed

Pitchers without a fastball average are dropped unless --min-avg=no.

Examples:
  # Describe a saved run
  fastball report mlb_speeds.json

  # Export the describe table as CSV
  fastball report mlb_speeds.json --output csv --output-file stats.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor("Cannot run report", core.ExecuteReport)
	},
}
