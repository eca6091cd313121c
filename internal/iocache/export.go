package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/fastball/internal/parquet"
)

// ExecuteAnalysisExport writes the run history to two Parquet files
// named after outputFile.
func ExecuteAnalysisExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetAnalysisStore()
	if store == nil {
		return errors.New("analysis tracking is not enabled")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total pitcher records: %d\n", status.TableSizes[pitcherSpeedsTable])

	analysisRuns, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}

	pitcherSpeeds, err := store.GetAllPitcherSpeeds()
	if err != nil {
		return fmt.Errorf("failed to retrieve pitcher speeds: %w", err)
	}

	parquetRuns := parquet.ConvertAnalysisRunRecords(analysisRuns)
	parquetSpeeds := parquet.ConvertPitcherSpeedRunRecords(pitcherSpeeds)

	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(parquetRuns), runsFile)

	speedsFile := outputFile + ".pitcher_speeds.parquet"
	if err := parquet.WritePitcherSpeedRunsParquet(parquetSpeeds, speedsFile); err != nil {
		return fmt.Errorf("failed to write pitcher speeds: %w", err)
	}
	fmt.Printf("Exported %d pitcher records to: %s\n", len(parquetSpeeds), speedsFile)

	fmt.Println("\nExport complete! The Parquet files can be read with pandas, DuckDB or Spark.")
	return nil
}
