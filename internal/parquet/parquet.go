// Package parquet provides data structures and functions for exporting pitcher
// speed data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/fastball/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single aggregation run with metadata.
// This struct maps to the fastball_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalGames is the number of game feeds aggregated in this run
	TotalGames int32 `parquet:"total_games,snappy"`

	// TotalPitchers is the number of pitchers in the final report
	TotalPitchers int32 `parquet:"total_pitchers,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// PitcherSpeedRun is one pitcher row recorded by an aggregation run.
// This struct maps to the fastball_pitcher_speeds database table.
type PitcherSpeedRun struct {
	AnalysisID       int64     `parquet:"analysis_id,snappy"`
	Pitcher          string    `parquet:"pitcher,snappy"`
	AnalysisTime     time.Time `parquet:"analysis_time,snappy"`
	MaxSpeed         float64   `parquet:"max_speed,snappy"`
	AvgFastballSpeed float64   `parquet:"avg_fastball_speed,snappy"`
	Games            int32     `parquet:"games,snappy"`
	FastballGames    int32     `parquet:"fastball_games,snappy"`
}

// PitcherSpeed is one row of the speeds report written with --output parquet.
type PitcherSpeed struct {
	Rank             int32   `parquet:"rank,snappy"`
	Pitcher          string  `parquet:"pitcher,snappy"`
	MaxSpeed         float64 `parquet:"max_speed,snappy"`
	AvgFastballSpeed float64 `parquet:"avg_fastball_speed,snappy"`
	Games            int32   `parquet:"games,snappy"`
	FastballGames    int32   `parquet:"fastball_games,snappy"`
	Label            string  `parquet:"label,snappy"`
}

// writeRows encodes rows with a schema inferred from T and flushes the footer.
func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes rows into it.
func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeRows(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WritePitcherSpeedRunsParquet writes a slice of PitcherSpeedRun structs to a Parquet file.
func WritePitcherSpeedRunsParquet(data []PitcherSpeedRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WritePitcherSpeeds writes report rows to w. Callers own w.
func WritePitcherSpeeds(w io.Writer, data []PitcherSpeed) error {
	return writeRows(w, data)
}

// ConvertAnalysisRunRecords converts schema records to parquet rows.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, r := range records {
		result[i] = AnalysisRun{
			AnalysisID:    r.AnalysisID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			TotalGames:    r.TotalGames,
			TotalPitchers: r.TotalPitchers,
			ConfigParams:  r.ConfigParams,
		}
	}
	return result
}

// ConvertPitcherSpeedRunRecords converts schema records to parquet rows.
func ConvertPitcherSpeedRunRecords(records []schema.PitcherSpeedRunRecord) []PitcherSpeedRun {
	result := make([]PitcherSpeedRun, len(records))
	for i, r := range records {
		result[i] = PitcherSpeedRun{
			AnalysisID:       r.AnalysisID,
			Pitcher:          r.Pitcher,
			AnalysisTime:     r.AnalysisTime,
			MaxSpeed:         r.MaxSpeed,
			AvgFastballSpeed: r.AvgFastballSpeed,
			Games:            r.Games,
			FastballGames:    r.FastballGames,
		}
	}
	return result
}

// ConvertPitcherSpeedRecords converts ranked report records to parquet rows.
// The label function assigns each row its velocity tier.
func ConvertPitcherSpeedRecords(records []schema.PitcherSpeedRecord, label func(float64) string) []PitcherSpeed {
	result := make([]PitcherSpeed, len(records))
	for i, r := range records {
		result[i] = PitcherSpeed{
			Rank:             int32(i + 1),
			Pitcher:          r.Pitcher,
			MaxSpeed:         r.MaxSpeed,
			AvgFastballSpeed: r.AvgFastballSpeed,
			Games:            int32(r.Games),
			FastballGames:    int32(r.FastballGames),
			Label:            label(r.MaxSpeed),
		}
	}
	return result
}
