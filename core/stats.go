package core

import (
	"github.com/huangsam/fastball/core/algo"
	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/schema"
)

// DescribeRecords computes descriptive statistics for both speed columns.
func DescribeRecords(records []schema.PitcherSpeedRecord) []schema.ColumnStats {
	stats := make([]schema.ColumnStats, 0, len(schema.AllSpeedColumns))
	for _, column := range schema.AllSpeedColumns {
		stats = append(stats, algo.Describe(column, algo.Values(records, column)))
	}
	return stats
}

// Correlation returns the Pearson correlation between max speed and
// fastball average, or nil when it is undefined.
func Correlation(records []schema.PitcherSpeedRecord) *float64 {
	r, ok := algo.Pearson(
		algo.Values(records, schema.MaxSpeedColumn),
		algo.Values(records, schema.AvgFastballSpeedColumn),
	)
	if !ok {
		return nil
	}
	return &r
}

// BuildReport assembles everything the report command prints about records.
// Records are ranked by max speed; the input slice is left untouched.
func BuildReport(records []schema.PitcherSpeedRecord, cfg *contract.Config) schema.SpeedReport {
	ranked := RankPitchers(append([]schema.PitcherSpeedRecord(nil), records...), 0)

	bins := cfg.HistogramBins
	if bins <= 0 {
		bins = contract.DefaultHistogramBins
	}
	histograms := make(map[schema.SpeedColumn][]schema.HistogramBin, len(schema.AllSpeedColumns))
	for _, column := range schema.AllSpeedColumns {
		histograms[column] = algo.Histogram(algo.Values(ranked, column), bins)
	}

	return schema.SpeedReport{
		Records:      ranked,
		Stats:        DescribeRecords(ranked),
		TopMax:       TopBy(ranked, schema.MaxSpeedColumn, cfg.ResultLimit),
		TopAvg:       TopBy(ranked, schema.AvgFastballSpeedColumn, cfg.ResultLimit),
		Histograms:   histograms,
		HardThrowers: AtLeast(ranked, schema.MaxSpeedColumn, cfg.HardThrowThreshold),
		FastAverages: AtLeast(ranked, schema.AvgFastballSpeedColumn, cfg.FastAvgThreshold),
		Correlation:  Correlation(ranked),
	}
}
