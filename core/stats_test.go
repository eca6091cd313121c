package core

import (
	"testing"

	"github.com/huangsam/fastball/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeRecords(t *testing.T) {
	stats := DescribeRecords(FilterPositiveFastball(sampleRecords()))
	require.Len(t, stats, 2)

	maxStats, avgStats := stats[0], stats[1]
	assert.Equal(t, schema.MaxSpeedColumn, maxStats.Name)
	assert.Equal(t, 4, maxStats.Count)
	assert.InDelta(t, 100.275, maxStats.Mean, 1e-9)
	assert.Equal(t, 98.4, maxStats.Min)
	assert.InDelta(t, 100.1, maxStats.Median, 1e-9)
	assert.Equal(t, 102.5, maxStats.Max)

	assert.Equal(t, schema.AvgFastballSpeedColumn, avgStats.Name)
	assert.Equal(t, 92.0, avgStats.Min)
	assert.Equal(t, 99.3, avgStats.Max)
}

func TestDescribeRecords_Empty(t *testing.T) {
	stats := DescribeRecords(nil)
	require.Len(t, stats, 2)
	assert.Zero(t, stats[0].Count)
	assert.Zero(t, stats[1].Count)
}

func TestCorrelation(t *testing.T) {
	r := Correlation([]schema.PitcherSpeedRecord{
		{Pitcher: "A", MaxSpeed: 95, AvgFastballSpeed: 92},
		{Pitcher: "B", MaxSpeed: 100, AvgFastballSpeed: 97},
	})
	require.NotNil(t, r)
	assert.InDelta(t, 1.0, *r, 1e-12)

	assert.Nil(t, Correlation(nil))
	assert.Nil(t, Correlation([]schema.PitcherSpeedRecord{{Pitcher: "A", MaxSpeed: 95, AvgFastballSpeed: 92}}))
}

func TestBuildReport(t *testing.T) {
	cfg := testConfig(t)
	cfg.ResultLimit = 2
	records := sampleRecords()

	report := BuildReport(records, cfg)

	assert.Equal(t, names(sampleRecords()), names(records), "input should not be reordered")
	assert.Equal(t, "Hunter Greene", report.Records[0].Pitcher)
	assert.Len(t, report.Records, 5)
	assert.Len(t, report.Stats, 2)
	assert.Equal(t, []string{"Hunter Greene", "Emmanuel Clase"}, names(report.TopMax))
	assert.Equal(t, []string{"Emmanuel Clase", "Hunter Greene"}, names(report.TopAvg))
	assert.Equal(t, []string{"Hunter Greene", "Emmanuel Clase"}, names(report.HardThrowers))
	assert.Equal(t, []string{"Emmanuel Clase", "Hunter Greene", "Zack Wheeler"}, names(report.FastAverages))
	require.NotNil(t, report.Correlation)

	for _, column := range schema.AllSpeedColumns {
		bins := report.Histograms[column]
		require.Len(t, bins, cfg.HistogramBins)
		total := 0
		for _, b := range bins {
			total += b.Count
		}
		assert.Equal(t, 5, total, "every record lands in one bin of %s", column)
	}
}

func TestBuildReport_DefaultBinsAndNoLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.HistogramBins = 0
	cfg.ResultLimit = 0

	report := BuildReport(sampleRecords(), cfg)
	assert.Len(t, report.Histograms[schema.MaxSpeedColumn], 20)
	assert.Len(t, report.TopMax, 5)
}

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport(nil, testConfig(t))
	assert.Empty(t, report.Records)
	assert.Empty(t, report.TopMax)
	assert.Nil(t, report.Correlation)
	assert.Empty(t, report.Histograms[schema.MaxSpeedColumn])
}
