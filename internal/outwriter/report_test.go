package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/huangsam/fastball/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() schema.SpeedReport {
	records := rankedRecords()[:3]
	corr := 0.987
	return schema.SpeedReport{
		Records: records,
		Stats: []schema.ColumnStats{
			{Name: schema.MaxSpeedColumn, Count: 3, Mean: 98.17, Std: 6.8, Min: 90.3, Q25: 96.05, Median: 101.8, Q75: 102.1, Max: 102.4},
			{Name: schema.AvgFastballSpeedColumn, Count: 3, Mean: 96.0, Std: 6.5, Min: 88.7, Q25: 93.9, Median: 99.1, Q75: 99.65, Max: 100.2},
		},
		TopMax: records[:2],
		TopAvg: []schema.PitcherSpeedRecord{records[1], records[0]},
		Histograms: map[schema.SpeedColumn][]schema.HistogramBin{
			schema.MaxSpeedColumn:         {{Low: 90.3, High: 96.35, Count: 1}, {Low: 96.35, High: 102.4, Count: 2}},
			schema.AvgFastballSpeedColumn: {{Low: 88.7, High: 94.45, Count: 1}, {Low: 94.45, High: 100.2, Count: 2}},
		},
		HardThrowers: records[:2],
		FastAverages: records[:2],
		Correlation:  &corr,
	}
}

func TestWriteReportText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReportText(&buf, sampleReport(), testConfig()))
	out := buf.String()

	for _, want := range []string{
		"Basic Statistics (3 pitchers)",
		"Top 2 Pitchers by Max Speed",
		"Top 2 Pitchers by Avg Fastball Speed",
		"Distribution of Max Speed",
		"Distribution of Avg Fastball Speed",
		"Max Speed (y) vs Avg Fastball Speed (x)",
		"Pitchers with max speed >= 100.0 mph: 2",
		"Pitchers with avg fastball speed >= 95.0 mph: 2",
		"  Jhoan Duran: 100.2",
		"Correlation between max speed and avg fastball speed: 0.987",
	} {
		assert.Contains(t, out, want)
	}
}

func TestWriteReportTextUndefinedCorrelation(t *testing.T) {
	report := sampleReport()
	report.Correlation = nil

	var buf bytes.Buffer
	require.NoError(t, writeReportText(&buf, report, testConfig()))
	assert.Contains(t, buf.String(), "avg fastball speed: n/a")
}

func TestWriteReportTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReportText(&buf, schema.SpeedReport{}, testConfig()))
	assert.Equal(t, "No pitcher records to report.\n", buf.String())
}

func TestWriteStatsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeStatsCSV(&buf, sampleReport().Stats, 2))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(describeLabels)+1)
	assert.Equal(t, []string{"statistic", "max_speed", "avg_fastball_speed"}, rows[0])
	assert.Equal(t, []string{"count", "3", "3"}, rows[1])
	assert.Equal(t, []string{"50%", "101.80", "99.10"}, rows[6])
}

func TestReportJSONHandlesNilCorrelation(t *testing.T) {
	report := sampleReport()
	report.Correlation = nil

	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, report))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Nil(t, decoded["correlation"])
	assert.Contains(t, decoded, "histograms")
}

func TestRenderHistogram(t *testing.T) {
	bins := []schema.HistogramBin{
		{Low: 90, High: 95, Count: 1},
		{Low: 95, High: 100, Count: 4},
		{Low: 100, High: 105, Count: 0},
	}

	var buf bytes.Buffer
	require.NoError(t, renderHistogram(&buf, bins, 1))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, histogramBarWidth/4, strings.Count(lines[0], "█"))
	assert.Equal(t, histogramBarWidth, strings.Count(lines[1], "█"))
	assert.Equal(t, 0, strings.Count(lines[2], "█"))
	assert.Contains(t, lines[1], "95.0 -  100.0")
}

func TestRenderScatter(t *testing.T) {
	records := []schema.PitcherSpeedRecord{
		{Pitcher: "Low", MaxSpeed: 90, AvgFastballSpeed: 88},
		{Pitcher: "High", MaxSpeed: 100, AvgFastballSpeed: 98},
		{Pitcher: "HighTwin", MaxSpeed: 100, AvgFastballSpeed: 98},
	}

	var buf bytes.Buffer
	require.NoError(t, renderScatter(&buf, records, 1))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, scatterHeight+2)

	// Two pitchers share the top-right cell
	assert.True(t, strings.HasSuffix(lines[0], "2"), "top row: %q", lines[0])
	assert.Contains(t, lines[0], "100.0")
	assert.Contains(t, lines[scatterHeight-1], "90.0 |*")
	assert.Contains(t, lines[scatterHeight+1], "88.0")
	assert.Contains(t, lines[scatterHeight+1], "98.0")
}

func TestRenderScatterSinglePoint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderScatter(&buf, []schema.PitcherSpeedRecord{{MaxSpeed: 95, AvgFastballSpeed: 93}}, 1))
	assert.Equal(t, 1, strings.Count(buf.String(), "*"))

	buf.Reset()
	require.NoError(t, renderScatter(&buf, nil, 1))
	assert.Empty(t, buf.String())
}

func TestScatterMark(t *testing.T) {
	assert.Equal(t, byte(' '), scatterMark(0))
	assert.Equal(t, byte('*'), scatterMark(1))
	assert.Equal(t, byte('7'), scatterMark(7))
	assert.Equal(t, byte('#'), scatterMark(12))
}
