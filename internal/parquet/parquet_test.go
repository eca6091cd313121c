package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/fastball/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readBack reads every row of type T from a parquet file.
func readBack[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func sampleRuns() []AnalysisRun {
	now := time.Now()
	end := now.Add(2 * time.Second)
	duration := int32(2000)
	params := `{"sport_id":1,"fastball_codes":"FF,FT,SI,FC"}`
	return []AnalysisRun{
		{AnalysisID: 1, StartTime: now, EndTime: &end, RunDurationMs: &duration, TotalGames: 15, TotalPitchers: 140, ConfigParams: &params},
		{AnalysisID: 2, StartTime: now.Add(time.Hour)},
	}
}

func TestSchemaColumns(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{
			name:    "analysis runs",
			model:   new(AnalysisRun),
			columns: []string{"analysis_id", "start_time", "end_time", "run_duration_ms", "total_games", "total_pitchers", "config_params"},
		},
		{
			name:    "pitcher speed runs",
			model:   new(PitcherSpeedRun),
			columns: []string{"analysis_id", "pitcher", "analysis_time", "max_speed", "avg_fastball_speed", "games", "fastball_games"},
		},
		{
			name:    "pitcher speeds",
			model:   new(PitcherSpeed),
			columns: []string{"rank", "pitcher", "max_speed", "avg_fastball_speed", "games", "fastball_games", "label"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, colName := range tt.columns {
				_, ok := s.Lookup(colName)
				assert.True(t, ok, "Column %s should exist in schema", colName)
			}
		})
	}
}

func TestWriteAnalysisRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "analysis_runs.parquet")
	data := sampleRuns()

	require.NoError(t, WriteAnalysisRunsParquet(data, outputPath))

	readData := readBack[AnalysisRun](t, outputPath)
	require.Len(t, readData, len(data))

	assert.Equal(t, int64(1), readData[0].AnalysisID)
	assert.Equal(t, int32(15), readData[0].TotalGames)
	assert.Equal(t, int32(140), readData[0].TotalPitchers)
	require.NotNil(t, readData[0].EndTime)
	assert.WithinDuration(t, *data[0].EndTime, *readData[0].EndTime, time.Microsecond)
	require.NotNil(t, readData[0].RunDurationMs)
	assert.Equal(t, int32(2000), *readData[0].RunDurationMs)
	require.NotNil(t, readData[0].ConfigParams)
	assert.Equal(t, *data[0].ConfigParams, *readData[0].ConfigParams)

	// Second run never finished
	assert.Nil(t, readData[1].EndTime)
	assert.Nil(t, readData[1].RunDurationMs)
	assert.Nil(t, readData[1].ConfigParams)
}

func TestWritePitcherSpeedRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "pitcher_speeds.parquet")
	now := time.Now()
	data := []PitcherSpeedRun{
		{AnalysisID: 1, Pitcher: "Aroldis Chapman", AnalysisTime: now, MaxSpeed: 102.4, AvgFastballSpeed: 99.1, Games: 3, FastballGames: 3},
		{AnalysisID: 1, Pitcher: "Unknown_Pitcher_Id_unknown", AnalysisTime: now, MaxSpeed: 81.0, Games: 1},
	}

	require.NoError(t, WritePitcherSpeedRunsParquet(data, outputPath))

	readData := readBack[PitcherSpeedRun](t, outputPath)
	require.Len(t, readData, 2)
	for i := range data {
		assert.Equal(t, data[i].Pitcher, readData[i].Pitcher)
		assert.InDelta(t, data[i].MaxSpeed, readData[i].MaxSpeed, 1e-9)
		assert.InDelta(t, data[i].AvgFastballSpeed, readData[i].AvgFastballSpeed, 1e-9)
		assert.Equal(t, data[i].Games, readData[i].Games)
		assert.Equal(t, data[i].FastballGames, readData[i].FastballGames)
	}
}

func TestWritePitcherSpeeds(t *testing.T) {
	records := []schema.PitcherSpeedRecord{
		{Pitcher: "A", MaxSpeed: 101, AvgFastballSpeed: 98, Games: 2, FastballGames: 2},
		{Pitcher: "B", MaxSpeed: 94, AvgFastballSpeed: 92, Games: 1, FastballGames: 1},
	}
	rows := ConvertPitcherSpeedRecords(records, func(v float64) string {
		if v >= 100 {
			return "Elite"
		}
		return "Average"
	})

	var buf bytes.Buffer
	require.NoError(t, WritePitcherSpeeds(&buf, rows))

	reader := parquet.NewGenericReader[PitcherSpeed](bytes.NewReader(buf.Bytes()))
	defer func() { _ = reader.Close() }()
	readData := make([]PitcherSpeed, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, 2, n)
	assert.Equal(t, int32(1), readData[0].Rank)
	assert.Equal(t, "Elite", readData[0].Label)
	assert.Equal(t, int32(2), readData[1].Rank)
	assert.Equal(t, "B", readData[1].Pitcher)
}

func TestWriteEmptyData(t *testing.T) {
	tmpDir := t.TempDir()

	runsPath := filepath.Join(tmpDir, "empty_runs.parquet")
	require.NoError(t, WriteAnalysisRunsParquet([]AnalysisRun{}, runsPath))
	info, err := os.Stat(runsPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")

	speedsPath := filepath.Join(tmpDir, "empty_speeds.parquet")
	require.NoError(t, WritePitcherSpeedRunsParquet(nil, speedsPath))
	info, err = os.Stat(speedsPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteInvalidPath(t *testing.T) {
	err := WriteAnalysisRunsParquet(sampleRuns(), "/nonexistent/directory/output.parquet")
	assert.Error(t, err)

	err = WritePitcherSpeedRunsParquet([]PitcherSpeedRun{{AnalysisID: 1}}, "/nonexistent/directory/output.parquet")
	assert.Error(t, err)
}

func TestConvertRecords(t *testing.T) {
	end := time.Now()
	duration := int32(10)
	runs := ConvertAnalysisRunRecords([]schema.AnalysisRunRecord{
		{AnalysisID: 7, StartTime: end.Add(-time.Second), EndTime: &end, RunDurationMs: &duration, TotalGames: 4, TotalPitchers: 30},
	})
	require.Len(t, runs, 1)
	assert.Equal(t, int64(7), runs[0].AnalysisID)
	assert.Equal(t, int32(4), runs[0].TotalGames)
	assert.Equal(t, &end, runs[0].EndTime)

	speeds := ConvertPitcherSpeedRunRecords([]schema.PitcherSpeedRunRecord{
		{AnalysisID: 7, Pitcher: "X", MaxSpeed: 97.5, AvgFastballSpeed: 95.25, Games: 2, FastballGames: 1},
	})
	require.Len(t, speeds, 1)
	assert.Equal(t, "X", speeds[0].Pitcher)
	assert.Equal(t, int32(1), speeds[0].FastballGames)

	assert.Empty(t, ConvertAnalysisRunRecords(nil))
	assert.Empty(t, ConvertPitcherSpeedRunRecords(nil))
}
