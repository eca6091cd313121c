package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/fastball/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisStore_NoneBackend(t *testing.T) {
	store, err := NewAnalysisStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginAnalysis should return 0 for NoneBackend
	analysisID, err := store.BeginAnalysis(time.Now(), map[string]any{"sport_id": 1})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), analysisID)

	// Other operations should not error
	assert.NoError(t, store.EndAnalysis(1, time.Now(), 10, 5))
	assert.NoError(t, store.RecordPitcherSpeeds(1, time.Now(), schema.PitcherSpeedRecord{Pitcher: "A"}))

	runs, err := store.GetAllAnalysisRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestAnalysisStore_SQLite(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	startTime := time.Now().Add(-1500 * time.Millisecond)
	analysisID, err := store.BeginAnalysis(startTime, map[string]any{
		"sport_id":       1,
		"fastball_codes": "FF,FT,SI,FC",
	})
	require.NoError(t, err)
	assert.Greater(t, analysisID, int64(0))

	analysisTime := time.Now()
	records := []schema.PitcherSpeedRecord{
		{Pitcher: "Aroldis Chapman", MaxSpeed: 102.1, AvgFastballSpeed: 98.7, Games: 2, FastballGames: 2},
		{Pitcher: "Unknown_Pitcher_Id_606", MaxSpeed: 88.0, AvgFastballSpeed: 0, Games: 1, FastballGames: 0},
	}
	for _, r := range records {
		require.NoError(t, store.RecordPitcherSpeeds(analysisID, analysisTime, r))
	}

	// Same pitcher twice in one run violates the primary key
	assert.Error(t, store.RecordPitcherSpeeds(analysisID, analysisTime, records[0]))

	require.NoError(t, store.EndAnalysis(analysisID, time.Now(), 3, len(records)))

	runs, err := store.GetAllAnalysisRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, analysisID, run.AnalysisID)
	assert.WithinDuration(t, startTime, run.StartTime, time.Millisecond)
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.GreaterOrEqual(t, *run.RunDurationMs, int32(1500))
	assert.Equal(t, int32(3), run.TotalGames)
	assert.Equal(t, int32(2), run.TotalPitchers)
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"sport_id":1,"fastball_codes":"FF,FT,SI,FC"}`, *run.ConfigParams)

	speeds, err := store.GetAllPitcherSpeeds()
	require.NoError(t, err)
	require.Len(t, speeds, 2)
	// Ordered by run then pitcher name
	assert.Equal(t, "Aroldis Chapman", speeds[0].Pitcher)
	assert.InDelta(t, 102.1, speeds[0].MaxSpeed, 1e-9)
	assert.InDelta(t, 98.7, speeds[0].AvgFastballSpeed, 1e-9)
	assert.Equal(t, int32(2), speeds[0].FastballGames)
	assert.Equal(t, "Unknown_Pitcher_Id_606", speeds[1].Pitcher)
	assert.Equal(t, 0.0, speeds[1].AvgFastballSpeed)
	assert.WithinDuration(t, analysisTime, speeds[1].AnalysisTime, time.Millisecond)
}

func TestAnalysisStore_MultipleRuns(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "analysis.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	var ids []int64
	for i := range 3 {
		id, err := store.BeginAnalysis(time.Now(), map[string]any{"run": i})
		require.NoError(t, err)
		require.NoError(t, store.RecordPitcherSpeeds(id, time.Now(), schema.PitcherSpeedRecord{Pitcher: "Same Pitcher", MaxSpeed: 95, Games: 1}))
		require.NoError(t, store.EndAnalysis(id, time.Now(), i+1, 1))
		ids = append(ids, id)
	}
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 3, status.TotalRuns)
	assert.Equal(t, ids[2], status.LastRunID)
	assert.Equal(t, 6, status.TotalGamesAggregated)
	assert.Equal(t, int64(3), status.TableSizes[analysisRunsTable])
	assert.Equal(t, int64(3), status.TableSizes[pitcherSpeedsTable])
	assert.False(t, status.LastRunTime.Before(status.OldestRunTime))
}

func TestAnalysisStore_UnfinishedRun(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.BeginAnalysis(time.Now(), nil)
	require.NoError(t, err)

	runs, err := store.GetAllAnalysisRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
	assert.Equal(t, int32(0), runs[0].TotalGames)
}

func TestAnalysisStore_EndUnknownRun(t *testing.T) {
	store, err := NewAnalysisStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.Error(t, store.EndAnalysis(42, time.Now(), 1, 1))
}

func TestExecuteAnalysisExport(t *testing.T) {
	resetManager(t)
	tmpDir := t.TempDir()
	store, err := NewAnalysisStore(schema.SQLiteBackend, filepath.Join(tmpDir, "analysis.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	Manager.analysis = store

	// Empty history is an error
	assert.Error(t, ExecuteAnalysisExport(filepath.Join(tmpDir, "out")))

	id, err := store.BeginAnalysis(time.Now(), map[string]any{"sport_id": 1})
	require.NoError(t, err)
	require.NoError(t, store.RecordPitcherSpeeds(id, time.Now(), schema.PitcherSpeedRecord{Pitcher: "A", MaxSpeed: 99, AvgFastballSpeed: 95, Games: 1, FastballGames: 1}))
	require.NoError(t, store.EndAnalysis(id, time.Now(), 1, 1))

	assert.Error(t, ExecuteAnalysisExport(""), "output file is required")

	prefix := filepath.Join(tmpDir, "out")
	require.NoError(t, ExecuteAnalysisExport(prefix))
	assert.FileExists(t, prefix+".analysis_runs.parquet")
	assert.FileExists(t, prefix+".pitcher_speeds.parquet")
}

func TestExecuteAnalysisExport_Disabled(t *testing.T) {
	resetManager(t)
	assert.Error(t, ExecuteAnalysisExport(filepath.Join(t.TempDir(), "out")))
}
