//go:build basic

package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFastballFileBackend runs fetch, speeds and report against a fake Stats API.
func TestFastballFileBackend(t *testing.T) {
	dir := t.TempDir()
	api := newFakeStatsAPI(t)
	env := map[string]string{"FASTBALL_BASE_URL": api.URL}

	out, err := runFastball(t, dir, env, "fetch", "--start", "2024-04-01", "--end", "2024-04-03")
	require.NoError(t, err)
	assert.Contains(t, out, "3 dates, 2 games: 2 downloaded, 0 cached, 0 failed")
	assert.FileExists(t, filepath.Join(dir, "mlb_data", "game_1.json"))

	// Rerun only hits the cache
	out, err = runFastball(t, dir, env, "fetch", "--start", "2024-04-01", "--end", "2024-04-03")
	require.NoError(t, err)
	assert.Contains(t, out, "0 downloaded, 2 cached")

	speedsFile := filepath.Join(dir, "mlb_speeds.json")
	_, err = runFastball(t, dir, env, "speeds", "--output", "json", "--output-file", speedsFile)
	require.NoError(t, err)

	data, err := os.ReadFile(speedsFile)
	require.NoError(t, err)
	var speeds map[string]map[string]float64
	require.NoError(t, json.Unmarshal(data, &speeds))
	require.Len(t, speeds, 2)
	assert.Equal(t, 101.5, speeds["Hunter Greene"]["max_speed"])
	// Average of per-game averages: (100.5 + 98.0) / 2
	assert.InDelta(t, 99.25, speeds["Hunter Greene"]["avg_fastball_speed"], 1e-9)
	assert.Equal(t, 96.0, speeds["Zack Wheeler"]["avg_fastball_speed"])

	out, err = runFastball(t, dir, env, "report", speedsFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Basic Statistics (2 pitchers)")
	assert.Contains(t, out, "Correlation between max speed and avg fastball speed")

	out, err = runFastball(t, dir, env, "speeds", "--start", "2024-04-01", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Hunter Greene")
	assert.NotContains(t, out, "Zack Wheeler")

	out, err = runFastball(t, dir, env, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Cached Games")

	_, err = runFastball(t, dir, env, "cache", "clear")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "mlb_data", "game_1.json"))
}

// TestFastballSQLiteAnalysis tracks runs in SQLite and exports them.
func TestFastballSQLiteAnalysis(t *testing.T) {
	dir := t.TempDir()
	api := newFakeStatsAPI(t)
	env := map[string]string{
		"FASTBALL_BASE_URL":         api.URL,
		"FASTBALL_CACHE_BACKEND":    "sqlite",
		"FASTBALL_ANALYSIS_BACKEND": "sqlite",
	}

	_, err := runFastball(t, dir, env, "analysis", "migrate")
	require.NoError(t, err)

	_, err = runFastball(t, dir, env, "speeds", "--start", "2024-04-01", "--end", "2024-04-02", "--output", "csv")
	require.NoError(t, err)

	out, err := runFastball(t, dir, env, "analysis", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Games Aggregated")

	exportBase := filepath.Join(dir, "history")
	_, err = runFastball(t, dir, env, "analysis", "export", "--output-file", exportBase)
	require.NoError(t, err)
	assert.FileExists(t, exportBase+".analysis_runs.parquet")
	assert.FileExists(t, exportBase+".pitcher_speeds.parquet")

	_, err = runFastball(t, dir, env, "analysis", "clear")
	require.NoError(t, err)
	_, err = runFastball(t, dir, env, "cache", "clear")
	require.NoError(t, err)
}

// TestFastballInvalidConfig exits non-zero on bad input.
func TestFastballInvalidConfig(t *testing.T) {
	dir := t.TempDir()

	out, err := runFastball(t, dir, nil, "speeds", "--output", "yaml")
	require.Error(t, err)
	assert.Contains(t, out, "invalid output format")

	out, err = runFastball(t, dir, nil, "fetch")
	require.Error(t, err)
	assert.Contains(t, out, "requires --start")

	_, err = runFastball(t, dir, nil, "report")
	require.Error(t, err)
}
