//go:build database

package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startContainer starts a container and returns its host and mapped port.
func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) (string, string) {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return host, mapped.Port()
}

// runBackendLifecycle exercises every command against the backends named in env.
func runBackendLifecycle(t *testing.T, env map[string]string, withAnalysis bool) {
	t.Helper()
	dir := t.TempDir()
	env["FASTBALL_BASE_URL"] = newFakeStatsAPI(t).URL

	_, err := runFastball(t, dir, env, "cache", "clear")
	require.NoError(t, err)
	if withAnalysis {
		_, err = runFastball(t, dir, env, "analysis", "clear")
		require.NoError(t, err)
	}

	out, err := runFastball(t, dir, env, "fetch", "--start", "2024-04-01", "--end", "2024-04-02")
	require.NoError(t, err)
	assert.Contains(t, out, "2 downloaded")

	out, err = runFastball(t, dir, env, "speeds", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Hunter Greene")

	out, err = runFastball(t, dir, env, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Cached Games")

	if !withAnalysis {
		return
	}
	out, err = runFastball(t, dir, env, "analysis", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Games Aggregated")

	exportBase := filepath.Join(dir, "history")
	_, err = runFastball(t, dir, env, "analysis", "export", "--output-file", exportBase)
	require.NoError(t, err)
	assert.FileExists(t, exportBase+".pitcher_speeds.parquet")
}

// TestFastballWithMySQL tests the fastball CLI with a MySQL backend.
func TestFastballWithMySQL(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "fastball",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}, "3306")

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/fastball?parseTime=true", host, port)
	runBackendLifecycle(t, map[string]string{
		"FASTBALL_CACHE_BACKEND":       "mysql",
		"FASTBALL_CACHE_DB_CONNECT":    connStr,
		"FASTBALL_ANALYSIS_BACKEND":    "mysql",
		"FASTBALL_ANALYSIS_DB_CONNECT": connStr,
	}, true)
}

// TestFastballWithPostgres tests the fastball CLI with a PostgreSQL backend.
func TestFastballWithPostgres(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}, "5432")

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port)
	runBackendLifecycle(t, map[string]string{
		"FASTBALL_CACHE_BACKEND":       "postgresql",
		"FASTBALL_CACHE_DB_CONNECT":    connStr,
		"FASTBALL_ANALYSIS_BACKEND":    "postgresql",
		"FASTBALL_ANALYSIS_DB_CONNECT": connStr,
	}, true)
}

// TestFastballWithRedis tests the fastball CLI with a Redis feed cache.
func TestFastballWithRedis(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}, "6379")

	runBackendLifecycle(t, map[string]string{
		"FASTBALL_CACHE_BACKEND":    "redis",
		"FASTBALL_CACHE_DB_CONNECT": fmt.Sprintf("redis://%s:%s/0", host, port),
	}, false)
}
