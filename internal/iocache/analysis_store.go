package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/schema"
)

// Table names for analysis tracking.
const (
	analysisRunsTable  = "fastball_analysis_runs"
	pitcherSpeedsTable = "fastball_pitcher_speeds"
	migrationsTable    = "fastball_schema_migrations"
)

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &AnalysisStoreImpl{backend: backend}, nil
	}

	db, err := openSQLDB(backend, connStr, contract.GetAnalysisDBFilePath())
	if err != nil {
		return nil, err
	}

	// Create the table schemas
	if err := createAnalysisTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{
		db:      db,
		backend: backend,
	}, nil
}

// createAnalysisTables creates the analysis tracking tables.
func createAnalysisTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{analysisRunsTable, getCreateAnalysisRunsQuery(backend)},
		{pitcherSpeedsTable, getCreatePitcherSpeedsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateAnalysisRunsQuery returns the CREATE TABLE query for fastball_analysis_runs.
func getCreateAnalysisRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(analysisRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_games INT NOT NULL DEFAULT 0,
				total_pitchers INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_games INT NOT NULL DEFAULT 0,
				total_pitchers INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_games INTEGER NOT NULL DEFAULT 0,
				total_pitchers INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreatePitcherSpeedsQuery returns the CREATE TABLE query for fastball_pitcher_speeds.
func getCreatePitcherSpeedsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(pitcherSpeedsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				pitcher VARCHAR(255) NOT NULL,
				analysis_time DATETIME(6) NOT NULL,
				max_speed DOUBLE NOT NULL,
				avg_fastball_speed DOUBLE NOT NULL,
				games INT NOT NULL,
				fastball_games INT NOT NULL,
				PRIMARY KEY (analysis_id, pitcher)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				pitcher TEXT NOT NULL,
				analysis_time TIMESTAMPTZ NOT NULL,
				max_speed DOUBLE PRECISION NOT NULL,
				avg_fastball_speed DOUBLE PRECISION NOT NULL,
				games INT NOT NULL,
				fastball_games INT NOT NULL,
				PRIMARY KEY (analysis_id, pitcher)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER NOT NULL,
				pitcher TEXT NOT NULL,
				analysis_time TEXT NOT NULL,
				max_speed REAL NOT NULL,
				avg_fastball_speed REAL NOT NULL,
				games INTEGER NOT NULL,
				fastball_games INTEGER NOT NULL,
				PRIMARY KEY (analysis_id, pitcher)
			);
		`, quotedTableName)
	}
}

// disabled reports whether the store is a no-op.
func (as *AnalysisStoreImpl) disabled() bool {
	return as.backend == schema.NoneBackend || as.db == nil
}

// BeginAnalysis creates a new analysis run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if as.disabled() {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)

	var analysisID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING analysis_id`, quotedTableName)
		err = as.db.QueryRow(query, startTime, string(configJSON)).Scan(&analysisID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = as.db.Exec(query, formatTime(startTime, as.backend), string(configJSON))
		if err == nil {
			analysisID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	return analysisID, nil
}

// EndAnalysis updates the analysis run with completion data.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endTime time.Time, totalGames, totalPitchers int) error {
	// Skip for NoneBackend
	if as.disabled() {
		return nil
	}

	// First, get the start_time to calculate duration
	quotedTableName := quoteTableName(analysisRunsTable, as.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = %s`, quotedTableName, placeholder(as.backend, 1))
	startTime, err := as.scanTime(as.db.QueryRow(query, analysisID))
	if err != nil {
		return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
	}

	// Calculate duration in milliseconds
	durationMs := endTime.Sub(startTime).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_games = %s, total_pitchers = %s WHERE analysis_id = %s`,
		quotedTableName,
		placeholder(as.backend, 1), placeholder(as.backend, 2), placeholder(as.backend, 3),
		placeholder(as.backend, 4), placeholder(as.backend, 5))
	if _, err := as.db.Exec(updateQuery, formatTime(endTime, as.backend), durationMs, totalGames, totalPitchers, analysisID); err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}

	return nil
}

// RecordPitcherSpeeds stores the aggregated speeds of one pitcher for a run.
func (as *AnalysisStoreImpl) RecordPitcherSpeeds(analysisID int64, analysisTime time.Time, record schema.PitcherSpeedRecord) error {
	// Skip for NoneBackend
	if as.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(pitcherSpeedsTable, as.backend)

	var query string
	switch as.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (analysis_id, pitcher, analysis_time, max_speed, avg_fastball_speed, games, fastball_games)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (analysis_id, pitcher, analysis_time, max_speed, avg_fastball_speed, games, fastball_games)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	_, err := as.db.Exec(query,
		analysisID, record.Pitcher, formatTime(analysisTime, as.backend),
		record.MaxSpeed, record.AvgFastballSpeed, record.Games, record.FastballGames)
	if err != nil {
		return fmt.Errorf("failed to insert pitcher speeds for %s: %w", record.Pitcher, err)
	}

	return nil
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the analysis store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}

	if as.disabled() {
		return status, nil
	}

	quotedRuns := quoteTableName(analysisRunsTable, as.backend)

	// Get total runs
	if err := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		row := as.db.QueryRow(fmt.Sprintf("SELECT analysis_id FROM %s ORDER BY analysis_id DESC LIMIT 1", quotedRuns))
		if err := row.Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}

		lastRunTime, err := as.scanTime(as.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", quotedRuns)))
		if err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.LastRunTime = lastRunTime

		// Get oldest run time
		oldestRunTime, err := as.scanTime(as.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", quotedRuns)))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime

		// Get total games aggregated
		gamesQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_games), 0) FROM %s", quotedRuns)
		if err := as.db.QueryRow(gamesQuery).Scan(&status.TotalGamesAggregated); err != nil {
			return status, fmt.Errorf("failed to get total games aggregated: %w", err)
		}
	}

	// Get table sizes
	for _, table := range []string{analysisRunsTable, pitcherSpeedsTable} {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, as.backend))
		var count int64
		if err := as.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllAnalysisRuns retrieves all analysis runs from the store.
func (as *AnalysisStoreImpl) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	// Skip for NoneBackend
	if as.disabled() {
		return nil, nil
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)
	query := fmt.Sprintf("SELECT analysis_id, start_time, end_time, run_duration_ms, total_games, total_pitchers, config_params FROM %s ORDER BY analysis_id", quotedTableName)

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AnalysisRunRecord

	for rows.Next() {
		var record schema.AnalysisRunRecord

		switch as.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.AnalysisID, &startTimeStr, &endTimeStr, &record.RunDurationMs, &record.TotalGames, &record.TotalPitchers, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan analysis run: %w", err)
			}
			// Parse start time
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			// Parse end time if present
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.AnalysisID, &record.StartTime, &record.EndTime, &record.RunDurationMs, &record.TotalGames, &record.TotalPitchers, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan analysis run: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}

	return results, nil
}

// GetAllPitcherSpeeds retrieves every recorded pitcher row from the store.
func (as *AnalysisStoreImpl) GetAllPitcherSpeeds() ([]schema.PitcherSpeedRunRecord, error) {
	// Skip for NoneBackend
	if as.disabled() {
		return nil, nil
	}

	quotedTableName := quoteTableName(pitcherSpeedsTable, as.backend)
	query := fmt.Sprintf(`SELECT analysis_id, pitcher, analysis_time, max_speed, avg_fastball_speed, games, fastball_games
		FROM %s ORDER BY analysis_id, pitcher`, quotedTableName)

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pitcher speeds: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PitcherSpeedRunRecord

	for rows.Next() {
		var record schema.PitcherSpeedRunRecord

		switch as.backend {
		case schema.SQLiteBackend:
			var analysisTimeStr string
			if err := rows.Scan(&record.AnalysisID, &record.Pitcher, &analysisTimeStr, &record.MaxSpeed,
				&record.AvgFastballSpeed, &record.Games, &record.FastballGames); err != nil {
				return nil, fmt.Errorf("failed to scan pitcher speeds: %w", err)
			}
			// Parse analysis time
			analysisTime, err := time.Parse(time.RFC3339Nano, analysisTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse analysis_time: %w", err)
			}
			record.AnalysisTime = analysisTime
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.AnalysisID, &record.Pitcher, &record.AnalysisTime, &record.MaxSpeed,
				&record.AvgFastballSpeed, &record.Games, &record.FastballGames); err != nil {
				return nil, fmt.Errorf("failed to scan pitcher speeds: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pitcher speeds: %w", err)
	}

	return results, nil
}

// scanTime scans a single time column, handling the SQLite text representation.
func (as *AnalysisStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	if as.backend == schema.SQLiteBackend {
		var s string
		if err := row.Scan(&s); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339Nano, s)
	}
	// MySQL and PostgreSQL store as native datetime
	var t time.Time
	err := row.Scan(&t)
	return t, err
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}
