package iocache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/schema"
)

// SQLFeedStore stores raw game feeds in a SQL table.
// With NoneBackend it is a no-op store that never hits.
type SQLFeedStore struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
	connStr   string
}

var _ contract.FeedStore = &SQLFeedStore{} // Compile-time check

// NewSQLFeedStore initializes a feed store on a SQL backend, creating its table if needed.
func NewSQLFeedStore(tableName string, backend schema.DatabaseBackend, connStr string) (*SQLFeedStore, error) {
	// Validate table name to prevent SQL injection
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	if backend == schema.NoneBackend {
		return &SQLFeedStore{tableName: tableName, backend: backend, connStr: connStr}, nil
	}

	db, err := openSQLDB(backend, connStr, contract.GetCacheDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize feed cache: %w", err)
	}

	// Create the table schema
	if _, err := db.Exec(getCreateFeedTableQuery(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &SQLFeedStore{
		db:        db,
		tableName: tableName,
		backend:   backend,
		connStr:   connStr,
	}, nil
}

// getCreateFeedTableQuery returns the CREATE TABLE query for the given backend.
func getCreateFeedTableQuery(tableName string, backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key VARCHAR(255) PRIMARY KEY,
				cache_value LONGBLOB NOT NULL,
				cache_timestamp BIGINT NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key TEXT PRIMARY KEY,
				cache_value BYTEA NOT NULL,
				cache_timestamp BIGINT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key TEXT PRIMARY KEY,
				cache_value BLOB NOT NULL,
				cache_timestamp INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

// disabled reports whether the store is a no-op.
func (s *SQLFeedStore) disabled() bool {
	return s.backend == schema.NoneBackend || s.db == nil
}

// Has reports whether a feed is cached under key.
func (s *SQLFeedStore) Has(ctx context.Context, key string) (bool, error) {
	if s.disabled() {
		return false, nil
	}
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE cache_key = %s`, quoteTableName(s.tableName, s.backend), placeholder(s.backend, 1))
	var n int
	if err := s.db.QueryRowContext(ctx, query, key).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check cache key %s: %w", key, err)
	}
	return n > 0, nil
}

// Get retrieves a feed by key. A missing key returns contract.ErrCacheMiss.
func (s *SQLFeedStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.disabled() {
		return nil, contract.ErrCacheMiss
	}

	query := fmt.Sprintf(`SELECT cache_value FROM %s WHERE cache_key = %s`, quoteTableName(s.tableName, s.backend), placeholder(s.backend, 1))
	var value []byte
	if err := s.db.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contract.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	return value, nil
}

// Set inserts or replaces a feed.
func (s *SQLFeedStore) Set(ctx context.Context, key string, value []byte, timestamp int64) error {
	if s.disabled() {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, s.getUpsertQuery(), key, value, timestamp); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// getUpsertQuery returns the UPSERT query for the backend.
func (s *SQLFeedStore) getUpsertQuery() string {
	quotedTableName := quoteTableName(s.tableName, s.backend)
	switch s.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, cache_timestamp) VALUES (?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE cache_value = new.cache_value, cache_timestamp = new.cache_timestamp`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, cache_timestamp) VALUES ($1, $2, $3)
			ON CONFLICT (cache_key) DO UPDATE SET cache_value = EXCLUDED.cache_value, cache_timestamp = EXCLUDED.cache_timestamp`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (cache_key, cache_value, cache_timestamp) VALUES (?, ?, ?)`, quotedTableName)
	}
}

// Keys returns every cached key in ascending order.
func (s *SQLFeedStore) Keys(ctx context.Context) ([]string, error) {
	if s.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT cache_key FROM %s ORDER BY cache_key`, quoteTableName(s.tableName, s.backend))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cache keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan cache key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cache keys: %w", err)
	}
	return keys, nil
}

// Close closes the underlying DB connection.
func (s *SQLFeedStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetStatus returns status information about the feed cache.
func (s *SQLFeedStore) GetStatus(ctx context.Context) (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
	}

	if s.disabled() {
		return status, nil
	}

	quotedTableName := quoteTableName(s.tableName, s.backend)

	// Get total entries
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := s.db.QueryRowContext(ctx, countQuery).Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}

	if status.TotalEntries == 0 {
		return status, nil
	}

	// Get newest and oldest entry times
	rangeQuery := fmt.Sprintf("SELECT MAX(cache_timestamp), MIN(cache_timestamp) FROM %s", quotedTableName)
	var lastTs, oldestTs int64
	if err := s.db.QueryRowContext(ctx, rangeQuery).Scan(&lastTs, &oldestTs); err != nil {
		return status, fmt.Errorf("failed to get entry times: %w", err)
	}
	status.LastEntryTime = time.Unix(lastTs, 0)
	status.OldestEntryTime = time.Unix(oldestTs, 0)

	status.TableSizeBytes = s.tableSize(ctx, status.TotalEntries)
	return status, nil
}

// tableSize estimates the on-disk size of the feed table.
// Falls back to a rough per-row estimate when the backend cannot report it.
func (s *SQLFeedStore) tableSize(ctx context.Context, entries int) int64 {
	fallback := int64(entries) * 250_000 // live feeds are a few hundred KB each
	var size int64

	switch s.backend {
	case schema.SQLiteBackend:
		sizeQuery := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		if err := s.db.QueryRowContext(ctx, sizeQuery).Scan(&size); err != nil {
			return 0
		}
		return size

	case schema.MySQLBackend:
		// Use information_schema for MySQL
		cfg, err := mysql.ParseDSN(s.connStr)
		if err != nil || cfg.DBName == "" {
			return fallback
		}
		sizeQuery := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
		if err := s.db.QueryRowContext(ctx, sizeQuery, cfg.DBName, s.tableName).Scan(&size); err != nil {
			return fallback
		}
		return size

	case schema.PostgreSQLBackend:
		if err := s.db.QueryRowContext(ctx, "SELECT pg_total_relation_size($1)", s.tableName).Scan(&size); err != nil {
			return fallback
		}
		return size

	default:
		return fallback
	}
}
