package iocache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// StoreOptions selects the backends of the feed cache and the analysis store.
// An empty AnalysisBackend disables run tracking.
type StoreOptions struct {
	CacheBackend    schema.DatabaseBackend
	CacheDir        string
	CacheConnStr    string
	AnalysisBackend schema.DatabaseBackend
	AnalysisConnStr string
}

// InitStores initializes the global manager with the feed and analysis stores.
func InitStores(ctx context.Context, opts StoreOptions) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		feedStore, err := NewFeedStore(ctx, opts.CacheBackend, opts.CacheDir, opts.CacheConnStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize feed caching: %w", err)
			return
		}

		// Initialize Analysis Store only if backend is configured
		var analysisStore contract.AnalysisStore
		if opts.AnalysisBackend != "" {
			analysisStore, err = NewAnalysisStore(opts.AnalysisBackend, opts.AnalysisConnStr)
			if err != nil {
				_ = feedStore.Close()
				initErr = fmt.Errorf("failed to initialize analysis store: %w", err)
				return
			}
		}

		// Assign to global manager
		Manager.Lock()
		Manager.feed = feedStore
		Manager.analysis = analysisStore
		Manager.Unlock()
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.feed != nil {
			_ = Manager.feed.Close()
		}
		if Manager.analysis != nil {
			_ = Manager.analysis.Close()
		}
	})
}

// ClearCache clears the feed cache for the specified backend.
// For the file backend, it removes the cached feed files.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For Redis, it deletes every feed key.
// For NoneBackend, it does nothing.
func ClearCache(ctx context.Context, backend schema.DatabaseBackend, cacheDir, connStr string) error {
	switch backend {
	case schema.FileBackend:
		if cacheDir == "" {
			cacheDir = schema.DefaultCacheDir
		}
		return (&FileFeedStore{dir: cacheDir}).clear()

	case schema.SQLiteBackend:
		dbFilePath := connStr
		if dbFilePath == "" {
			dbFilePath = contract.GetCacheDBFilePath()
		}
		return removeSQLiteFile(dbFilePath)

	case schema.MySQLBackend:
		return clearSQLTables("mysql", connStr, feedTable)

	case schema.PostgreSQLBackend:
		return clearSQLTables("pgx", connStr, feedTable)

	case schema.RedisBackend:
		store, err := NewRedisFeedStore(ctx, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.clear(ctx)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}

// ClearAnalysis clears the analysis data for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the analysis tables.
// For NoneBackend, it does nothing.
func ClearAnalysis(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbFilePath := connStr
		if dbFilePath == "" {
			dbFilePath = contract.GetAnalysisDBFilePath()
		}
		return removeSQLiteFile(dbFilePath)

	case schema.MySQLBackend:
		return clearSQLTables("mysql", connStr, pitcherSpeedsTable, analysisRunsTable, migrationsTable)

	case schema.PostgreSQLBackend:
		return clearSQLTables("pgx", connStr, pitcherSpeedsTable, analysisRunsTable, migrationsTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported analysis backend for clearing: %s", backend)
	}
}

// removeSQLiteFile removes a SQLite database file; a missing file is not an error.
func removeSQLiteFile(dbFilePath string) error {
	if err := os.Remove(dbFilePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
	}
	return nil
}

// clearSQLTables connects to the SQL database and drops the tables if they exist.
func clearSQLTables(driverName, connStr string, tableNames ...string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	for _, tableName := range tableNames {
		if err := validateTableName(tableName); err != nil {
			return err
		}
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", tableName, err)
		}
	}

	return nil
}
