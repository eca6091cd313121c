// Package iocache is for caching raw game feeds and persisting aggregation runs.
package iocache

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/schema"
)

// feedTable is the name of the table for SQL feed caching.
const feedTable = "fastball_feed_cache"

// CacheStoreManager manages the feed and analysis store instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	feed         contract.FeedStore
	analysis     contract.AnalysisStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetFeedStore returns the feed cache store.
func (mgr *CacheStoreManager) GetFeedStore() contract.FeedStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.feed
}

// GetAnalysisStore returns the analysis AnalysisStore.
func (mgr *CacheStoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}

// GameKey returns the cache key of a game feed.
func GameKey(gamePk int64) string {
	return "game_" + strconv.FormatInt(gamePk, 10)
}

// NewFeedStore returns the feed store for a backend.
// cacheDir applies to the file backend, connStr to every other backend.
func NewFeedStore(ctx context.Context, backend schema.DatabaseBackend, cacheDir, connStr string) (contract.FeedStore, error) {
	switch backend {
	case schema.FileBackend, "":
		return NewFileFeedStore(cacheDir)
	case schema.RedisBackend:
		return NewRedisFeedStore(ctx, connStr)
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend, schema.NoneBackend:
		return NewSQLFeedStore(feedTable, backend, connStr)
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s. Must be file, sqlite, mysql, postgresql, redis, or none", backend)
	}
}
