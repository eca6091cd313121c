// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/fastball/schema"
)

// ErrCacheMiss is returned by FeedStore.Get when the key is not cached.
var ErrCacheMiss = errors.New("cache miss")

// StatsClient defines the remote calls made against the Stats API.
// This allows the fetch pipeline to be tested without network access.
type StatsClient interface {
	// FetchSchedule returns the games scheduled on the given date for a sport.
	FetchSchedule(ctx context.Context, sportID int, date time.Time) (schema.Schedule, error)

	// FetchGameFeed returns the raw live feed of a game, verbatim.
	FetchGameFeed(ctx context.Context, game schema.ScheduledGame) ([]byte, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetFeedStore() FeedStore
	GetAnalysisStore() AnalysisStore
}

// FeedStore defines the interface for raw game feed storage.
// Presence of a key is the only cache-hit signal.
type FeedStore interface {
	Has(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, timestamp int64) error
	Keys(ctx context.Context) ([]string, error)
	GetStatus(ctx context.Context) (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking aggregation runs and their results.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalGames, totalPitchers int) error

	// RecordPitcherSpeeds stores the aggregated speeds of one pitcher
	RecordPitcherSpeeds(analysisID int64, analysisTime time.Time, record schema.PitcherSpeedRecord) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllAnalysisRuns returns every recorded run ordered by id
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllPitcherSpeeds returns every recorded pitcher row ordered by run and name
	GetAllPitcherSpeeds() ([]schema.PitcherSpeedRunRecord, error)

	// Close closes the underlying connection
	Close() error
}
