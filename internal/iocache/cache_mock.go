package iocache

import (
	"context"
	"time"

	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetFeedStore implements the CacheManager interface.
func (m *MockCacheManager) GetFeedStore() contract.FeedStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.FeedStore)
	return store
}

// GetAnalysisStore implements the CacheManager interface.
func (m *MockCacheManager) GetAnalysisStore() contract.AnalysisStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.AnalysisStore)
	return store
}

// MockFeedStore is a mock implementation of FeedStore for testing.
type MockFeedStore struct {
	mock.Mock
}

var _ contract.FeedStore = &MockFeedStore{} // Compile-time check

// Has implements the FeedStore interface.
func (m *MockFeedStore) Has(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// Get implements the FeedStore interface.
func (m *MockFeedStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// Set implements the FeedStore interface.
func (m *MockFeedStore) Set(ctx context.Context, key string, value []byte, timestamp int64) error {
	args := m.Called(ctx, key, value, timestamp)
	return args.Error(0)
}

// Keys implements the FeedStore interface.
func (m *MockFeedStore) Keys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	keys, _ := args.Get(0).([]string)
	return keys, args.Error(1)
}

// GetStatus implements the FeedStore interface.
func (m *MockFeedStore) GetStatus(ctx context.Context) (schema.CacheStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// Close implements the FeedStore interface.
func (m *MockFeedStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockAnalysisStore is a mock implementation of AnalysisStore for testing.
type MockAnalysisStore struct {
	mock.Mock
}

var _ contract.AnalysisStore = &MockAnalysisStore{} // Compile-time check

// BeginAnalysis implements the AnalysisStore interface.
func (m *MockAnalysisStore) BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndAnalysis implements the AnalysisStore interface.
func (m *MockAnalysisStore) EndAnalysis(analysisID int64, endTime time.Time, totalGames, totalPitchers int) error {
	args := m.Called(analysisID, endTime, totalGames, totalPitchers)
	return args.Error(0)
}

// RecordPitcherSpeeds implements the AnalysisStore interface.
func (m *MockAnalysisStore) RecordPitcherSpeeds(analysisID int64, analysisTime time.Time, record schema.PitcherSpeedRecord) error {
	args := m.Called(analysisID, analysisTime, record)
	return args.Error(0)
}

// GetStatus implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetStatus() (schema.AnalysisStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.AnalysisStatus), args.Error(1)
}

// GetAllAnalysisRuns implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.AnalysisRunRecord)
	return runs, args.Error(1)
}

// GetAllPitcherSpeeds implements the AnalysisStore interface.
func (m *MockAnalysisStore) GetAllPitcherSpeeds() ([]schema.PitcherSpeedRunRecord, error) {
	args := m.Called()
	rows, _ := args.Get(0).([]schema.PitcherSpeedRunRecord)
	return rows, args.Error(1)
}

// Close implements the AnalysisStore interface.
func (m *MockAnalysisStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
