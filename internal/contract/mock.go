package contract

import (
	"context"
	"time"

	"github.com/huangsam/fastball/schema"
	"github.com/stretchr/testify/mock"
)

// MockStatsClient is a mock implementation of StatsClient for testing.
type MockStatsClient struct {
	mock.Mock
}

var _ StatsClient = &MockStatsClient{} // Compile-time check

// FetchSchedule implements the StatsClient interface.
func (m *MockStatsClient) FetchSchedule(ctx context.Context, sportID int, date time.Time) (schema.Schedule, error) {
	args := m.Called(ctx, sportID, date)
	return args.Get(0).(schema.Schedule), args.Error(1)
}

// FetchGameFeed implements the StatsClient interface.
func (m *MockStatsClient) FetchGameFeed(ctx context.Context, game schema.ScheduledGame) ([]byte, error) {
	args := m.Called(ctx, game)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}
