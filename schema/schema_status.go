package schema

import "time"

// CacheStatus represents the status of the feed cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// AnalysisStatus represents the status of the run tracking store.
type AnalysisStatus struct {
	Backend              string           `json:"backend"`
	Connected            bool             `json:"connected"`
	TotalRuns            int              `json:"total_runs"`
	LastRunID            int64            `json:"last_run_id"`
	LastRunTime          time.Time        `json:"last_run_time"`
	OldestRunTime        time.Time        `json:"oldest_run_time"`
	TotalGamesAggregated int              `json:"total_games_aggregated"`
	TableSizes           map[string]int64 `json:"table_sizes"`
}

// AnalysisRunRecord represents a row from the fastball_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID    int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalGames    int32
	TotalPitchers int32
	ConfigParams  *string
}

// PitcherSpeedRunRecord represents a row from the fastball_pitcher_speeds table.
type PitcherSpeedRunRecord struct {
	AnalysisID       int64
	Pitcher          string
	AnalysisTime     time.Time
	MaxSpeed         float64
	AvgFastballSpeed float64
	Games            int32
	FastballGames    int32
}
