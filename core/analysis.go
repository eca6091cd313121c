package core

import (
	"time"

	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/schema"
)

// runTracker records one aggregation run in the analysis store.
// A zero tracker (no store, or a failed begin) does nothing.
type runTracker struct {
	store      contract.AnalysisStore
	analysisID int64
}

// beginTracking opens a tracked run if an analysis store is configured.
func beginTracking(cfg *contract.Config, store contract.AnalysisStore, startTime time.Time) runTracker {
	if store == nil {
		return runTracker{}
	}
	analysisID, err := store.BeginAnalysis(startTime, cfg.ConfigParams())
	if err != nil {
		contract.LogWarn("Analysis tracking initialization failed", err)
		return runTracker{}
	}
	if analysisID <= 0 {
		return runTracker{}
	}
	return runTracker{store: store, analysisID: analysisID}
}

// finish stores every pitcher of the run and closes it.
func (t runTracker) finish(summary schema.SpeedSummary) {
	if t.store == nil {
		return
	}
	analysisTime := time.Now()
	for _, record := range summary.Pitchers {
		if err := t.store.RecordPitcherSpeeds(t.analysisID, analysisTime, record); err != nil {
			contract.LogWarn("Failed to record pitcher speeds for "+record.Pitcher, err)
		}
	}
	if err := t.store.EndAnalysis(t.analysisID, time.Now(), summary.GamesProcessed, len(summary.Pitchers)); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}
