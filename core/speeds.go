package core

import (
	"context"
	"fmt"
	"os"

	"github.com/huangsam/fastball/core/agg"
	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/schema"
)

// speedRun folds raw feeds into per-pitcher totals, one game at a time.
type speedRun struct {
	extractor     *agg.Extractor
	aggregator    *agg.Aggregator
	seen          int
	skipped       int
	progressEvery int
}

// newSpeedRun returns a speedRun using the configured fastball codes.
func newSpeedRun(cfg *contract.Config) *speedRun {
	return &speedRun{
		extractor:     agg.NewExtractor(cfg.FastballCodes),
		aggregator:    agg.NewAggregator(),
		progressEvery: contract.DefaultProgressEvery,
	}
}

// add extracts one game and folds it in. Malformed feeds are logged and skipped.
func (r *speedRun) add(gamePk int64, raw []byte) {
	r.seen++
	speeds, err := r.extractor.ExtractGameSpeeds(raw)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Skipping game %d", gamePk), err)
		r.skipped++
	} else {
		r.aggregator.Add(speeds)
	}
	if r.progressEvery > 0 && r.seen%r.progressEvery == 0 {
		_, _ = fmt.Fprintf(os.Stderr, "⏳ Processed %d games\n", r.seen)
	}
}

// skip counts a game whose feed could not be loaded.
func (r *speedRun) skip() {
	r.seen++
	r.skipped++
}

// summary returns the ranked result of the run with its column statistics.
func (r *speedRun) summary() schema.SpeedSummary {
	pitchers := RankPitchers(r.aggregator.Records(), 0)
	return schema.SpeedSummary{
		Pitchers:       pitchers,
		Stats:          DescribeRecords(pitchers),
		GamesProcessed: r.aggregator.Games(),
		GamesSkipped:   r.skipped,
	}
}

// aggregateCached folds every feed currently in the store.
func aggregateCached(ctx context.Context, store contract.FeedStore, run *speedRun) error {
	keys, err := store.Keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cached games: %w", err)
	}
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := store.Get(ctx, key)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Failed to read cached feed %s", key), err)
			run.skip()
			continue
		}
		run.add(gamePkFromKey(key), raw)
	}
	return nil
}

// gamePkFromKey recovers the game id from a cache key, or 0 if the key is foreign.
func gamePkFromKey(key string) int64 {
	var pk int64
	if _, err := fmt.Sscanf(key, "game_%d", &pk); err != nil {
		return 0
	}
	return pk
}
