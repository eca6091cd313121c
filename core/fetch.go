package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/internal/iocache"
	"github.com/huangsam/fastball/schema"
)

// feedSink receives every game a fetch makes available. skip is called for
// games that are cached but could not be read back.
type feedSink interface {
	add(gamePk int64, raw []byte)
	skip()
}

// fetchRange walks every date of the configured range, downloads the feeds of
// scheduled games that are not cached yet, and stores them verbatim.
// Failures are logged and counted; they never stop the batch.
// When sink is non-nil it receives each available feed, cached or fresh.
// A game listed on several dates is handled once.
func fetchRange(ctx context.Context, cfg *contract.Config, client contract.StatsClient, store contract.FeedStore, sink feedSink) (schema.FetchSummary, error) {
	var summary schema.FetchSummary
	seen := make(map[int64]struct{})
	for _, day := range contract.DatesInRange(cfg.StartDate, cfg.EndDate) {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Dates++

		schedule, err := client.FetchSchedule(ctx, cfg.SportID, day)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Failed to fetch schedule for %s", day.Format(contract.DateFormat)), err)
			continue
		}

		for _, game := range schedule.Games() {
			if game.GamePk == 0 {
				continue // entries without an id cannot be fetched or cached
			}
			if _, dup := seen[game.GamePk]; dup {
				continue // postponed and suspended games reappear on later dates
			}
			seen[game.GamePk] = struct{}{}
			summary.Games++
			fetchGame(ctx, client, store, game, &summary, sink)
		}
	}
	return summary, nil
}

// fetchGame makes one game available, preferring the cache over the network.
func fetchGame(ctx context.Context, client contract.StatsClient, store contract.FeedStore, game schema.ScheduledGame, summary *schema.FetchSummary, sink feedSink) {
	key := iocache.GameKey(game.GamePk)

	cached, err := store.Has(ctx, key)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Cache check failed for game %d", game.GamePk), err)
	}
	if cached {
		summary.Skipped++
		if sink == nil {
			return
		}
		raw, err := store.Get(ctx, key)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Failed to read cached feed for game %d", game.GamePk), err)
			sink.skip()
			return
		}
		sink.add(game.GamePk, raw)
		return
	}

	raw, err := client.FetchGameFeed(ctx, game)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Failed to fetch game %d", game.GamePk), err)
		summary.Failed++
		return
	}
	summary.Downloaded++
	if err := store.Set(ctx, key, raw, time.Now().Unix()); err != nil {
		contract.LogWarn(fmt.Sprintf("Failed to cache feed for game %d", game.GamePk), err)
	}
	if sink != nil {
		sink.add(game.GamePk, raw)
	}
}
