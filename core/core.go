// Package core has core logic for fetching, aggregating and reporting pitch speeds.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/internal/outwriter"
	"github.com/huangsam/fastball/schema"
)

// ExecutorFunc defines the function signature for executing the different run modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, client contract.StatsClient, mgr contract.CacheManager) error

// errNoFeedStore is returned when the cache layer was not initialized.
var errNoFeedStore = errors.New("feed cache is not initialized")

// showChrome reports whether headers and summaries go to stdout alongside the results.
func showChrome(ctx context.Context, cfg *contract.Config) bool {
	return cfg.Output == schema.TextOut && !shouldSuppressHeader(ctx)
}

// ExecuteFetch downloads every game of the configured date range into the feed cache.
// It serves as the main entry point for the 'fetch' command.
func ExecuteFetch(ctx context.Context, cfg *contract.Config, client contract.StatsClient, mgr contract.CacheManager) error {
	start := time.Now()
	if !cfg.HasRange {
		return errors.New("fetch requires --start and/or --end")
	}
	store := mgr.GetFeedStore()
	if store == nil {
		return errNoFeedStore
	}

	if !shouldSuppressHeader(ctx) {
		logFetchHeader(cfg)
	}
	summary, err := fetchRange(ctx, cfg, client, store, nil)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteFetchSummary(summary, cfg, time.Since(start))
}

// ExecuteSpeeds aggregates per-pitcher speeds and prints the ranked results.
// With a date range it fetches through the cache first; without one it
// aggregates every cached game. It serves as the main entry point for the 'speeds' command.
func ExecuteSpeeds(ctx context.Context, cfg *contract.Config, client contract.StatsClient, mgr contract.CacheManager) error {
	start := time.Now()
	store := mgr.GetFeedStore()
	if store == nil {
		return errNoFeedStore
	}

	chrome := showChrome(ctx, cfg)
	if chrome {
		logSpeedsHeader(cfg)
	}

	tracker := beginTracking(cfg, mgr.GetAnalysisStore(), start)
	run := newSpeedRun(cfg)

	if cfg.HasRange {
		fetched, err := fetchRange(ctx, cfg, client, store, run)
		if err != nil {
			tracker.finish(run.summary())
			return err
		}
		if chrome {
			if err := outwriter.NewOutWriter().WriteFetchSummary(fetched, cfg, time.Since(start)); err != nil {
				return err
			}
		}
	} else if err := aggregateCached(ctx, store, run); err != nil {
		tracker.finish(run.summary())
		return err
	}

	summary := run.summary()
	summary.Duration = time.Since(start)
	tracker.finish(summary)

	return outwriter.NewOutWriter().WriteSpeeds(summary, cfg)
}

// ExecuteReport loads a speeds JSON file and prints summary statistics about it.
// It serves as the main entry point for the 'report' command.
func ExecuteReport(ctx context.Context, cfg *contract.Config, _ contract.StatsClient, _ contract.CacheManager) error {
	if cfg.InputFile == "" {
		return errors.New("report requires a speeds JSON file")
	}
	records, err := outwriter.LoadSpeedsFile(cfg.InputFile)
	if err != nil {
		return fmt.Errorf("failed to load speeds: %w", err)
	}

	total := len(records)
	if cfg.MinAvgFilter {
		records = FilterPositiveFastball(records)
	}
	if showChrome(ctx, cfg) {
		logReportHeader(cfg, total, len(records))
	}

	report := BuildReport(records, cfg)
	return outwriter.NewOutWriter().WriteReport(report, cfg)
}
