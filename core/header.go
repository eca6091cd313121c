package core

import (
	"fmt"
	"strings"

	"github.com/huangsam/fastball/internal/contract"
)

// logRangeLine prints the date range of a run, or notes that every cached game is used.
func logRangeLine(cfg *contract.Config) {
	if !cfg.HasRange {
		fmt.Println("📅 Range: all cached games")
		return
	}
	days := len(contract.DatesInRange(cfg.StartDate, cfg.EndDate))
	fmt.Printf("📅 Range: %s → %s (%d days)\n", cfg.StartDate.Format(contract.DateFormat), cfg.EndDate.Format(contract.DateFormat), days)
}

// logFetchHeader prints a concise, 2-line header for a fetch run.
func logFetchHeader(cfg *contract.Config) {
	fmt.Printf("⚾ Fetch: sport %d (cache: %s)\n", cfg.SportID, cfg.CacheBackend)
	logRangeLine(cfg)
}

// logSpeedsHeader prints a concise, 2-line header for an aggregation run.
func logSpeedsHeader(cfg *contract.Config) {
	codes := strings.Join(cfg.FastballCodes, ",")
	if codes == "" {
		codes = "default"
	}
	fmt.Printf("⚾ Speeds: sport %d (fastball codes: %s)\n", cfg.SportID, codes)
	logRangeLine(cfg)
}

// logReportHeader prints the input of a report run.
func logReportHeader(cfg *contract.Config, total, kept int) {
	fmt.Printf("📂 Input: %s (%d pitchers", cfg.InputFile, total)
	if kept != total {
		fmt.Printf(", %d with a fastball average", kept)
	}
	fmt.Println(")")
}
