// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"os"
	"time"

	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSpeeds prints ranked pitcher speeds using the configured output format.
func (ow *OutWriter) WriteSpeeds(summary schema.SpeedSummary, cfg *contract.Config) error {
	return WriteSpeedResults(summary, cfg)
}

// WriteReport prints a speed report using the configured output format.
func (ow *OutWriter) WriteReport(report schema.SpeedReport, cfg *contract.Config) error {
	return WriteReportResults(report, cfg)
}

// WriteFetchSummary prints the counts of a fetch run.
func (ow *OutWriter) WriteFetchSummary(summary schema.FetchSummary, cfg *contract.Config, duration time.Duration) error {
	return writeFetchSummary(os.Stdout, summary, cfg, duration)
}

// Table layout bounds for the pitcher name column.
const (
	defaultTermWidth = 80
	fixedColumnWidth = 60 // Rank + Max + Avg + Games + Label with borders/padding
	minNameWidth     = 12
	maxNameWidth     = 40
)

// getMaxNameWidth calculates the maximum width for pitcher names in table output
// based on terminal width and the fixed columns.
func getMaxNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = defaultTermWidth // CI and pipes
		} else {
			termWidth = detectedWidth
		}
	}

	available := termWidth - fixedColumnWidth
	return max(minNameWidth, min(available, maxNameWidth))
}

// writeFetchSummary renders the outcome of a fetch run.
func writeFetchSummary(w io.Writer, s schema.FetchSummary, cfg *contract.Config, duration time.Duration) error {
	_, err := io.WriteString(w, formatFetchSummary(s, cfg, duration))
	return err
}
