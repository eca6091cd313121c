package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/internal/parquet"
	"github.com/huangsam/fastball/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSpeedResults outputs ranked pitcher speeds, dispatching based on the output format configured.
// The result limit only applies to the text table; every other format carries all pitchers.
func WriteSpeedResults(summary schema.SpeedSummary, cfg *contract.Config) error {
	records := summary.Pitchers

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteSpeedsJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSpeedsCSV(w, records, cfg.Precision)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WritePitcherSpeeds(w, parquet.ConvertPitcherSpeedRecords(records, contract.GetPlainLabel))
		}, "Wrote Parquet")
	case schema.XLSXOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeXLSX(w, records, summary.Stats)
		}, "Wrote spreadsheet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSpeedsTable(w, summary, cfg)
		}, "Wrote table")
	}
}

// limitRecords returns the first limit records; limit <= 0 means all.
func limitRecords(records []schema.PitcherSpeedRecord, limit int) []schema.PitcherSpeedRecord {
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}

// writeSpeedsTable generates and writes the human-readable table.
func writeSpeedsTable(w io.Writer, summary schema.SpeedSummary, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)
	shown := limitRecords(summary.Pitchers, cfg.ResultLimit)
	nameWidth := getMaxNameWidth(cfg)

	data := make([][]string, 0, len(shown))
	for i, r := range shown {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(r.Pitcher, nameWidth),
			fmtFloat(r.MaxSpeed),
			fmtFloat(r.AvgFastballSpeed),
			strconv.Itoa(r.Games),
			contract.GetColorLabel(r.MaxSpeed),
		})
	}

	if err := renderTable(w, []string{"Rank", "Pitcher", "Max Speed", "Avg Fastball", "Games", "Label"}, data); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Showing top %d of %d pitchers (games processed: %d, skipped: %d)\n",
		len(shown), len(summary.Pitchers), summary.GamesProcessed, summary.GamesSkipped); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Aggregation completed in %v. Cache backend: %s\n",
		summary.Duration.Round(time.Millisecond), cfg.CacheBackend)
	return err
}

// renderTable writes a right-aligned table with the given headers and rows.
func renderTable(w io.Writer, headers []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// speedRows converts records into CSV rows with rank and label.
func speedRows(records []schema.PitcherSpeedRecord, precision int) [][]string {
	fmtFloat := createFormatter(precision)
	rows := make([][]string, 0, len(records))
	for i, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.Pitcher,
			fmtFloat(r.MaxSpeed),
			fmtFloat(r.AvgFastballSpeed),
			strconv.Itoa(r.Games),
			strconv.Itoa(r.FastballGames),
			contract.GetPlainLabel(r.MaxSpeed),
		})
	}
	return rows
}

// writeSpeedsCSV writes every record in CSV format.
func writeSpeedsCSV(w io.Writer, records []schema.PitcherSpeedRecord, precision int) error {
	header := []string{"rank", "pitcher", "max_speed", "avg_fastball_speed", "games", "fastball_games", "label"}
	return writeCSVWithHeader(w, header, speedRows(records, precision))
}

// formatFetchSummary renders the counts of a fetch run as two lines.
func formatFetchSummary(s schema.FetchSummary, cfg *contract.Config, duration time.Duration) string {
	return fmt.Sprintf("📥 %d dates, %d games: %d downloaded, %d cached, %d failed\n"+
		"Fetch completed in %v. Cache backend: %s\n",
		s.Dates, s.Games, s.Downloaded, s.Skipped, s.Failed,
		duration.Round(time.Millisecond), cfg.CacheBackend)
}
