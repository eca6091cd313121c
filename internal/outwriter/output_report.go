package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/internal/parquet"
	"github.com/huangsam/fastball/schema"
)

// describeLabels are the row labels of the describe table, in order.
var describeLabels = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// describeValues returns the statistics of s in describeLabels order.
func describeValues(s schema.ColumnStats) []float64 {
	return []float64{float64(s.Count), s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max}
}

// WriteReportResults outputs a speed report, dispatching based on the output format configured.
func WriteReportResults(report schema.SpeedReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsCSV(w, report.Stats, cfg.Precision)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WritePitcherSpeeds(w, parquet.ConvertPitcherSpeedRecords(report.Records, contract.GetPlainLabel))
		}, "Wrote Parquet")
	case schema.XLSXOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeXLSX(w, report.Records, report.Stats)
		}, "Wrote spreadsheet")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, report, cfg)
		}, "Wrote report")
	}
}

// statsRows lays the describe table out with one row per statistic.
func statsRows(stats []schema.ColumnStats, precision int) [][]string {
	fmtFloat := createFormatter(precision)
	rows := make([][]string, 0, len(describeLabels))
	for i, label := range describeLabels {
		row := []string{label}
		for _, s := range stats {
			if i == 0 {
				row = append(row, strconv.Itoa(s.Count))
				continue
			}
			row = append(row, fmtFloat(describeValues(s)[i]))
		}
		rows = append(rows, row)
	}
	return rows
}

// statsHeader returns the describe table header.
func statsHeader(stats []schema.ColumnStats) []string {
	header := []string{"statistic"}
	for _, s := range stats {
		header = append(header, string(s.Name))
	}
	return header
}

// writeStatsCSV writes the describe table in CSV format.
func writeStatsCSV(w io.Writer, stats []schema.ColumnStats, precision int) error {
	return writeCSVWithHeader(w, statsHeader(stats), statsRows(stats, precision))
}

// writeReportText renders every section of the report for a terminal.
func writeReportText(w io.Writer, report schema.SpeedReport, cfg *contract.Config) error {
	if len(report.Records) == 0 {
		_, err := fmt.Fprintln(w, "No pitcher records to report.")
		return err
	}
	fmtFloat := createFormatter(cfg.Precision)
	nameWidth := getMaxNameWidth(cfg)

	sections := []struct {
		title  string
		render func() error
	}{
		{fmt.Sprintf("📊 Basic Statistics (%d pitchers)", len(report.Records)), func() error {
			return renderTable(w, statsHeader(report.Stats), statsRows(report.Stats, cfg.Precision))
		}},
		{fmt.Sprintf("🚀 Top %d Pitchers by Max Speed", len(report.TopMax)), func() error {
			return renderTable(w, []string{"Rank", "Pitcher", "Max Speed", "Label"},
				rankedRows(report.TopMax, schema.MaxSpeedColumn, nameWidth, fmtFloat))
		}},
		{fmt.Sprintf("🎯 Top %d Pitchers by Avg Fastball Speed", len(report.TopAvg)), func() error {
			return renderTable(w, []string{"Rank", "Pitcher", "Avg Fastball", "Label"},
				rankedRows(report.TopAvg, schema.AvgFastballSpeedColumn, nameWidth, fmtFloat))
		}},
		{"📈 Distribution of Max Speed (mph)", func() error {
			return renderHistogram(w, report.Histograms[schema.MaxSpeedColumn], cfg.Precision)
		}},
		{"📈 Distribution of Avg Fastball Speed (mph)", func() error {
			return renderHistogram(w, report.Histograms[schema.AvgFastballSpeedColumn], cfg.Precision)
		}},
		{"🔭 Max Speed (y) vs Avg Fastball Speed (x)", func() error {
			return renderScatter(w, report.Records, cfg.Precision)
		}},
		{fmt.Sprintf("🔥 Pitchers with max speed >= %s mph: %d", fmtFloat(cfg.HardThrowThreshold), len(report.HardThrowers)), func() error {
			return writeNamedSpeeds(w, report.HardThrowers, schema.MaxSpeedColumn, fmtFloat)
		}},
		{fmt.Sprintf("⚡ Pitchers with avg fastball speed >= %s mph: %d", fmtFloat(cfg.FastAvgThreshold), len(report.FastAverages)), func() error {
			return writeNamedSpeeds(w, report.FastAverages, schema.AvgFastballSpeedColumn, fmtFloat)
		}},
	}

	for _, section := range sections {
		if _, err := fmt.Fprintf(w, "\n%s\n", section.title); err != nil {
			return err
		}
		if err := section.render(); err != nil {
			return err
		}
	}

	correlation := "n/a"
	if report.Correlation != nil {
		correlation = strconv.FormatFloat(*report.Correlation, 'f', 3, 64)
	}
	_, err := fmt.Fprintf(w, "\n🔗 Correlation between max speed and avg fastball speed: %s\n", correlation)
	return err
}

// rankedRows builds table rows for a top-N list keyed on column.
func rankedRows(records []schema.PitcherSpeedRecord, column schema.SpeedColumn, nameWidth int, fmtFloat func(float64) string) [][]string {
	rows := make([][]string, 0, len(records))
	for i, r := range records {
		v := r.Value(column)
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(r.Pitcher, nameWidth),
			fmtFloat(v),
			contract.GetColorLabel(v),
		})
	}
	return rows
}

// writeNamedSpeeds lists pitchers with the value of column.
func writeNamedSpeeds(w io.Writer, records []schema.PitcherSpeedRecord, column schema.SpeedColumn, fmtFloat func(float64) string) error {
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", r.Pitcher, fmtFloat(r.Value(column))); err != nil {
			return err
		}
	}
	return nil
}
