package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/schema"
	"github.com/xuri/excelize/v2"
)

// Spreadsheet sheet names.
const (
	speedsSheet  = "Pitcher_Speeds"
	statsSheet   = "Basic_Stats"
	defaultSheet = "Sheet1"
)

// writeXLSX writes records to a Pitcher_Speeds sheet and, when stats are
// given, the describe table to a Basic_Stats sheet.
func writeXLSX(w io.Writer, records []schema.PitcherSpeedRecord, stats []schema.ColumnStats) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(defaultSheet, speedsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := []any{"pitcher", "max_speed", "avg_fastball_speed", "games", "fastball_games", "label"}
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{r.Pitcher, r.MaxSpeed, r.AvgFastballSpeed, r.Games, r.FastballGames, contract.GetPlainLabel(r.MaxSpeed)})
	}
	if err := setSheetRows(f, speedsSheet, header, rows); err != nil {
		return err
	}

	if len(stats) > 0 {
		if _, err := f.NewSheet(statsSheet); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", statsSheet, err)
		}
		statsHeader := []any{"statistic"}
		for _, s := range stats {
			statsHeader = append(statsHeader, string(s.Name))
		}
		var statsRows [][]any
		for i, label := range describeLabels {
			row := []any{label}
			for _, s := range stats {
				row = append(row, describeValues(s)[i])
			}
			statsRows = append(statsRows, row)
		}
		if err := setSheetRows(f, statsSheet, statsHeader, statsRows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

// setSheetRows writes a header row at A1 followed by rows.
func setSheetRows(f *excelize.File, sheet string, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
