package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/fastball/schema"
)

// Plot dimensions in terminal cells.
const (
	histogramBarWidth = 40
	scatterWidth      = 60
	scatterHeight     = 20
)

// renderHistogram draws one horizontal bar per bin, scaled to the tallest bin.
func renderHistogram(w io.Writer, bins []schema.HistogramBin, precision int) error {
	fmtFloat := createFormatter(precision)
	peak := 0
	for _, b := range bins {
		peak = max(peak, b.Count)
	}

	for _, b := range bins {
		barLen := 0
		if peak > 0 {
			barLen = b.Count * histogramBarWidth / peak
		}
		if b.Count > 0 && barLen == 0 {
			barLen = 1
		}
		if _, err := fmt.Fprintf(w, "  %6s - %6s | %-*s %d\n",
			fmtFloat(b.Low), fmtFloat(b.High), histogramBarWidth, strings.Repeat("█", barLen), b.Count); err != nil {
			return err
		}
	}
	return nil
}

// scatterMark returns the glyph for a cell holding n points.
func scatterMark(n int) byte {
	switch {
	case n == 0:
		return ' '
	case n == 1:
		return '*'
	case n <= 9:
		return byte('0' + n)
	default:
		return '#'
	}
}

// renderScatter plots max speed (y) against average fastball speed (x).
// Cells holding several pitchers show the count.
func renderScatter(w io.Writer, records []schema.PitcherSpeedRecord, precision int) error {
	if len(records) == 0 {
		return nil
	}
	fmtFloat := createFormatter(precision)

	xMin, xMax := records[0].AvgFastballSpeed, records[0].AvgFastballSpeed
	yMin, yMax := records[0].MaxSpeed, records[0].MaxSpeed
	for _, r := range records[1:] {
		xMin, xMax = min(xMin, r.AvgFastballSpeed), max(xMax, r.AvgFastballSpeed)
		yMin, yMax = min(yMin, r.MaxSpeed), max(yMax, r.MaxSpeed)
	}

	var grid [scatterHeight][scatterWidth]int
	for _, r := range records {
		col := scaleToCell(r.AvgFastballSpeed, xMin, xMax, scatterWidth)
		row := scatterHeight - 1 - scaleToCell(r.MaxSpeed, yMin, yMax, scatterHeight)
		grid[row][col]++
	}

	yLabelWidth := max(len(fmtFloat(yMax)), len(fmtFloat(yMin)))
	for i, cells := range grid {
		label := strings.Repeat(" ", yLabelWidth)
		switch i {
		case 0:
			label = fmt.Sprintf("%*s", yLabelWidth, fmtFloat(yMax))
		case scatterHeight - 1:
			label = fmt.Sprintf("%*s", yLabelWidth, fmtFloat(yMin))
		}
		line := make([]byte, scatterWidth)
		for j, n := range cells {
			line[j] = scatterMark(n)
		}
		if _, err := fmt.Fprintf(w, "  %s |%s\n", label, strings.TrimRight(string(line), " ")); err != nil {
			return err
		}
	}

	pad := strings.Repeat(" ", yLabelWidth)
	if _, err := fmt.Fprintf(w, "  %s +%s\n", pad, strings.Repeat("-", scatterWidth)); err != nil {
		return err
	}
	left, right := fmtFloat(xMin), fmtFloat(xMax)
	gap := max(1, scatterWidth-len(left)-len(right))
	_, err := fmt.Fprintf(w, "  %s  %s%s%s\n", pad, left, strings.Repeat(" ", gap), right)
	return err
}

// scaleToCell maps v in [lo, hi] onto a cell index in [0, cells).
func scaleToCell(v, lo, hi float64, cells int) int {
	if hi <= lo {
		return 0
	}
	idx := int((v - lo) / (hi - lo) * float64(cells-1))
	return max(0, min(idx, cells-1))
}
