package core

import (
	"slices"

	"github.com/huangsam/fastball/core/algo"
	"github.com/huangsam/fastball/schema"
)

// RankPitchers sorts pitchers by max speed in descending order and returns
// the top 'limit' pitchers. Ties are broken by pitcher name. A limit <= 0
// returns every pitcher in sorted order.
func RankPitchers(records []schema.PitcherSpeedRecord, limit int) []schema.PitcherSpeedRecord {
	return algo.RankBy(records, schema.MaxSpeedColumn, limit)
}

// TopBy returns the top 'limit' pitchers by the given column without
// reordering the input.
func TopBy(records []schema.PitcherSpeedRecord, column schema.SpeedColumn, limit int) []schema.PitcherSpeedRecord {
	return algo.RankBy(slices.Clone(records), column, limit)
}

// FilterPositiveFastball drops pitchers whose fastball average is not above zero.
func FilterPositiveFastball(records []schema.PitcherSpeedRecord) []schema.PitcherSpeedRecord {
	out := make([]schema.PitcherSpeedRecord, 0, len(records))
	for _, r := range records {
		if r.AvgFastballSpeed > 0 {
			out = append(out, r)
		}
	}
	return out
}

// AtLeast returns the pitchers whose column value meets the threshold,
// ranked by that column.
func AtLeast(records []schema.PitcherSpeedRecord, column schema.SpeedColumn, threshold float64) []schema.PitcherSpeedRecord {
	var out []schema.PitcherSpeedRecord
	for _, r := range records {
		if r.Value(column) >= threshold {
			out = append(out, r)
		}
	}
	return algo.RankBy(out, column, 0)
}
