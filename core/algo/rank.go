// Package algo has the numeric building blocks used for ranking and reporting pitcher speeds.
package algo

import (
	"sort"

	"github.com/huangsam/fastball/schema"
)

// RankBy sorts records by the given column in descending order and returns
// the top 'limit' records. Ties are broken by pitcher name so the order is
// stable across runs. A limit <= 0 returns every record.
func RankBy(records []schema.PitcherSpeedRecord, column schema.SpeedColumn, limit int) []schema.PitcherSpeedRecord {
	sort.Slice(records, func(i, j int) bool {
		vi, vj := records[i].Value(column), records[j].Value(column)
		if vi != vj {
			return vi > vj
		}
		return records[i].Pitcher < records[j].Pitcher
	})
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}

// Values extracts one column from records, preserving order.
func Values(records []schema.PitcherSpeedRecord, column schema.SpeedColumn) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Value(column)
	}
	return out
}
