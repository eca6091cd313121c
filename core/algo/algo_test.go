package algo

import (
	"testing"

	"github.com/huangsam/fastball/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankBy(t *testing.T) {
	records := []schema.PitcherSpeedRecord{
		{Pitcher: "B", MaxSpeed: 99, AvgFastballSpeed: 94},
		{Pitcher: "A", MaxSpeed: 99, AvgFastballSpeed: 96},
		{Pitcher: "C", MaxSpeed: 101, AvgFastballSpeed: 90},
	}

	t.Run("max with name tie break", func(t *testing.T) {
		ranked := RankBy(append([]schema.PitcherSpeedRecord(nil), records...), schema.MaxSpeedColumn, 0)
		require.Len(t, ranked, 3)
		assert.Equal(t, []string{"C", "A", "B"}, []string{ranked[0].Pitcher, ranked[1].Pitcher, ranked[2].Pitcher})
	})

	t.Run("avg with limit", func(t *testing.T) {
		ranked := RankBy(append([]schema.PitcherSpeedRecord(nil), records...), schema.AvgFastballSpeedColumn, 2)
		require.Len(t, ranked, 2)
		assert.Equal(t, "A", ranked[0].Pitcher)
		assert.Equal(t, "B", ranked[1].Pitcher)
	})

	t.Run("limit larger than input", func(t *testing.T) {
		ranked := RankBy(append([]schema.PitcherSpeedRecord(nil), records...), schema.MaxSpeedColumn, 10)
		assert.Len(t, ranked, 3)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, RankBy(nil, schema.MaxSpeedColumn, 5))
	})
}

func TestValues(t *testing.T) {
	records := []schema.PitcherSpeedRecord{
		{Pitcher: "A", MaxSpeed: 99, AvgFastballSpeed: 94},
		{Pitcher: "B", MaxSpeed: 97, AvgFastballSpeed: 0},
	}
	assert.Equal(t, []float64{99, 97}, Values(records, schema.MaxSpeedColumn))
	assert.Equal(t, []float64{94, 0}, Values(records, schema.AvgFastballSpeedColumn))
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		q      float64
		want   float64
	}{
		{"empty", nil, 0.5, 0},
		{"single", []float64{95}, 0.25, 95},
		{"median odd", []float64{1, 2, 3}, 0.5, 2},
		{"median even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"q25 interpolated", []float64{1, 2, 3, 4}, 0.25, 1.75},
		{"q75 interpolated", []float64{1, 2, 3, 4}, 0.75, 3.25},
		{"min", []float64{1, 2, 3, 4}, 0, 1},
		{"max", []float64{1, 2, 3, 4}, 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Quantile(tt.sorted, tt.q), 1e-9)
		})
	}
}

func TestDescribe(t *testing.T) {
	stats := Describe(schema.MaxSpeedColumn, []float64{100, 96, 98, 94})

	assert.Equal(t, schema.MaxSpeedColumn, stats.Name)
	assert.Equal(t, 4, stats.Count)
	assert.InDelta(t, 97.0, stats.Mean, 1e-9)
	// sample variance: (9+1+1+9)/3
	assert.InDelta(t, 2.5819889, stats.Std, 1e-6)
	assert.Equal(t, 94.0, stats.Min)
	assert.InDelta(t, 95.5, stats.Q25, 1e-9)
	assert.InDelta(t, 97.0, stats.Median, 1e-9)
	assert.InDelta(t, 98.5, stats.Q75, 1e-9)
	assert.Equal(t, 100.0, stats.Max)
}

func TestDescribeSmallInputs(t *testing.T) {
	empty := Describe(schema.AvgFastballSpeedColumn, nil)
	assert.Equal(t, 0, empty.Count)
	assert.Zero(t, empty.Mean)

	single := Describe(schema.AvgFastballSpeedColumn, []float64{93.2})
	assert.Equal(t, 1, single.Count)
	assert.Zero(t, single.Std)
	assert.Equal(t, 93.2, single.Min)
	assert.Equal(t, 93.2, single.Median)
	assert.Equal(t, 93.2, single.Max)
}

func TestDescribeDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	_ = Describe(schema.MaxSpeedColumn, values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestHistogram(t *testing.T) {
	t.Run("equal width bins", func(t *testing.T) {
		bins := Histogram([]float64{90, 92, 94, 96, 98, 100}, 5)
		require.Len(t, bins, 5)
		assert.Equal(t, 90.0, bins[0].Low)
		assert.Equal(t, 100.0, bins[4].High)
		total := 0
		for _, b := range bins {
			total += b.Count
		}
		assert.Equal(t, 6, total)
		// The maximum lands in the closed last bin
		assert.Equal(t, 2, bins[4].Count)
	})

	t.Run("constant values", func(t *testing.T) {
		bins := Histogram([]float64{95, 95, 95}, 20)
		require.Len(t, bins, 1)
		assert.Equal(t, 3, bins[0].Count)
	})

	t.Run("no values or bins", func(t *testing.T) {
		assert.Nil(t, Histogram(nil, 20))
		assert.Nil(t, Histogram([]float64{1, 2}, 0))
	})
}

func TestPearson(t *testing.T) {
	r, ok := Pearson([]float64{1, 2, 3}, []float64{2, 4, 6})
	require.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-12)

	r, ok = Pearson([]float64{1, 2, 3}, []float64{3, 2, 1})
	require.True(t, ok)
	assert.InDelta(t, -1.0, r, 1e-12)

	r, ok = Pearson([]float64{1, 2, 3, 4}, []float64{1, 3, 2, 4})
	require.True(t, ok)
	assert.InDelta(t, 0.8, r, 1e-12)

	_, ok = Pearson([]float64{1}, []float64{1})
	assert.False(t, ok, "single point")

	_, ok = Pearson([]float64{1, 2}, []float64{5, 5})
	assert.False(t, ok, "constant column")

	_, ok = Pearson([]float64{1, 2}, []float64{1})
	assert.False(t, ok, "length mismatch")
}

func TestMeanAndStd(t *testing.T) {
	assert.Zero(t, Mean(nil))
	assert.InDelta(t, 94.5, Mean([]float64{94, 95}), 1e-9)
	assert.Zero(t, SampleStd([]float64{94}))
	assert.InDelta(t, 0.7071068, SampleStd([]float64{94, 95}), 1e-6)
}
