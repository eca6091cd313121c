package algo

import (
	"math"
	"slices"

	"github.com/huangsam/fastball/schema"
)

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleStd returns the sample standard deviation (n-1 denominator).
// Fewer than two values yield 0 so results stay JSON-encodable.
func SampleStd(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := Mean(values)
	ss := 0.0
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// Quantile returns the q-th quantile of sorted values using linear
// interpolation between closest ranks: position (n-1)*q.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	pos := float64(n-1) * q
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Describe computes count, mean, std, min, quartiles and max of values.
func Describe(name schema.SpeedColumn, values []float64) schema.ColumnStats {
	stats := schema.ColumnStats{Name: name, Count: len(values)}
	if len(values) == 0 {
		return stats
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	stats.Mean = Mean(sorted)
	stats.Std = SampleStd(sorted)
	stats.Min = sorted[0]
	stats.Q25 = Quantile(sorted, 0.25)
	stats.Median = Quantile(sorted, 0.5)
	stats.Q75 = Quantile(sorted, 0.75)
	stats.Max = sorted[len(sorted)-1]
	return stats
}

// Histogram splits [min, max] of values into equal-width bins.
// Every bin is half-open except the last, which also includes max.
// When all values are equal, a single bin holds them all.
func Histogram(values []float64, bins int) []schema.HistogramBin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := slices.Min(values), slices.Max(values)
	if lo == hi {
		return []schema.HistogramBin{{Low: lo, High: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]schema.HistogramBin, bins)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	out[bins-1].High = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// Pearson returns the correlation coefficient of xs and ys.
// The result is false when the coefficient is undefined: mismatched
// lengths, fewer than two points, or a column with zero variance.
func Pearson(xs, ys []float64) (float64, bool) {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0, false
	}
	mx, my := Mean(xs), Mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, false
	}
	r := sxy / math.Sqrt(sxx*syy)
	return math.Max(-1, math.Min(1, r)), true
}
