// Package stats provides the small order-statistic helpers behind the
// capacity forecast: interpolated percentiles and medians.
package stats

import "sort"

// Quantile returns the linearly-interpolated order statistic for
// percentile p in [0,100]: sort ascending, position = (p/100)*(n-1),
// blend the values at floor(position) and ceil(position) by the
// fractional part. An empty sample yields 0.
func Quantile(sample []float64, p float64) float64 {
	if len(sample) == 0 {
		return 0
	}

	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	pos := (p / 100) * float64(len(sorted)-1)
	lo := int(pos)
	hi := lo + 1
	if hi > len(sorted)-1 {
		hi = len(sorted) - 1
	}
	frac := pos - float64(lo)

	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Median returns the middle element of the sorted values, or the average
// of the two middle elements for an even count. Empty input yields 0.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
