// Package aggregate computes statistical summaries over finite sequences
// of numeric samples produced by repeated benchmark/journey runs.
package aggregate

import "sort"

// Metric summarizes a finite, non-empty sequence of numeric samples.
// Values preserves the input order (not the sorted order used to derive
// the percentiles).
type Metric struct {
	Median   float64   `json:"median"`
	P75      float64   `json:"p75"`
	P95      float64   `json:"p95"`
	Min      float64   `json:"min"`
	Max      float64   `json:"max"`
	Variance float64   `json:"variance"`
	Values   []float64 `json:"values"`
}

// Aggregate computes a Metric from values. An empty input yields an
// all-zero Metric rather than an error — aggregation never fails.
func Aggregate(values []float64) Metric {
	m := Metric{Values: append([]float64(nil), values...)}
	n := len(values)
	if n == 0 {
		return m
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	m.Min = sorted[0]
	m.Max = sorted[n-1]
	m.Median = percentile(sorted, 50)
	m.P75 = percentile(sorted, 75)
	m.P95 = percentile(sorted, 95)
	m.Variance = populationVariance(values)
	return m
}

// percentile indexes into an already-sorted slice at ceil(p/100 * n) - 1,
// which is the spec's lower-median convention on ties (e.g. n=4 at p=50
// lands on index 1, not an interpolated 1.5).
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	idx := int(ceilDiv(p, 100, n)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}

// ceilDiv returns ceil((num/den) * n) without floating-point rounding
// surprises at exact boundaries (e.g. p75 of n=4 must land on index 2,
// not 3, so den and n must stay integral through the multiply).
func ceilDiv(num, den float64, n int) float64 {
	product := num * float64(n)
	q := product / den
	ceiled := float64(int(q))
	if ceiled < q {
		ceiled++
	}
	return ceiled
}

func populationVariance(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(n)
}

// Nullable computes a Metric over a sequence that may contain absent
// samples (represented as nil). Absent elements are dropped before
// aggregating; if every element is absent, Nullable returns (nil, false)
// rather than an all-zero Metric, so callers can distinguish "no signal"
// from "signal was zero."
func Nullable(values []*float64) (*Metric, bool) {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil {
			present = append(present, *v)
		}
	}
	if len(present) == 0 {
		return nil, false
	}
	m := Aggregate(present)
	return &m, true
}
