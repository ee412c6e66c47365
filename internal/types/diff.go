package types

// MetricDiff is a directional comparison between a baseline and a
// current scalar reading (§4.9, §8 invariant 10).
type MetricDiff struct {
	Baseline      float64 `json:"baseline"`
	Current       float64 `json:"current"`
	AbsoluteDiff  float64 `json:"absolute_diff"`
	PercentDiff   float64 `json:"percent_diff"`
	Improved      bool    `json:"improved"`
}

// PercentileDiff bundles MetricDiffs for the three aggregate
// percentiles the engine tracks (§4.9 "per-percentile aggregated
// diffs bundle {median, p75, p95} triples").
type PercentileDiff struct {
	Median MetricDiff `json:"median"`
	P75    MetricDiff `json:"p75"`
	P95    MetricDiff `json:"p95"`
}
