package types

import (
	"time"

	"github.com/devdumpling/traverse-sub000/internal/aggregate"
)

// StepCaptureData is the mutable, per-step capture state populated by a
// CaptureScope during one journey step and frozen once the step
// returns (§3, §4.8). Custom holds arbitrary named numeric marks a
// journey author records via capture.Mark.
type StepCaptureData struct {
	CWV         *CWVData         `json:"cwv,omitempty"`
	Resources   *ResourceData    `json:"resources,omitempty"`
	Navigation  *NavigationData  `json:"navigation,omitempty"`
	Memory      *int64           `json:"memory,omitempty"`
	Interaction *InteractionData `json:"interaction,omitempty"`
	Custom      map[string]float64 `json:"custom,omitempty"`
}

// InteractionData bounds a user-interaction span marked via
// StartInteraction/EndInteraction (§4.8).
type InteractionData struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
}

// StepRecord is one executed step within one journey repetition: its
// name, wall-clock bounds, and the data captured during it (§4.8).
type StepRecord struct {
	Name      string          `json:"name"`
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Data      StepCaptureData `json:"data"`
}

// JourneyMeta is the invariant metadata for one journey invocation
// (§3, §6).
type JourneyMeta struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	BaseURL     string       `json:"base_url"`
	CapturedAt  time.Time    `json:"captured_at"`
	Runs        int          `json:"runs"`
	Device      DeviceConfig `json:"device"`
}

// StepAggregated is the per-step-index aggregation across M journey
// repetitions (§4.8).
type StepAggregated struct {
	Name       string            `json:"name"`
	Duration   aggregate.Metric  `json:"duration"`
	CLS        aggregate.Metric  `json:"cls"`
	Transfer   aggregate.Metric  `json:"transfer"`
	Memory     *aggregate.Metric `json:"memory,omitempty"`
	LCP        *aggregate.Metric `json:"lcp,omitempty"`
	Navigation *NavigationData   `json:"navigation,omitempty"`
}

// CumulativeAggregated is the per-run cumulative scalars, aggregated
// across M journey repetitions (§4.8).
type CumulativeAggregated struct {
	TotalDuration    aggregate.Metric `json:"total_duration"`
	TotalTransferred aggregate.Metric `json:"total_transferred"`
	CacheHitRate     aggregate.Metric `json:"cache_hit_rate"`
	MemoryHighWater  aggregate.Metric `json:"memory_high_water"`
	TotalCls         aggregate.Metric `json:"total_cls"`
}

// JourneyResult is the full result of a journey invocation: per-step
// aggregates, cumulative aggregates, and the raw per-run step sequence
// (§3, §6).
type JourneyResult struct {
	Meta       JourneyMeta          `json:"meta"`
	Steps      []StepAggregated     `json:"steps"`
	Cumulative CumulativeAggregated `json:"cumulative"`
	Runs       [][]StepRecord       `json:"runs"`
}
