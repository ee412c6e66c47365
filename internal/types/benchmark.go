package types

import (
	"time"

	"github.com/devdumpling/traverse-sub000/internal/aggregate"
)

// BenchmarkMeta is the invariant metadata for one benchmark invocation
// (§3, §6).
type BenchmarkMeta struct {
	ID         string         `json:"id"`
	URL        string         `json:"url"`
	CapturedAt time.Time      `json:"captured_at"`
	Runs       int            `json:"runs"`
	Device     DeviceConfig   `json:"device"`
	Network    *NetworkConfig `json:"network,omitempty"`
}

// CWVAggregated bundles the per-metric aggregates for Core Web Vitals.
// LCP/FCP/TTFB use the nullable aggregator since individual runs may
// have no reading; CLS is always present, so it uses the total
// aggregator.
type CWVAggregated struct {
	LCP  *aggregate.Metric `json:"lcp,omitempty"`
	FCP  *aggregate.Metric `json:"fcp,omitempty"`
	CLS  aggregate.Metric  `json:"cls"`
	TTFB *aggregate.Metric `json:"ttfb,omitempty"`
}

// ExtendedTiming bundles the non-CWV timing aggregates (§6 extended.*).
type ExtendedTiming struct {
	TBT              aggregate.Metric `json:"tbt"`
	DomContentLoaded aggregate.Metric `json:"dom_content_loaded"`
	Load             aggregate.Metric `json:"load"`
}

// ResourceTypeAggregated mirrors ResourceTypeTotals but aggregated
// across runs.
type ResourceTypeAggregated struct {
	Count    aggregate.Metric `json:"count"`
	Transfer aggregate.Metric `json:"transfer"`
	Decoded  aggregate.Metric `json:"decoded"`
}

// ResourceAggregated bundles resource-timing aggregates across runs.
// ByType omits any ResourceType that no run observed with a positive
// count (§4.6).
type ResourceAggregated struct {
	TotalTransfer aggregate.Metric                        `json:"total_transfer"`
	TotalCount    aggregate.Metric                        `json:"total_count"`
	FromCache     aggregate.Metric                        `json:"from_cache"`
	ByType        map[ResourceType]ResourceTypeAggregated `json:"by_type"`
}

// JavaScriptAggregated bundles heap/long-task aggregates across runs.
type JavaScriptAggregated struct {
	MainThreadBlocking aggregate.Metric `json:"main_thread_blocking"`
	LongTasks          aggregate.Metric `json:"long_tasks"`
	HeapSize           aggregate.Metric `json:"heap_size"`
}

// SSRAggregated bundles SSR/hydration aggregates across runs. The
// per-framework fields (RSC/Next/ReactRouter payload sizes) are emitted
// only if at least one run observed a nonzero value (§4.6);
// HydrationFramework is fixed to the first run's observed value.
type SSRAggregated struct {
	HasContentRate       float64            `json:"has_content_rate"`
	InlineScriptSize     aggregate.Metric   `json:"inline_script_size"`
	InlineScriptCount    aggregate.Metric   `json:"inline_script_count"`
	HydrationFramework   HydrationFramework `json:"hydration_framework"`
	HydrationPayloadSize aggregate.Metric   `json:"hydration_payload_size"`
	NextDataSize         *aggregate.Metric  `json:"next_data_size,omitempty"`
	ReactRouterDataSize  *aggregate.Metric  `json:"react_router_data_size,omitempty"`
	RSCPayloadSize       *aggregate.Metric  `json:"rsc_payload_size,omitempty"`
	RSCChunkCount        *aggregate.Metric  `json:"rsc_chunk_count,omitempty"`
}

// RuntimeBenchmark is the full result of a benchmark invocation: N
// repeated single runs reduced to per-metric statistical summaries,
// plus the raw per-run records for anyone who wants them (§3, §6).
type RuntimeBenchmark struct {
	Meta       BenchmarkMeta    `json:"meta"`
	CWV        CWVAggregated    `json:"cwv"`
	Extended   ExtendedTiming   `json:"extended"`
	Resources  ResourceAggregated `json:"resources"`
	JavaScript JavaScriptAggregated `json:"javascript"`
	SSR        SSRAggregated    `json:"ssr"`
	Runs       []RawRunRecord   `json:"runs"`
}
