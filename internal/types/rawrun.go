package types

// CWVData is the Core Web Vitals reading from one run (§3, §4.4). LCP,
// FCP, and TTFB are nullable: a page with no paint or no navigation
// entry leaves them nil rather than zero.
type CWVData struct {
	LCP  *float64 `json:"lcp,omitempty"`
	FCP  *float64 `json:"fcp,omitempty"`
	CLS  float64  `json:"cls"`
	TTFB *float64 `json:"ttfb,omitempty"`
}

// ResourceTypeTotals aggregates count/transfer/decoded bytes for one
// ResourceType within a run (§3).
type ResourceTypeTotals struct {
	Count   int   `json:"count"`
	Transfer int64 `json:"transfer"`
	Decoded  int64 `json:"decoded"`
}

// ResourceData summarizes every resource loaded during one run (§3,
// §4.4).
type ResourceData struct {
	TotalTransfer int64                                `json:"total_transfer"`
	TotalCount    int                                  `json:"total_count"`
	FromCache     int                                  `json:"from_cache"`
	ByType        map[ResourceType]ResourceTypeTotals `json:"by_type"`
}

// TimingData carries the two coarse navigation-timing milestones the
// spec tracks outside CWV (§3).
type TimingData struct {
	DomContentLoaded float64 `json:"dom_content_loaded"`
	Load             float64 `json:"load"`
}

// BlockingData summarizes the long-task buffer for one run (§3, §4.4).
type BlockingData struct {
	TotalBlockingTime float64 `json:"total_blocking_time"`
	LongTaskCount     int     `json:"long_task_count"`
}

// SSRData captures inline-script/hydration-payload inspection for one
// run (§3, §4.4).
type SSRData struct {
	HasContent            bool               `json:"has_content"`
	InlineScriptSize      int64              `json:"inline_script_size"`
	InlineScriptCount     int                `json:"inline_script_count"`
	HydrationFramework    HydrationFramework `json:"hydration_framework"`
	HydrationPayloadSize  int64              `json:"hydration_payload_size"`
	NextDataSize          int64              `json:"next_data_size"`
	ReactRouterDataSize   int64              `json:"react_router_data_size"`
	RSCPayloadSize        int64              `json:"rsc_payload_size"`
	RSCChunkCount         int                `json:"rsc_chunk_count"`
}

// RawRunRecord is the full telemetry harvested from one single-run
// measurement (§3, §4.5). It is constructed inside a single-run scope,
// consumed once by the benchmark engine, then discarded.
type RawRunRecord struct {
	CWV       CWVData      `json:"cwv"`
	Resources ResourceData `json:"resources"`
	Timing    TimingData   `json:"timing"`
	Blocking  BlockingData `json:"blocking"`
	HeapBytes int64        `json:"heap_bytes"`
	SSR       SSRData      `json:"ssr"`
}
