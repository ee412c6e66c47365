// Package engine implements the single-run and benchmark measurement
// engines (§4.5, §4.6): the strict per-run orchestration sequence, and
// the N-repeat loop that reduces raw runs into a RuntimeBenchmark.
package engine

import (
	"context"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/probes"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// RunOptions configures a single measurement (§4.5).
type RunOptions struct {
	URL     string
	Device  types.DeviceConfig
	Network *types.NetworkConfig
}

// Run executes the strict §4.5 sequence on a fresh tab and returns the
// harvested RawRunRecord. Any probe or navigation failure short-circuits
// the run with the corresponding error code; the caller owns closing
// tab regardless of outcome.
func Run(ctx context.Context, tab browser.Tab, opts RunOptions) (types.RawRunRecord, error) {
	// Step 1: inject the long-task observer before navigation so it is
	// listening from the first script the page runs.
	if err := tab.InjectOnNewDocument(ctx, probes.InjectLongTaskObserver()); err != nil {
		return types.RawRunRecord{}, err
	}

	// Step 2: open the control channel and enable performance metrics.
	control, err := tab.Control(ctx)
	if err != nil {
		return types.RawRunRecord{}, werr.Wrap(werr.CodeCDPError, "open control channel", err)
	}
	if err := control.EnablePerformanceMetrics(ctx); err != nil {
		return types.RawRunRecord{}, err
	}

	// Step 3: apply network emulation, if configured.
	if opts.Network != nil {
		if err := control.EmulateNetwork(ctx, *opts.Network); err != nil {
			return types.RawRunRecord{}, err
		}
	}

	// Step 4: clear the browser cache so every run starts cold.
	if err := control.ClearCache(ctx); err != nil {
		return types.RawRunRecord{}, err
	}

	// Step 5: navigate, waiting for network-idle.
	if err := tab.Goto(ctx, opts.URL, browser.WaitNetworkIdle); err != nil {
		return types.RawRunRecord{}, err
	}

	// Step 6: run capture probes in the fixed order the spec requires —
	// each probe observes only state its predecessors already produced.
	cwv, err := probes.CWV(ctx, tab)
	if err != nil {
		return types.RawRunRecord{}, err
	}

	resources, err := probes.Resources(ctx, tab)
	if err != nil {
		return types.RawRunRecord{}, err
	}

	timing, err := probes.Timing(ctx, tab)
	if err != nil {
		return types.RawRunRecord{}, err
	}

	heap, err := control.HeapUsage(ctx)
	if err != nil {
		return types.RawRunRecord{}, err
	}

	blocking, err := probes.LongTasks(ctx, tab)
	if err != nil {
		return types.RawRunRecord{}, err
	}

	ssr, err := probes.SSR(ctx, tab)
	if err != nil {
		return types.RawRunRecord{}, err
	}

	// Step 7: assemble the record.
	return types.RawRunRecord{
		CWV:       cwv,
		Resources: resources,
		Timing:    timing,
		Blocking:  blocking,
		HeapBytes: heap,
		SSR:       ssr,
	}, nil
}
