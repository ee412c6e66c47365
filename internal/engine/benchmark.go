package engine

import (
	"context"
	"time"

	"github.com/devdumpling/traverse-sub000/internal/aggregate"
	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// BenchmarkOptions configures a repeated-run benchmark (§4.6).
type BenchmarkOptions struct {
	URL     string
	Runs    int
	Device  types.DeviceConfig
	Network *types.NetworkConfig
}

// Benchmark repeats a single run N times, each on a fresh tab opened
// through driver, and reduces the results into a RuntimeBenchmark. It
// does not start the browser. On any run error, the driver is closed and
// the error propagates; on success every tab has been closed after its
// run and the driver is left open for the caller to close (§4.6).
func Benchmark(ctx context.Context, driver browser.Driver, opts BenchmarkOptions) (types.RuntimeBenchmark, error) {
	if opts.Runs < 1 {
		return types.RuntimeBenchmark{}, werr.New(werr.CodeInvalidRunCount, "benchmark requires at least one run")
	}

	runs := make([]types.RawRunRecord, 0, opts.Runs)
	for i := 0; i < opts.Runs; i++ {
		record, err := runOnFreshTab(ctx, driver, opts)
		if err != nil {
			_ = driver.Close(ctx)
			return types.RuntimeBenchmark{}, err
		}
		runs = append(runs, record)
	}

	return reduce(opts, runs), nil
}

func runOnFreshTab(ctx context.Context, driver browser.Driver, opts BenchmarkOptions) (types.RawRunRecord, error) {
	tab, err := driver.NewTab(ctx, opts.Device)
	if err != nil {
		return types.RawRunRecord{}, werr.Wrap(werr.CodeLaunchFailed, "open tab", err)
	}
	defer func() { _ = tab.Close(ctx) }()

	return Run(ctx, tab, RunOptions{URL: opts.URL, Device: opts.Device, Network: opts.Network})
}

// reduce feeds per-run sequences to the aggregator and assembles the
// typed RuntimeBenchmark record (§4.6).
func reduce(opts BenchmarkOptions, runs []types.RawRunRecord) types.RuntimeBenchmark {
	n := len(runs)

	lcps := make([]*float64, n)
	fcps := make([]*float64, n)
	ttfbs := make([]*float64, n)
	clss := make([]float64, n)
	tbts := make([]float64, n)
	dclVals := make([]float64, n)
	loadVals := make([]float64, n)
	transferVals := make([]float64, n)
	countVals := make([]float64, n)
	fromCacheVals := make([]float64, n)
	longTaskVals := make([]float64, n)
	heapVals := make([]float64, n)

	byType := make(map[types.ResourceType][]resourceSample)

	hasContentCount := 0
	var firstHydration types.HydrationFramework
	inlineSizeVals := make([]float64, n)
	inlineCountVals := make([]float64, n)
	hydrationPayloadVals := make([]float64, n)
	var nextDataVals, rrDataVals, rscPayloadVals, rscChunkVals []float64
	anyNextData, anyRRData, anyRSC := false, false, false

	for i, r := range runs {
		lcps[i] = r.CWV.LCP
		fcps[i] = r.CWV.FCP
		ttfbs[i] = r.CWV.TTFB
		clss[i] = r.CWV.CLS
		tbts[i] = r.Blocking.TotalBlockingTime
		dclVals[i] = r.Timing.DomContentLoaded
		loadVals[i] = r.Timing.Load
		transferVals[i] = float64(r.Resources.TotalTransfer)
		countVals[i] = float64(r.Resources.TotalCount)
		fromCacheVals[i] = float64(r.Resources.FromCache)
		longTaskVals[i] = float64(r.Blocking.LongTaskCount)
		heapVals[i] = float64(r.HeapBytes)

		for rt, totals := range r.Resources.ByType {
			if totals.Count <= 0 {
				continue
			}
			byType[rt] = append(byType[rt], resourceSample{
				count:    float64(totals.Count),
				transfer: float64(totals.Transfer),
				decoded:  float64(totals.Decoded),
			})
		}

		if r.SSR.HasContent {
			hasContentCount++
		}
		if i == 0 {
			firstHydration = r.SSR.HydrationFramework
		}
		inlineSizeVals[i] = float64(r.SSR.InlineScriptSize)
		inlineCountVals[i] = float64(r.SSR.InlineScriptCount)
		hydrationPayloadVals[i] = float64(r.SSR.HydrationPayloadSize)
		if r.SSR.NextDataSize != 0 {
			anyNextData = true
		}
		if r.SSR.ReactRouterDataSize != 0 {
			anyRRData = true
		}
		if r.SSR.RSCPayloadSize != 0 || r.SSR.RSCChunkCount != 0 {
			anyRSC = true
		}
		nextDataVals = append(nextDataVals, float64(r.SSR.NextDataSize))
		rrDataVals = append(rrDataVals, float64(r.SSR.ReactRouterDataSize))
		rscPayloadVals = append(rscPayloadVals, float64(r.SSR.RSCPayloadSize))
		rscChunkVals = append(rscChunkVals, float64(r.SSR.RSCChunkCount))
	}

	lcpMetric, _ := aggregate.Nullable(lcps)
	fcpMetric, _ := aggregate.Nullable(fcps)
	ttfbMetric, _ := aggregate.Nullable(ttfbs)

	byTypeAgg := make(map[types.ResourceType]types.ResourceTypeAggregated, len(byType))
	for rt, samples := range byType {
		counts := make([]float64, len(samples))
		transfers := make([]float64, len(samples))
		decodeds := make([]float64, len(samples))
		for i, s := range samples {
			counts[i] = s.count
			transfers[i] = s.transfer
			decodeds[i] = s.decoded
		}
		byTypeAgg[rt] = types.ResourceTypeAggregated{
			Count:    aggregate.Aggregate(counts),
			Transfer: aggregate.Aggregate(transfers),
			Decoded:  aggregate.Aggregate(decodeds),
		}
	}

	var nextDataMetric, rrDataMetric, rscPayloadMetric, rscChunkMetric *aggregate.Metric
	if anyNextData {
		m := aggregate.Aggregate(nextDataVals)
		nextDataMetric = &m
	}
	if anyRRData {
		m := aggregate.Aggregate(rrDataVals)
		rrDataMetric = &m
	}
	if anyRSC {
		m1 := aggregate.Aggregate(rscPayloadVals)
		rscPayloadMetric = &m1
		m2 := aggregate.Aggregate(rscChunkVals)
		rscChunkMetric = &m2
	}

	hasContentRate := 0.0
	if n > 0 {
		hasContentRate = float64(hasContentCount) / float64(n)
	}

	return types.RuntimeBenchmark{
		Meta: types.BenchmarkMeta{
			ID:         types.NewID(),
			URL:        opts.URL,
			CapturedAt: time.Now().UTC(),
			Runs:       n,
			Device:     opts.Device,
			Network:    opts.Network,
		},
		CWV: types.CWVAggregated{
			LCP:  lcpMetric,
			FCP:  fcpMetric,
			CLS:  aggregate.Aggregate(clss),
			TTFB: ttfbMetric,
		},
		Extended: types.ExtendedTiming{
			TBT:              aggregate.Aggregate(tbts),
			DomContentLoaded: aggregate.Aggregate(dclVals),
			Load:             aggregate.Aggregate(loadVals),
		},
		Resources: types.ResourceAggregated{
			TotalTransfer: aggregate.Aggregate(transferVals),
			TotalCount:    aggregate.Aggregate(countVals),
			FromCache:     aggregate.Aggregate(fromCacheVals),
			ByType:        byTypeAgg,
		},
		JavaScript: types.JavaScriptAggregated{
			MainThreadBlocking: aggregate.Aggregate(tbts),
			LongTasks:          aggregate.Aggregate(longTaskVals),
			HeapSize:           aggregate.Aggregate(heapVals),
		},
		SSR: types.SSRAggregated{
			HasContentRate:       hasContentRate,
			InlineScriptSize:     aggregate.Aggregate(inlineSizeVals),
			InlineScriptCount:    aggregate.Aggregate(inlineCountVals),
			HydrationFramework:   firstHydration,
			HydrationPayloadSize: aggregate.Aggregate(hydrationPayloadVals),
			NextDataSize:         nextDataMetric,
			ReactRouterDataSize:  rrDataMetric,
			RSCPayloadSize:       rscPayloadMetric,
			RSCChunkCount:        rscChunkMetric,
		},
		Runs: runs,
	}
}

type resourceSample struct {
	count    float64
	transfer float64
	decoded  float64
}
