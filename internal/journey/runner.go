package journey

import (
	"context"
	"time"

	"github.com/devdumpling/traverse-sub000/internal/aggregate"
	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/navigation"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// RunOptions configures a journey invocation (§4.8).
type RunOptions struct {
	BaseURL string
	Runs    int
	Device  types.DeviceConfig
}

// Run executes def against driver for opts.Runs repetitions and reduces
// the per-run step sequences into a JourneyResult (§4.8).
func Run(ctx context.Context, driver browser.Driver, def Definition, opts RunOptions) (types.JourneyResult, error) {
	if err := def.Validate(); err != nil {
		return types.JourneyResult{}, err
	}
	if opts.Runs < 1 {
		return types.JourneyResult{}, werr.New(werr.CodeInvalidJourney, "journey requires at least one repetition")
	}

	runs := make([][]types.StepRecord, 0, opts.Runs)
	for i := 0; i < opts.Runs; i++ {
		steps, err := runOneRepetition(ctx, driver, def, opts)
		if err != nil {
			_ = driver.Close(ctx)
			return types.JourneyResult{}, err
		}
		runs = append(runs, steps)
	}

	return reduce(opts, def, runs), nil
}

// runOneRepetition implements §4.8 steps 1-4 for a single repetition:
// fresh page, fresh tracker, every registered step executed in order,
// resources released regardless of outcome.
func runOneRepetition(ctx context.Context, driver browser.Driver, def Definition, opts RunOptions) ([]types.StepRecord, error) {
	page, err := driver.NewTab(ctx, opts.Device)
	if err != nil {
		return nil, werr.Wrap(werr.CodeLaunchFailed, "open journey page", err)
	}
	defer func() { _ = page.Close(ctx) }()

	if err := page.Goto(ctx, opts.BaseURL, browser.WaitNetworkIdle); err != nil {
		return nil, werr.Wrap(werr.CodeNavigationFailed, "navigate to journey base url", err)
	}

	jctx := &Context{ctx: ctx, page: page, tracker: navigation.NewTracker()}
	if err := def.Run(jctx); err != nil {
		return nil, err
	}
	return jctx.steps, nil
}

// reduce zips step records by index across M repetitions and computes
// per-step and cumulative aggregates per §4.8.
func reduce(opts RunOptions, def Definition, runs [][]types.StepRecord) types.JourneyResult {
	stepCount := 0
	for _, r := range runs {
		if len(r) > stepCount {
			stepCount = len(r)
		}
	}

	steps := make([]types.StepAggregated, 0, stepCount)
	for idx := 0; idx < stepCount; idx++ {
		steps = append(steps, reduceStep(idx, runs))
	}

	cumulative := reduceCumulative(runs)

	return types.JourneyResult{
		Meta: types.JourneyMeta{
			ID:          types.NewID(),
			Name:        def.Name,
			Description: def.Description,
			BaseURL:     opts.BaseURL,
			CapturedAt:  time.Now().UTC(),
			Runs:        len(runs),
			Device:      opts.Device,
		},
		Steps:      steps,
		Cumulative: cumulative,
		Runs:       runs,
	}
}

// reduceStep aggregates every repetition's record at step index idx.
// Absent cls/resources map to 0 by convention; LCP is nullable (§4.8).
func reduceStep(idx int, runs [][]types.StepRecord) types.StepAggregated {
	var name string
	durations := make([]float64, 0, len(runs))
	clss := make([]float64, 0, len(runs))
	transfers := make([]float64, 0, len(runs))
	memories := make([]*float64, 0, len(runs))
	lcps := make([]*float64, 0, len(runs))
	var firstNav *types.NavigationData

	for _, run := range runs {
		if idx >= len(run) {
			continue
		}
		step := run[idx]
		if name == "" {
			name = step.Name
		}
		durations = append(durations, float64(step.EndTime.Sub(step.StartTime).Microseconds())/1000)

		cls := 0.0
		if step.Data.CWV != nil {
			cls = step.Data.CWV.CLS
			lcps = append(lcps, step.Data.CWV.LCP)
		} else {
			lcps = append(lcps, nil)
		}
		clss = append(clss, cls)

		transfer := 0.0
		if step.Data.Resources != nil {
			transfer = float64(step.Data.Resources.TotalTransfer)
		}
		transfers = append(transfers, transfer)

		if step.Data.Memory != nil {
			v := float64(*step.Data.Memory)
			memories = append(memories, &v)
		} else {
			memories = append(memories, nil)
		}

		if firstNav == nil && step.Data.Navigation != nil {
			firstNav = step.Data.Navigation
		}
	}

	lcpMetric, anyLCP := aggregate.Nullable(lcps)
	memMetric, anyMem := aggregate.Nullable(memories)

	agg := types.StepAggregated{
		Name:     name,
		Duration: aggregate.Aggregate(durations),
		CLS:      aggregate.Aggregate(clss),
		Transfer: aggregate.Aggregate(transfers),
	}
	if anyLCP {
		agg.LCP = lcpMetric
	}
	if anyMem {
		agg.Memory = memMetric
	}
	agg.Navigation = firstNav
	return agg
}

// reduceCumulative computes the per-run cumulative scalars and
// aggregates them across repetitions (§4.8).
func reduceCumulative(runs [][]types.StepRecord) types.CumulativeAggregated {
	totalDurations := make([]float64, len(runs))
	totalTransfers := make([]float64, len(runs))
	totalCls := make([]float64, len(runs))
	memoryHighWaters := make([]float64, len(runs))
	cacheHitRates := make([]float64, len(runs))

	for i, run := range runs {
		var duration, transfer, cls, highWater, fromCache, totalLoaded float64
		for _, step := range run {
			duration += float64(step.EndTime.Sub(step.StartTime).Microseconds()) / 1000
			if step.Data.CWV != nil {
				cls += step.Data.CWV.CLS
			}
			if step.Data.Resources != nil {
				transfer += float64(step.Data.Resources.TotalTransfer)
				fromCache += float64(step.Data.Resources.FromCache)
				totalLoaded += float64(step.Data.Resources.TotalCount)
			}
			if step.Data.Memory != nil && float64(*step.Data.Memory) > highWater {
				highWater = float64(*step.Data.Memory)
			}
		}
		totalDurations[i] = duration
		totalTransfers[i] = transfer
		totalCls[i] = cls
		memoryHighWaters[i] = highWater
		if totalLoaded == 0 {
			cacheHitRates[i] = 0
		} else {
			cacheHitRates[i] = fromCache / totalLoaded * 100
		}
	}

	return types.CumulativeAggregated{
		TotalDuration:    aggregate.Aggregate(totalDurations),
		TotalTransferred: aggregate.Aggregate(totalTransfers),
		CacheHitRate:     aggregate.Aggregate(cacheHitRates),
		MemoryHighWater:  aggregate.Aggregate(memoryHighWaters),
		TotalCls:         aggregate.Aggregate(totalCls),
	}
}
