// Package compare implements the directional diff engine and the
// per-kind comparison builders (§4.9, §8 invariants 9-10).
package compare

import (
	"github.com/devdumpling/traverse-sub000/internal/aggregate"
	"github.com/devdumpling/traverse-sub000/internal/capturefile"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// CalculateDiff computes a directional diff between a baseline and
// current scalar reading (§4.9, §8 invariant 10). direction decides
// which side of the inequality counts as "improved" — it is passed as
// data, not as a polymorphic diff implementation (§9).
func CalculateDiff(baseline, current float64, direction types.Direction) types.MetricDiff {
	absoluteDiff := current - baseline

	var percentDiff float64
	switch {
	case baseline == 0 && current == 0:
		percentDiff = 0
	case baseline == 0 && current != 0:
		percentDiff = 100
	default:
		percentDiff = (current - baseline) / baseline * 100
	}

	var improved bool
	if direction == types.HigherIsBetter {
		improved = current > baseline
	} else {
		improved = current < baseline
	}

	return types.MetricDiff{
		Baseline:     baseline,
		Current:      current,
		AbsoluteDiff: absoluteDiff,
		PercentDiff:  percentDiff,
		Improved:     improved,
	}
}

// percentileDiff bundles CalculateDiff across a baseline/current
// Metric's median/p75/p95 triple (§4.9).
func percentileDiff(baseline, current aggregate.Metric, direction types.Direction) types.PercentileDiff {
	return types.PercentileDiff{
		Median: CalculateDiff(baseline.Median, current.Median, direction),
		P75:    CalculateDiff(baseline.P75, current.P75, direction),
		P95:    CalculateDiff(baseline.P95, current.P95, direction),
	}
}

func nullablePercentileDiff(baseline, current *aggregate.Metric, direction types.Direction) *types.PercentileDiff {
	if baseline == nil || current == nil {
		return nil
	}
	d := percentileDiff(*baseline, *current, direction)
	return &d
}

// Compare diffs two loaded capture files. Both must share the same
// kind; any other pairing is TYPE_MISMATCH (§4.9, §8 invariant 9).
// Journey comparison is out of scope of the core (§4.9).
func Compare(baseline, current capturefile.File) (types.ComparisonResult, error) {
	if baseline.Kind != current.Kind {
		return types.ComparisonResult{}, werr.New(werr.CodeTypeMismatch, "cannot compare captures of different kinds")
	}

	switch baseline.Kind {
	case types.KindBenchmark:
		bc := compareBenchmark(*baseline.Benchmark, *current.Benchmark)
		return types.ComparisonResult{Kind: types.KindBenchmark, Benchmark: &bc}, nil
	case types.KindStatic:
		sc := compareStatic(*baseline.Static, *current.Static)
		return types.ComparisonResult{Kind: types.KindStatic, Static: &sc}, nil
	default:
		return types.ComparisonResult{}, werr.New(werr.CodeTypeMismatch, "comparison is not supported for capture kind "+string(baseline.Kind))
	}
}

func compareBenchmark(b, c types.RuntimeBenchmark) types.BenchmarkComparison {
	return types.BenchmarkComparison{
		Label: [2]string{b.Meta.URL, c.Meta.URL},
		CWV: types.CWVComparison{
			LCP:  nullablePercentileDiff(b.CWV.LCP, c.CWV.LCP, types.LowerIsBetter),
			FCP:  nullablePercentileDiff(b.CWV.FCP, c.CWV.FCP, types.LowerIsBetter),
			CLS:  percentileDiff(b.CWV.CLS, c.CWV.CLS, types.LowerIsBetter),
			TTFB: nullablePercentileDiff(b.CWV.TTFB, c.CWV.TTFB, types.LowerIsBetter),
		},
		Extended: types.ExtendedComparison{
			TBT:              percentileDiff(b.Extended.TBT, c.Extended.TBT, types.LowerIsBetter),
			DomContentLoaded: percentileDiff(b.Extended.DomContentLoaded, c.Extended.DomContentLoaded, types.LowerIsBetter),
			Load:             percentileDiff(b.Extended.Load, c.Extended.Load, types.LowerIsBetter),
		},
		Resources: types.ResourceComparison{
			TotalTransfer: percentileDiff(b.Resources.TotalTransfer, c.Resources.TotalTransfer, types.LowerIsBetter),
			TotalCount:    percentileDiff(b.Resources.TotalCount, c.Resources.TotalCount, types.LowerIsBetter),
		},
		JS: types.JSComparison{
			HeapSize:  percentileDiff(b.JavaScript.HeapSize, c.JavaScript.HeapSize, types.LowerIsBetter),
			LongTasks: percentileDiff(b.JavaScript.LongTasks, c.JavaScript.LongTasks, types.LowerIsBetter),
			Blocking:  percentileDiff(b.JavaScript.MainThreadBlocking, c.JavaScript.MainThreadBlocking, types.LowerIsBetter),
		},
		SSR: types.SSRComparison{
			HasContentRate:   CalculateDiff(b.SSR.HasContentRate, c.SSR.HasContentRate, types.HigherIsBetter),
			InlineScriptSize: percentileDiff(b.SSR.InlineScriptSize, c.SSR.InlineScriptSize, types.LowerIsBetter),
			RSCPayloadSize:   nullablePercentileDiff(b.SSR.RSCPayloadSize, c.SSR.RSCPayloadSize, types.LowerIsBetter),
		},
	}
}

func compareStatic(b, c types.StaticCapture) types.StaticComparison {
	return types.StaticComparison{
		Label:      [2]string{b.Meta.BuildDir, c.Meta.BuildDir},
		Total:      compareByteSize(b.Bundles.Total, c.Bundles.Total),
		JS:         compareByteSize(b.Bundles.JS, c.Bundles.JS),
		CSS:        compareByteSize(b.Bundles.CSS, c.Bundles.CSS),
		RouteCount: [2]int{len(b.Routes), len(c.Routes)},
	}
}

func compareByteSize(b, c types.ByteSize) types.ByteSizeComparison {
	return types.ByteSizeComparison{
		Raw:    CalculateDiff(float64(b.Raw), float64(c.Raw), types.LowerIsBetter),
		Gzip:   CalculateDiff(float64(b.Gzip), float64(c.Gzip), types.LowerIsBetter),
		Brotli: CalculateDiff(float64(b.Brotli), float64(c.Brotli), types.LowerIsBetter),
	}
}
