package render

import (
	"fmt"
	"strings"

	"github.com/devdumpling/traverse-sub000/internal/types"
)

func benchmarkMarkdown(b types.RuntimeBenchmark) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Benchmark: %s\n\n", b.Meta.URL)
	fmt.Fprintf(&sb, "Runs: %d | Captured: %s\n\n", b.Meta.Runs, b.Meta.CapturedAt.Format("2006-01-02T15:04:05Z"))

	sb.WriteString("## Core Web Vitals\n\n")
	sb.WriteString("| metric | median | p75 | p95 |\n|---|---|---|---|\n")
	sb.WriteString(nullableMetricLine("LCP", b.CWV.LCP))
	sb.WriteString(nullableMetricLine("FCP", b.CWV.FCP))
	sb.WriteString(metricLine("CLS", b.CWV.CLS))
	sb.WriteString(nullableMetricLine("TTFB", b.CWV.TTFB))

	sb.WriteString("\n## Extended timing\n\n")
	sb.WriteString("| metric | median | p75 | p95 |\n|---|---|---|---|\n")
	sb.WriteString(metricLine("TBT", b.Extended.TBT))
	sb.WriteString(metricLine("DOMContentLoaded", b.Extended.DomContentLoaded))
	sb.WriteString(metricLine("Load", b.Extended.Load))

	sb.WriteString("\n## Resources\n\n")
	sb.WriteString("| metric | median | p75 | p95 |\n|---|---|---|---|\n")
	sb.WriteString(metricLine("Total transfer (bytes)", b.Resources.TotalTransfer))
	sb.WriteString(metricLine("Total count", b.Resources.TotalCount))
	sb.WriteString(metricLine("From cache", b.Resources.FromCache))

	fmt.Fprintf(&sb, "\n## SSR\n\nHydration framework: `%s` | Has-content rate: %.0f%%\n",
		b.SSR.HydrationFramework, b.SSR.HasContentRate*100)

	return sb.String()
}

func journeyMarkdown(j types.JourneyResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Journey: %s\n\n%s\n\n", j.Meta.Name, j.Meta.Description)
	fmt.Fprintf(&sb, "Base URL: %s | Runs: %d\n\n", j.Meta.BaseURL, j.Meta.Runs)

	sb.WriteString("## Steps\n\n")
	sb.WriteString("| step | duration (median) | cls (median) | transfer (median) |\n|---|---|---|---|\n")
	for _, s := range j.Steps {
		fmt.Fprintf(&sb, "| %s | %.2f | %.4f | %.0f |\n", s.Name, s.Duration.Median, s.CLS.Median, s.Transfer.Median)
	}

	fmt.Fprintf(&sb, "\n## Cumulative\n\nTotal duration (median): %.2f ms\nTotal transferred (median): %.0f bytes\nCache hit rate (median): %.1f%%\nMemory high water (median): %.0f bytes\nTotal CLS (median): %.4f\n",
		j.Cumulative.TotalDuration.Median,
		j.Cumulative.TotalTransferred.Median,
		j.Cumulative.CacheHitRate.Median,
		j.Cumulative.MemoryHighWater.Median,
		j.Cumulative.TotalCls.Median,
	)
	return sb.String()
}

func comparisonMarkdown(c types.ComparisonResult) string {
	var sb strings.Builder
	switch c.Kind {
	case types.KindBenchmark:
		bc := c.Benchmark
		fmt.Fprintf(&sb, "# Comparison: %s → %s\n\n", bc.Label[0], bc.Label[1])
		sb.WriteString("| metric | baseline | current | % change | improved |\n|---|---|---|---|---|\n")
		sb.WriteString(diffLine("CLS (median)", bc.CWV.CLS.Median))
		sb.WriteString(diffLine("TBT (median)", bc.Extended.TBT.Median))
		sb.WriteString(diffLine("Total transfer (median)", bc.Resources.TotalTransfer.Median))
		sb.WriteString(diffLine("Heap size (median)", bc.JS.HeapSize.Median))
		if bc.CWV.LCP != nil {
			sb.WriteString(diffLine("LCP (median)", bc.CWV.LCP.Median))
		}
	case types.KindStatic:
		sc := c.Static
		fmt.Fprintf(&sb, "# Comparison: %s → %s\n\n", sc.Label[0], sc.Label[1])
		sb.WriteString("| metric | baseline | current | % change | improved |\n|---|---|---|---|---|\n")
		sb.WriteString(diffLine("Total raw size", sc.Total.Raw))
		sb.WriteString(diffLine("Total gzip size", sc.Total.Gzip))
		sb.WriteString(diffLine("JS gzip size", sc.JS.Gzip))
		sb.WriteString(diffLine("CSS gzip size", sc.CSS.Gzip))
		fmt.Fprintf(&sb, "\nRoutes: %d → %d\n", sc.RouteCount[0], sc.RouteCount[1])
	}
	return sb.String()
}

func diffLine(label string, d types.MetricDiff) string {
	return fmt.Sprintf("| %s | %.2f | %.2f | %.1f%% | %t |\n", label, d.Baseline, d.Current, d.PercentDiff, d.Improved)
}
