// Package render formats the three result records — benchmark,
// journey, comparison — as JSON or Markdown for the CLI's output
// commands.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/devdumpling/traverse-sub000/internal/aggregate"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// Format names an output renderer.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Benchmark writes b to w in the given format.
func Benchmark(w io.Writer, b types.RuntimeBenchmark, format Format) error {
	switch format {
	case FormatMarkdown:
		_, err := io.WriteString(w, benchmarkMarkdown(b))
		return err
	default:
		return writeJSON(w, b)
	}
}

// Journey writes j to w in the given format.
func Journey(w io.Writer, j types.JourneyResult, format Format) error {
	switch format {
	case FormatMarkdown:
		_, err := io.WriteString(w, journeyMarkdown(j))
		return err
	default:
		return writeJSON(w, j)
	}
}

// Comparison writes c to w in the given format.
func Comparison(w io.Writer, c types.ComparisonResult, format Format) error {
	switch format {
	case FormatMarkdown:
		_, err := io.WriteString(w, comparisonMarkdown(c))
		return err
	default:
		return writeJSON(w, c)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return werr.Wrap(werr.CodeLoadFailed, "encode render output", err)
	}
	return nil
}

func metricLine(label string, m aggregate.Metric) string {
	return fmt.Sprintf("| %s | %.2f | %.2f | %.2f |\n", label, m.Median, m.P75, m.P95)
}

func nullableMetricLine(label string, m *aggregate.Metric) string {
	if m == nil {
		return fmt.Sprintf("| %s | absent | absent | absent |\n", label)
	}
	return metricLine(label, *m)
}
