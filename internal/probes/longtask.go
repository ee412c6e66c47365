package probes

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// longTaskThresholdMs is the duration past which a main-thread task's
// excess is counted toward total blocking time (§4.4, GLOSSARY).
const longTaskThresholdMs = 50.0

type longTaskEntryWire struct {
	StartTime float64 `json:"startTime"`
	Duration  float64 `json:"duration"`
}

type longTaskReadWire struct {
	Buffered    []longTaskEntryWire `json:"buffered"`
	FromEntries []longTaskEntryWire `json:"fromEntries"`
}

// InjectLongTaskObserver returns the script the browser driver adapter
// must run before any page script of the next navigation, so the
// long-task observer is listening from the first paint (§4.5 step 1).
func InjectLongTaskObserver() string {
	return longTaskInitScript
}

// LongTasks reads the page-scoped long-task buffer plus the standard
// entry list, de-duplicates by (startTime, duration), and derives
// total blocking time (§4.4).
func LongTasks(ctx context.Context, tab browser.Tab) (types.BlockingData, error) {
	raw, err := tab.Eval(ctx, longTaskReadScript)
	if err != nil {
		return types.BlockingData{}, werr.Wrap(werr.CodeCDPError, "long-task probe failed", err)
	}
	var w longTaskReadWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return types.BlockingData{}, werr.Wrap(werr.CodeCDPError, "long-task probe returned invalid JSON", err)
	}

	seen := make(map[string]bool, len(w.Buffered)+len(w.FromEntries))
	var totalBlocking float64
	var count int
	add := func(e longTaskEntryWire) {
		key := dedupeKey(e.StartTime, e.Duration)
		if seen[key] {
			return
		}
		seen[key] = true
		count++
		if blocking := e.Duration - longTaskThresholdMs; blocking > 0 {
			totalBlocking += blocking
		}
	}
	for _, e := range w.Buffered {
		add(e)
	}
	for _, e := range w.FromEntries {
		add(e)
	}

	return types.BlockingData{TotalBlockingTime: totalBlocking, LongTaskCount: count}, nil
}

// dedupeKey rounds to the millisecond so floating-point jitter between
// the two capture paths does not defeat de-duplication.
func dedupeKey(startTime, duration float64) string {
	return fmt.Sprintf("%.0f:%.0f", startTime, duration)
}
