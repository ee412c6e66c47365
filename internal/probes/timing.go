package probes

import (
	"context"
	"encoding/json"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

const timingScript = `(() => {
  const nav = performance.getEntriesByType("navigation")[0];
  return {
    domContentLoaded: nav ? nav.domContentLoadedEventEnd : 0,
    load: nav ? nav.loadEventEnd : 0,
  };
})()`

type timingWire struct {
	DomContentLoaded float64 `json:"domContentLoaded"`
	Load             float64 `json:"load"`
}

// Timing evaluates the coarse navigation-timing probe for the two
// milestones the spec tracks outside CWV (§3, §4.5 step 6).
func Timing(ctx context.Context, tab browser.Tab) (types.TimingData, error) {
	raw, err := tab.Eval(ctx, timingScript)
	if err != nil {
		return types.TimingData{}, werr.Wrap(werr.CodeCDPError, "timing probe failed", err)
	}
	var w timingWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return types.TimingData{}, werr.Wrap(werr.CodeCDPError, "timing probe returned invalid JSON", err)
	}
	return types.TimingData{DomContentLoaded: w.DomContentLoaded, Load: w.Load}, nil
}
