package probes

import (
	"context"
	"encoding/json"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

type navTimingWire struct {
	URL          string  `json:"url"`
	NavType      string  `json:"navType"`
	RequestStart float64 `json:"requestStart"`
	LoadEventEnd float64 `json:"loadEventEnd"`
	StartTime    float64 `json:"startTime"`
}

// NavTiming evaluates the single page-context timing read the
// navigation tracker classifies against (§4.7).
func NavTiming(ctx context.Context, tab browser.Tab) (types.NavTiming, error) {
	raw, err := tab.Eval(ctx, navTimingScript)
	if err != nil {
		return types.NavTiming{}, werr.Wrap(werr.CodeCDPError, "navigation timing probe failed", err)
	}
	var w navTimingWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return types.NavTiming{}, werr.Wrap(werr.CodeCDPError, "navigation timing probe returned invalid JSON", err)
	}
	return types.NavTiming{
		URL:          w.URL,
		NavType:      types.NavType(w.NavType),
		RequestStart: w.RequestStart,
		LoadEventEnd: w.LoadEventEnd,
		StartTime:    w.StartTime,
	}, nil
}
