package probes

import (
	"context"
	"encoding/json"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

type cwvWire struct {
	LCP  *float64 `json:"lcp"`
	FCP  *float64 `json:"fcp"`
	CLS  float64  `json:"cls"`
	TTFB *float64 `json:"ttfb"`
}

// CWV evaluates the Core Web Vitals probe on tab and returns the
// parsed reading (§4.4). The probe's own hard cap bounds how long this
// can block; a transport failure surfaces as CDP_ERROR.
func CWV(ctx context.Context, tab browser.Tab) (types.CWVData, error) {
	raw, err := tab.Eval(ctx, cwvScript)
	if err != nil {
		return types.CWVData{}, werr.Wrap(werr.CodeCDPError, "cwv probe failed", err)
	}
	var w cwvWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return types.CWVData{}, werr.Wrap(werr.CodeCDPError, "cwv probe returned invalid JSON", err)
	}
	return types.CWVData{LCP: w.LCP, FCP: w.FCP, CLS: w.CLS, TTFB: w.TTFB}, nil
}
