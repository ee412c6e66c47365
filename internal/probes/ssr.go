package probes

import (
	"context"
	"encoding/json"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// ssrContentTextLengthThreshold and ssrContentChildCountThreshold bound
// the "has SSR content" heuristic (§4.4): a root is considered
// server-rendered if its text is reasonably long or it has more than a
// couple of children (an empty shell with one loading spinner should
// not count).
const (
	ssrContentTextLengthThreshold = 50
	ssrContentChildCountThreshold = 2
)

type ssrRootWire struct {
	ID         *string `json:"id"`
	ChildCount int     `json:"childCount"`
	TextLength int     `json:"textLength"`
}

type ssrWire struct {
	Root                ssrRootWire `json:"root"`
	InlineScriptSize     int64  `json:"inlineScriptSize"`
	InlineScriptCount    int    `json:"inlineScriptCount"`
	HydrationFramework   string `json:"hydrationFramework"`
	NextDataSize         int64  `json:"nextDataSize"`
	ReactRouterDataSize  int64  `json:"reactRouterDataSize"`
	RSCPayloadSize       int64  `json:"rscPayloadSize"`
	RSCChunkCount        int    `json:"rscChunkCount"`
}

// SSR evaluates the hydration-inspection probe and classifies the
// result (§4.4).
func SSR(ctx context.Context, tab browser.Tab) (types.SSRData, error) {
	raw, err := tab.Eval(ctx, ssrScript)
	if err != nil {
		return types.SSRData{}, werr.Wrap(werr.CodeCDPError, "ssr probe failed", err)
	}
	var w ssrWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return types.SSRData{}, werr.Wrap(werr.CodeCDPError, "ssr probe returned invalid JSON", err)
	}

	hasContent := w.Root.TextLength > ssrContentTextLengthThreshold || w.Root.ChildCount > ssrContentChildCountThreshold

	hydrationPayload := w.NextDataSize + w.ReactRouterDataSize + w.RSCPayloadSize

	return types.SSRData{
		HasContent:           hasContent,
		InlineScriptSize:     w.InlineScriptSize,
		InlineScriptCount:    w.InlineScriptCount,
		HydrationFramework:   classifyHydrationFramework(w.HydrationFramework),
		HydrationPayloadSize: hydrationPayload,
		NextDataSize:         w.NextDataSize,
		ReactRouterDataSize:  w.ReactRouterDataSize,
		RSCPayloadSize:       w.RSCPayloadSize,
		RSCChunkCount:        w.RSCChunkCount,
	}, nil
}

func classifyHydrationFramework(s string) types.HydrationFramework {
	switch types.HydrationFramework(s) {
	case types.HydrationNext, types.HydrationReactRouter, types.HydrationRemix, types.HydrationUnknown:
		return types.HydrationFramework(s)
	default:
		return types.HydrationNone
	}
}
