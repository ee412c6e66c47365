package probes

import (
	"context"
	"encoding/json"
	"path"
	"strings"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

type resourceEntryWire struct {
	Name            string  `json:"name"`
	InitiatorType   string  `json:"initiatorType"`
	TransferSize    int64   `json:"transferSize"`
	DecodedBodySize int64   `json:"decodedBodySize"`
	Duration        float64 `json:"duration"`
}

// memoryCacheDurationThresholdMs is the duration below which a
// zero-transfer, nonzero-decoded resource is classified as served from
// the in-memory HTTP cache rather than disk (§4.4).
const memoryCacheDurationThresholdMs = 1.0

// Resources evaluates the resource-timing probe and reduces the raw
// entries into the aggregated ResourceData shape (§4.4).
func Resources(ctx context.Context, tab browser.Tab) (types.ResourceData, error) {
	raw, err := tab.Eval(ctx, resourceScript)
	if err != nil {
		return types.ResourceData{}, werr.Wrap(werr.CodeCDPError, "resource probe failed", err)
	}
	var entries []resourceEntryWire
	if err := json.Unmarshal(raw, &entries); err != nil {
		return types.ResourceData{}, werr.Wrap(werr.CodeCDPError, "resource probe returned invalid JSON", err)
	}

	data := types.ResourceData{ByType: make(map[types.ResourceType]types.ResourceTypeTotals)}
	seenDocument := false
	for _, e := range entries {
		rt := ClassifyResourceType(e.Name, e.InitiatorType)
		if rt == types.ResourceDocument {
			if seenDocument {
				continue
			}
			seenDocument = true
		}

		data.TotalCount++
		data.TotalTransfer += e.TransferSize
		if ClassifyCacheStatus(e.TransferSize, e.DecodedBodySize, e.Duration) != types.CacheNetwork {
			data.FromCache++
		}

		totals := data.ByType[rt]
		totals.Count++
		totals.Transfer += e.TransferSize
		totals.Decoded += e.DecodedBodySize
		data.ByType[rt] = totals
	}
	return data, nil
}

// ClassifyResourceType determines a resource's type from its URL
// extension and the initiator type the browser reports (§4.4).
func ClassifyResourceType(name, initiatorType string) types.ResourceType {
	if initiatorType == "navigation" {
		return types.ResourceDocument
	}

	ext := strings.ToLower(path.Ext(strings.SplitN(name, "?", 2)[0]))
	switch ext {
	case ".js", ".mjs", ".cjs":
		return types.ResourceScript
	case ".css":
		return types.ResourceStylesheet
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".avif", ".ico":
		return types.ResourceImage
	case ".woff", ".woff2", ".ttf", ".otf", ".eot":
		return types.ResourceFont
	}

	switch initiatorType {
	case "script":
		return types.ResourceScript
	case "css", "link":
		return types.ResourceStylesheet
	case "img", "image":
		return types.ResourceImage
	case "fetch", "xmlhttprequest":
		return types.ResourceFetch
	}
	return types.ResourceOther
}

// ClassifyCacheStatus infers whether a resource was served from the
// in-memory cache, disk cache, or network (§4.4).
func ClassifyCacheStatus(transferSize, decodedBodySize int64, duration float64) types.CacheStatus {
	if transferSize == 0 && decodedBodySize > 0 {
		if duration < memoryCacheDurationThresholdMs {
			return types.CacheMemory
		}
		return types.CacheDisk
	}
	return types.CacheNetwork
}
