package browser

import (
	"context"
	"encoding/json"

	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// cdpControlChannel implements ControlChannel over the Performance and
// Network devtools domains (§4.3).
type cdpControlChannel struct {
	conn *conn
}

func (c *cdpControlChannel) EnablePerformanceMetrics(ctx context.Context) error {
	if _, err := c.conn.call(ctx, "Performance.enable", nil); err != nil {
		return werr.Wrap(werr.CodeCDPError, "enable performance domain", err)
	}
	return nil
}

func (c *cdpControlChannel) EmulateNetwork(ctx context.Context, network types.NetworkConfig) error {
	_, err := c.conn.call(ctx, "Network.emulateNetworkConditions", map[string]any{
		"offline":            false,
		"latency":            network.Latency,
		"downloadThroughput": network.DownloadThroughput,
		"uploadThroughput":   network.UploadThroughput,
	})
	if err != nil {
		return werr.Wrap(werr.CodeCDPError, "emulate network conditions", err)
	}
	return nil
}

func (c *cdpControlChannel) ClearCache(ctx context.Context) error {
	if _, err := c.conn.call(ctx, "Network.clearBrowserCache", nil); err != nil {
		return werr.Wrap(werr.CodeCDPError, "clear browser cache", err)
	}
	return nil
}

type performanceMetric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type getMetricsResult struct {
	Metrics []performanceMetric `json:"metrics"`
}

// HeapUsage reads the JSHeapUsedSize metric from Performance.getMetrics
// (§4.3, §4.5 step 6).
func (c *cdpControlChannel) HeapUsage(ctx context.Context) (int64, error) {
	raw, err := c.conn.call(ctx, "Performance.getMetrics", nil)
	if err != nil {
		return 0, werr.Wrap(werr.CodeCDPError, "get performance metrics", err)
	}
	var result getMetricsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return 0, werr.Wrap(werr.CodeCDPError, "decode performance metrics", err)
	}
	for _, m := range result.Metrics {
		if m.Name == "JSHeapUsedSize" {
			return int64(m.Value), nil
		}
	}
	return 0, nil
}
