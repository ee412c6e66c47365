// Package browser defines the capability surface the rest of the core
// depends on for driving a headless browser (§4.3), and provides a
// concrete implementation that speaks the Chrome DevTools Protocol over
// a websocket. This is the only package in the core that depends on an
// external browser-automation stack; everything downstream sees only
// the interfaces below.
package browser

import (
	"context"
	"encoding/json"
	"time"

	"github.com/devdumpling/traverse-sub000/internal/types"
)

// WaitCondition names the navigation-settle condition a caller asks
// Tab.Goto to wait for (§4.3).
type WaitCondition string

const (
	WaitLoad        WaitCondition = "load"
	WaitNetworkIdle WaitCondition = "networkidle"
)

// Driver opens tabs on a headless browser and shuts the browser down.
// It does not start the browser process.
type Driver interface {
	// NewTab opens a tab configured with the given device emulation.
	NewTab(ctx context.Context, device types.DeviceConfig) (Tab, error)
	// Close shuts down the browser and releases all of its tabs.
	Close(ctx context.Context) error
}

// Tab is one browser tab/page.
type Tab interface {
	// Eval runs a JSON-returning expression in the page context.
	Eval(ctx context.Context, expr string) (json.RawMessage, error)
	// Goto navigates to url and waits for the given condition.
	Goto(ctx context.Context, url string, wait WaitCondition) error
	// WaitForSelector blocks until selector appears in the DOM or the
	// context is cancelled.
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error
	// Click dispatches a click on the first element matching selector.
	Click(ctx context.Context, selector string) error
	// InjectOnNewDocument registers a script to run before any page
	// script of the next navigation (§4.3) — used to install the
	// long-task observer ahead of navigation.
	InjectOnNewDocument(ctx context.Context, script string) error
	// Control opens this tab's control channel.
	Control(ctx context.Context) (ControlChannel, error)
	// Close closes the tab.
	Close(ctx context.Context) error
}

// ControlChannel exposes the four capabilities the spec requires beyond
// plain navigation and evaluation (§4.3).
type ControlChannel interface {
	// EnablePerformanceMetrics turns on the performance domain so
	// HeapUsage and timing entries are available.
	EnablePerformanceMetrics(ctx context.Context) error
	// EmulateNetwork applies the given network shaping.
	EmulateNetwork(ctx context.Context, network types.NetworkConfig) error
	// ClearCache clears the browser's HTTP cache.
	ClearCache(ctx context.Context) error
	// HeapUsage returns the current JS heap usage in bytes.
	HeapUsage(ctx context.Context) (int64, error)
}
