package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// fakeTab and fakeControl let Run's orchestration be tested without a
// real browser: Eval dispatches on a script-prefix match so each probe
// gets a plausible canned reply.
type fakeTab struct {
	evalResponses map[string]string
	evalErr       error
	gotoErr       error
	injectedCount int
	controlErr    error
	control       *fakeControl
}

func (f *fakeTab) Eval(_ context.Context, expr string) (json.RawMessage, error) {
	if f.evalErr != nil {
		return nil, f.evalErr
	}
	for prefix, resp := range f.evalResponses {
		if len(expr) >= len(prefix) && expr[:len(prefix)] == prefix {
			return json.RawMessage(resp), nil
		}
	}
	return json.RawMessage(`{}`), nil
}
func (f *fakeTab) Goto(_ context.Context, _ string, _ browser.WaitCondition) error { return f.gotoErr }
func (f *fakeTab) WaitForSelector(_ context.Context, _ string, _ time.Duration) error {
	return nil
}
func (f *fakeTab) Click(_ context.Context, _ string) error { return nil }
func (f *fakeTab) InjectOnNewDocument(_ context.Context, _ string) error {
	f.injectedCount++
	return nil
}
func (f *fakeTab) Control(_ context.Context) (browser.ControlChannel, error) {
	if f.controlErr != nil {
		return nil, f.controlErr
	}
	if f.control != nil {
		return f.control, nil
	}
	return &fakeControl{}, nil
}
func (f *fakeTab) Close(_ context.Context) error { return nil }

type fakeControl struct {
	emulateCalled bool
	clearCalled   bool
}

func (c *fakeControl) EnablePerformanceMetrics(_ context.Context) error { return nil }
func (c *fakeControl) EmulateNetwork(_ context.Context, _ types.NetworkConfig) error {
	c.emulateCalled = true
	return nil
}
func (c *fakeControl) ClearCache(_ context.Context) error {
	c.clearCalled = true
	return nil
}
func (c *fakeControl) HeapUsage(_ context.Context) (int64, error) { return 4096, nil }

func newFakeTabResponses() map[string]string {
	return map[string]string{
		"(() => new Promise":       `{"lcp":1200,"fcp":800,"cls":0.05,"ttfb":100}`,
		"(() => {\n  const entries": `[]`,
	}
}

func TestRun_HappyPath(t *testing.T) {
	tab := &fakeTab{evalResponses: newFakeTabResponses()}
	record, err := Run(context.Background(), tab, RunOptions{URL: "https://example.com", Device: types.DefaultDevice()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if record.CWV.LCP == nil || *record.CWV.LCP != 1200 {
		t.Errorf("CWV.LCP = %v, want 1200", record.CWV.LCP)
	}
	if tab.injectedCount != 1 {
		t.Errorf("InjectOnNewDocument called %d times, want 1", tab.injectedCount)
	}
}

func TestRun_NavigationFailureShortCircuits(t *testing.T) {
	tab := &fakeTab{evalResponses: newFakeTabResponses(), gotoErr: werr.New(werr.CodeNavigationFailed, "boom")}
	_, err := Run(context.Background(), tab, RunOptions{URL: "https://example.com", Device: types.DefaultDevice()})
	if !werr.Is(err, werr.CodeNavigationFailed) {
		t.Errorf("error = %v, want navigation_failed", err)
	}
}

func TestRun_ProbeFailureShortCircuits(t *testing.T) {
	tab := &fakeTab{evalErr: werr.New(werr.CodeCDPError, "socket closed")}
	_, err := Run(context.Background(), tab, RunOptions{URL: "https://example.com", Device: types.DefaultDevice()})
	if !werr.Is(err, werr.CodeCDPError) {
		t.Errorf("error = %v, want cdp_error", err)
	}
}

func TestRun_NetworkEmulationAppliedWhenConfigured(t *testing.T) {
	control := &fakeControl{}
	tab := &fakeTab{evalResponses: newFakeTabResponses(), control: control}
	network := types.NetworkConfig{DownloadThroughput: 1000, Latency: 40}
	_, err := Run(context.Background(), tab, RunOptions{
		URL:     "https://example.com",
		Device:  types.DefaultDevice(),
		Network: &network,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !control.emulateCalled {
		t.Errorf("EmulateNetwork was not called although a network config was given")
	}
}
