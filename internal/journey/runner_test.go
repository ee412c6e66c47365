package journey

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

type fakeControl struct{ heap int64 }

func (c *fakeControl) EnablePerformanceMetrics(_ context.Context) error { return nil }
func (c *fakeControl) EmulateNetwork(_ context.Context, _ types.NetworkConfig) error {
	return nil
}
func (c *fakeControl) ClearCache(_ context.Context) error         { return nil }
func (c *fakeControl) HeapUsage(_ context.Context) (int64, error) { return c.heap, nil }

type fakeTab struct {
	navIdx     int
	navTimings []string
	heap       int64
}

func (f *fakeTab) Eval(_ context.Context, expr string) (json.RawMessage, error) {
	switch {
	case containsAny(expr, "requestStart"):
		t := f.navTimings[f.navIdx]
		if f.navIdx < len(f.navTimings)-1 {
			f.navIdx++
		}
		return json.RawMessage(t), nil
	case containsAny(expr, "lcp"):
		return json.RawMessage(`{"lcp":1000,"fcp":700,"cls":0.01,"ttfb":90}`), nil
	default:
		return json.RawMessage(`[]`), nil
	}
}
func containsAny(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
func (f *fakeTab) Goto(_ context.Context, _ string, _ browser.WaitCondition) error { return nil }
func (f *fakeTab) WaitForSelector(_ context.Context, _ string, _ time.Duration) error {
	return nil
}
func (f *fakeTab) Click(_ context.Context, _ string) error                { return nil }
func (f *fakeTab) InjectOnNewDocument(_ context.Context, _ string) error { return nil }
func (f *fakeTab) Control(_ context.Context) (browser.ControlChannel, error) {
	return &fakeControl{heap: f.heap}, nil
}
func (f *fakeTab) Close(_ context.Context) error { return nil }

type fakeDriver struct {
	opened int
	closed bool
}

func (d *fakeDriver) NewTab(_ context.Context, _ types.DeviceConfig) (browser.Tab, error) {
	d.opened++
	return &fakeTab{
		navTimings: []string{`{"url":"/","navType":"navigate","requestStart":100,"loadEventEnd":600,"startTime":100}`},
		heap:       1024 * int64(d.opened),
	}, nil
}
func (d *fakeDriver) Close(_ context.Context) error { d.closed = true; return nil }

func checkoutJourney() Definition {
	return Definition{
		Name:        "checkout",
		Description: "add to cart and check out",
		Run: func(ctx *Context) error {
			if err := ctx.Step("home", func(c context.Context, page browser.Tab, capture *CaptureScope) error {
				return capture.CWV()
			}); err != nil {
				return err
			}
			return ctx.Step("cart", func(c context.Context, page browser.Tab, capture *CaptureScope) error {
				if err := capture.Resources(); err != nil {
					return err
				}
				return capture.Memory()
			})
		},
	}
}

func TestRun_TwoRepetitionsTwoSteps(t *testing.T) {
	driver := &fakeDriver{}
	result, err := Run(context.Background(), driver, checkoutJourney(), RunOptions{
		BaseURL: "https://shop.example.com", Runs: 2, Device: types.DefaultDevice(),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if driver.opened != 2 {
		t.Errorf("opened = %d, want 2", driver.opened)
	}
	if len(result.Runs) != 2 {
		t.Fatalf("len(Runs) = %d, want 2", len(result.Runs))
	}
	if len(result.Steps) != 2 {
		t.Fatalf("len(Steps) = %d, want 2", len(result.Steps))
	}
	if result.Steps[0].Name != "home" || result.Steps[1].Name != "cart" {
		t.Errorf("step names = %q, %q", result.Steps[0].Name, result.Steps[1].Name)
	}
	if result.Steps[1].Memory == nil {
		t.Errorf("cart step should have a memory metric")
	}
	if result.Meta.Runs != 2 {
		t.Errorf("Meta.Runs = %d, want 2", result.Meta.Runs)
	}
}

func TestRun_RejectsZeroRuns(t *testing.T) {
	driver := &fakeDriver{}
	_, err := Run(context.Background(), driver, checkoutJourney(), RunOptions{BaseURL: "https://x", Runs: 0})
	if !werr.Is(err, werr.CodeInvalidJourney) {
		t.Errorf("error = %v, want invalid_journey", err)
	}
}

func TestRun_RejectsInvalidDefinition(t *testing.T) {
	driver := &fakeDriver{}
	_, err := Run(context.Background(), driver, Definition{}, RunOptions{BaseURL: "https://x", Runs: 1})
	if !werr.Is(err, werr.CodeUnknownFormat) {
		t.Errorf("error = %v, want unknown_format", err)
	}
}

func TestReduceCumulative_CacheHitRateZeroWhenNoResources(t *testing.T) {
	runs := [][]types.StepRecord{
		{{Name: "only", StartTime: fixedStart(), EndTime: fixedStart().Add(10 * time.Millisecond)}},
	}
	cum := reduceCumulative(runs)
	if cum.CacheHitRate.Median != 0 {
		t.Errorf("CacheHitRate.Median = %v, want 0", cum.CacheHitRate.Median)
	}
}

func fixedStart() time.Time {
	t, _ := time.Parse(time.RFC3339, "2026-01-01T00:00:00Z")
	return t
}
