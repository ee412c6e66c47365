package engine

import (
	"context"
	"testing"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

type fakeDriver struct {
	tabsOpened int
	closed     bool
	failOnTab  int // 1-indexed; 0 means never fail
}

func (d *fakeDriver) NewTab(_ context.Context, _ types.DeviceConfig) (browser.Tab, error) {
	d.tabsOpened++
	if d.failOnTab != 0 && d.tabsOpened == d.failOnTab {
		return nil, werr.New(werr.CodeLaunchFailed, "simulated tab failure")
	}
	return &fakeTab{evalResponses: newFakeTabResponses()}, nil
}

func (d *fakeDriver) Close(_ context.Context) error {
	d.closed = true
	return nil
}

func TestBenchmark_RunsNTimes(t *testing.T) {
	driver := &fakeDriver{}
	bench, err := Benchmark(context.Background(), driver, BenchmarkOptions{
		URL: "https://example.com", Runs: 3, Device: types.DefaultDevice(),
	})
	if err != nil {
		t.Fatalf("Benchmark() error = %v", err)
	}
	if driver.tabsOpened != 3 {
		t.Errorf("tabsOpened = %d, want 3", driver.tabsOpened)
	}
	if len(bench.Runs) != 3 {
		t.Errorf("len(Runs) = %d, want 3", len(bench.Runs))
	}
}

func TestBenchmark_FailureClosesBrowserAndPropagates(t *testing.T) {
	driver := &fakeDriver{failOnTab: 2}
	_, err := Benchmark(context.Background(), driver, BenchmarkOptions{
		URL: "https://example.com", Runs: 3, Device: types.DefaultDevice(),
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !driver.closed {
		t.Errorf("driver should be closed on run failure")
	}
}

func TestBenchmark_RejectsZeroRuns(t *testing.T) {
	driver := &fakeDriver{}
	_, err := Benchmark(context.Background(), driver, BenchmarkOptions{URL: "https://example.com", Runs: 0})
	if !werr.Is(err, werr.CodeInvalidRunCount) {
		t.Errorf("error = %v, want invalid_run_count", err)
	}
}
