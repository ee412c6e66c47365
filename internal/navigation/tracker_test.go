package navigation

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/types"
)

// scriptedTab replays a fixed sequence of navigation-timing readings,
// one per Eval call, so the tracker can be driven deterministically.
type scriptedTab struct {
	readings []types.NavTiming
	idx      int
}

func (s *scriptedTab) Eval(_ context.Context, _ string) (json.RawMessage, error) {
	r := s.readings[s.idx]
	s.idx++
	wire := struct {
		URL          string  `json:"url"`
		NavType      string  `json:"navType"`
		RequestStart float64 `json:"requestStart"`
		LoadEventEnd float64 `json:"loadEventEnd"`
		StartTime    float64 `json:"startTime"`
	}{string(r.URL), string(r.NavType), r.RequestStart, r.LoadEventEnd, r.StartTime}
	return json.Marshal(wire)
}
func (s *scriptedTab) Goto(context.Context, string, browser.WaitCondition) error { return nil }
func (s *scriptedTab) WaitForSelector(context.Context, string, time.Duration) error {
	return nil
}
func (s *scriptedTab) Click(context.Context, string) error                { return nil }
func (s *scriptedTab) InjectOnNewDocument(context.Context, string) error { return nil }
func (s *scriptedTab) Control(context.Context) (browser.ControlChannel, error) {
	return nil, nil
}
func (s *scriptedTab) Close(context.Context) error { return nil }

func timing(url string, navType types.NavType, requestStart float64) types.NavTiming {
	return types.NavTiming{URL: url, NavType: navType, RequestStart: requestStart, LoadEventEnd: requestStart + 500, StartTime: requestStart}
}

// S1 — Navigation tracker sequence (spec §8).
func TestTracker_S1Sequence(t *testing.T) {
	tab := &scriptedTab{readings: []types.NavTiming{
		timing("/", types.NavTypeNavigate, 100),
		timing("/products", types.NavTypeNavigate, 100),
		timing("/products/1", types.NavTypeNavigate, 100),
		timing("/products/1", types.NavTypeNavigate, 100),
	}}
	tr := NewTracker()
	var got []types.TransitionType
	for range tab.readings {
		nav, err := tr.CaptureAndClassify(context.Background(), tab)
		if err != nil {
			t.Fatalf("CaptureAndClassify: %v", err)
		}
		got = append(got, nav.Type)
		if err := tr.FinalizeStep(context.Background(), tab); err != nil {
			t.Fatalf("FinalizeStep: %v", err)
		}
	}
	want := []types.TransitionType{types.TransitionInitial, types.TransitionSoft, types.TransitionSoft, types.TransitionNone}
	assertTypes(t, got, want)
}

// S2 — Hard navigation then soft (spec §8).
func TestTracker_S2HardThenSoft(t *testing.T) {
	tab := &scriptedTab{readings: []types.NavTiming{
		timing("/", types.NavTypeNavigate, 100),
		timing("/checkout", types.NavTypeNavigate, 800),
		timing("/checkout/confirm", types.NavTypeNavigate, 800),
	}}
	tr := NewTracker()
	var got []types.TransitionType
	for range tab.readings {
		nav, err := tr.CaptureAndClassify(context.Background(), tab)
		if err != nil {
			t.Fatalf("CaptureAndClassify: %v", err)
		}
		got = append(got, nav.Type)
		if err := tr.FinalizeStep(context.Background(), tab); err != nil {
			t.Fatalf("FinalizeStep: %v", err)
		}
	}
	want := []types.TransitionType{types.TransitionInitial, types.TransitionHard, types.TransitionSoft}
	assertTypes(t, got, want)
}

// S3 — Finalize-without-capture (spec §8): step 2 never calls capture;
// step 3's classification must compare against step 2's URL, not
// step 1's.
func TestTracker_S3FinalizeWithoutCapture(t *testing.T) {
	tab := &scriptedTab{readings: []types.NavTiming{
		timing("/", types.NavTypeNavigate, 100),          // step 1 capture
		timing("/products", types.NavTypeNavigate, 100),  // step 2 finalize only (no capture call)
		timing("/products/1", types.NavTypeNavigate, 100), // step 3 capture
	}}
	tr := NewTracker()

	nav1, err := tr.CaptureAndClassify(context.Background(), tab)
	if err != nil {
		t.Fatalf("step1 CaptureAndClassify: %v", err)
	}
	if nav1.Type != types.TransitionInitial {
		t.Errorf("step1 type = %v, want initial", nav1.Type)
	}
	if err := tr.FinalizeStep(context.Background(), tab); err != nil {
		t.Fatalf("step1 FinalizeStep: %v", err)
	}

	// Step 2: no capture call, finalize reads the timing itself.
	if err := tr.FinalizeStep(context.Background(), tab); err != nil {
		t.Fatalf("step2 FinalizeStep: %v", err)
	}

	nav3, err := tr.CaptureAndClassify(context.Background(), tab)
	if err != nil {
		t.Fatalf("step3 CaptureAndClassify: %v", err)
	}
	if nav3.Type != types.TransitionSoft {
		t.Errorf("step3 type = %v, want soft (classified against /products, not /)", nav3.Type)
	}
	if err := tr.FinalizeStep(context.Background(), tab); err != nil {
		t.Fatalf("step3 FinalizeStep: %v", err)
	}
}

// Invariant 4: the first CaptureAndClassify of a tracker always
// returns type=initial.
func TestTracker_FirstCaptureIsAlwaysInitial(t *testing.T) {
	for _, url := range []string{"/", "/anything", "/deep/path"} {
		tab := &scriptedTab{readings: []types.NavTiming{timing(url, types.NavTypeNavigate, 0)}}
		tr := NewTracker()
		nav, err := tr.CaptureAndClassify(context.Background(), tab)
		if err != nil {
			t.Fatalf("CaptureAndClassify: %v", err)
		}
		if nav.Type != types.TransitionInitial {
			t.Errorf("first capture for %q = %v, want initial", url, nav.Type)
		}
	}
}

func TestTracker_BackForwardAndReloadTriggers(t *testing.T) {
	tab := &scriptedTab{readings: []types.NavTiming{
		timing("/", types.NavTypeNavigate, 100),
		timing("/other", types.NavTypeBackForward, 900),
	}}
	tr := NewTracker()
	if _, err := tr.CaptureAndClassify(context.Background(), tab); err != nil {
		t.Fatal(err)
	}
	_ = tr.FinalizeStep(context.Background(), tab)
	nav, err := tr.CaptureAndClassify(context.Background(), tab)
	if err != nil {
		t.Fatal(err)
	}
	if nav.Type != types.TransitionHard || nav.Trigger != types.TriggerBackForward {
		t.Errorf("got %+v, want hard/back-forward", nav)
	}
}

func assertTypes(t *testing.T, got, want []types.TransitionType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d: got %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}
