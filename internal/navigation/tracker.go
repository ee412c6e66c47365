// Package navigation implements the navigation-type classifier carried
// across the steps of one journey run (§4.7).
package navigation

import (
	"context"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/probes"
	"github.com/devdumpling/traverse-sub000/internal/types"
)

// Tracker classifies each journey step's navigation as initial / none /
// soft / hard by comparing URL and document-request timestamps across
// steps (§4.7). A Tracker is owned exclusively by one journey
// repetition and must not be shared across repetitions.
type Tracker struct {
	previousURL          string
	havePreviousURL      bool
	previousRequestStart float64
	stepIndex            int
	capturedThisStep     bool
}

// NewTracker returns a fresh tracker at step 0.
func NewTracker() *Tracker {
	return &Tracker{}
}

// CaptureAndClassify reads the current document's timing and classifies
// the transition since the last finalized step (§4.7).
func (t *Tracker) CaptureAndClassify(ctx context.Context, tab browser.Tab) (types.NavigationData, error) {
	timing, err := probes.NavTiming(ctx, tab)
	if err != nil {
		return types.NavigationData{}, err
	}
	t.capturedThisStep = true
	nav := t.classify(timing)
	t.previousURL = timing.URL
	t.havePreviousURL = true
	t.previousRequestStart = timing.RequestStart
	return nav, nil
}

// classify applies the §4.7 decision tree without mutating tracker
// state (state is updated by the caller/FinalizeStep, so classify can
// be called speculatively without side effects).
func (t *Tracker) classify(timing types.NavTiming) types.NavigationData {
	switch {
	case t.stepIndex == 0 || !t.havePreviousURL:
		return types.NavigationData{
			Type:     types.TransitionInitial,
			Trigger:  types.TriggerLink,
			Duration: timing.LoadEventEnd - timing.StartTime,
		}
	case timing.URL == t.previousURL:
		return types.NavigationData{Type: types.TransitionNone}
	case timing.RequestStart != t.previousRequestStart:
		return types.NavigationData{
			Type:     types.TransitionHard,
			Trigger:  triggerForNavType(timing.NavType),
			Duration: timing.LoadEventEnd - timing.StartTime,
		}
	default:
		return types.NavigationData{
			Type:    types.TransitionSoft,
			Trigger: types.TriggerProgrammatic,
		}
	}
}

func triggerForNavType(navType types.NavType) types.Trigger {
	switch navType {
	case types.NavTypeBackForward:
		return types.TriggerBackForward
	case types.NavTypeReload:
		return types.TriggerReload
	default:
		return types.TriggerLink
	}
}

// FinalizeStep must be invoked at the end of every step, even if the
// step never called CaptureAndClassify. If capture already ran this
// step, its values are reused; otherwise a fresh timing read updates
// the baseline, so the next step is classified against the latest
// state rather than an obsolete one (§4.7, §8 invariant 7).
func (t *Tracker) FinalizeStep(ctx context.Context, tab browser.Tab) error {
	if !t.capturedThisStep {
		timing, err := probes.NavTiming(ctx, tab)
		if err != nil {
			return err
		}
		t.previousURL = timing.URL
		t.havePreviousURL = true
		t.previousRequestStart = timing.RequestStart
	}
	t.capturedThisStep = false
	t.stepIndex++
	return nil
}
