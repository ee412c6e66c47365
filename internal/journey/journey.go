// Package journey implements the multi-step journey runner (§4.8): a
// user-authored sequence of named steps executed against one
// persistent page, with per-step capture and per-run cumulative
// aggregation across M repetitions.
package journey

import (
	"context"
	"time"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/navigation"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// StepFunc is the body of one journey step. It receives the page the
// whole repetition shares and a capture scope bound to this step only.
type StepFunc func(ctx context.Context, page browser.Tab, capture *CaptureScope) error

// Definition is the external journey-definition interface (§6): a
// named, described step sequence expressed entirely through Run.
type Definition struct {
	Name        string
	Description string
	Run         func(ctx *Context) error
}

// Validate checks the fields the runner contracts on (§6): a
// definition missing any of these is UNKNOWN_FORMAT, not a runtime
// failure.
func (d Definition) Validate() error {
	if d.Name == "" || d.Run == nil {
		return werr.New(werr.CodeUnknownFormat, "journey definition requires name and run")
	}
	return nil
}

// Context is the sole means by which a Definition's Run expresses its
// steps (§4.8, §6). Step runs fn immediately against a fresh
// CaptureScope and appends the resulting record to the repetition.
type Context struct {
	ctx     context.Context
	page    browser.Tab
	tracker *navigation.Tracker
	steps   []types.StepRecord
}

// Step registers and immediately executes fn as a named step: it binds
// a fresh StepCaptureData and CaptureScope, times the call, finalizes
// the navigation tracker, and records the step (§4.8 step 3).
func (c *Context) Step(name string, fn StepFunc) error {
	capture := newCaptureScope(c.ctx, c.page, c.tracker)
	start := time.Now()
	err := fn(c.ctx, c.page, capture)
	end := time.Now()
	if ferr := c.tracker.FinalizeStep(c.ctx, c.page); ferr != nil && err == nil {
		err = ferr
	}
	c.steps = append(c.steps, types.StepRecord{
		Name:      name,
		StartTime: start,
		EndTime:   end,
		Data:      *capture.data,
	})
	if err != nil {
		return werr.Wrap(werr.CodeNavigationFailed, "journey step \""+name+"\" failed", err)
	}
	return nil
}
