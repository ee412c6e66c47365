package journey

import (
	"context"
	"time"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/navigation"
	"github.com/devdumpling/traverse-sub000/internal/probes"
	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// CaptureScope is the sole means by which journey step code records
// measurements (§4.8). A scope is bound to exactly one step and one
// page and must not be reused once the step function returns.
type CaptureScope struct {
	ctx     context.Context
	tab     browser.Tab
	tracker *navigation.Tracker
	control browser.ControlChannel

	data              *types.StepCaptureData
	interactionStart  time.Time
	interactionName   string
	interactionActive bool
}

func newCaptureScope(ctx context.Context, tab browser.Tab, tracker *navigation.Tracker) *CaptureScope {
	return &CaptureScope{ctx: ctx, tab: tab, tracker: tracker, data: &types.StepCaptureData{}}
}

// CWV records the Core Web Vitals reading for the current step.
func (c *CaptureScope) CWV() error {
	cwv, err := probes.CWV(c.ctx, c.tab)
	if err != nil {
		return err
	}
	c.data.CWV = &cwv
	return nil
}

// Resources records the resource-timing summary for the current step.
func (c *CaptureScope) Resources() error {
	r, err := probes.Resources(c.ctx, c.tab)
	if err != nil {
		return err
	}
	c.data.Resources = &r
	return nil
}

// Navigation classifies the navigation since the previous step using
// the repetition's shared tracker.
func (c *CaptureScope) Navigation() error {
	nav, err := c.tracker.CaptureAndClassify(c.ctx, c.tab)
	if err != nil {
		return err
	}
	c.data.Navigation = &nav
	return nil
}

// Memory lazily opens the control-channel session and records current
// JS heap usage (§4.8).
func (c *CaptureScope) Memory() error {
	if c.control == nil {
		control, err := c.tab.Control(c.ctx)
		if err != nil {
			return werr.Wrap(werr.CodeCDPError, "open control channel for memory capture", err)
		}
		c.control = control
	}
	heap, err := c.control.HeapUsage(c.ctx)
	if err != nil {
		return err
	}
	c.data.Memory = &heap
	return nil
}

// StartInteraction begins timing a named user interaction.
func (c *CaptureScope) StartInteraction(name string) {
	c.interactionName = name
	c.interactionStart = time.Now()
	c.interactionActive = true
}

// EndInteraction closes out the interaction started by StartInteraction
// and records its duration in milliseconds. A call with no matching
// StartInteraction is a no-op.
func (c *CaptureScope) EndInteraction() {
	if !c.interactionActive {
		return
	}
	duration := float64(time.Since(c.interactionStart).Microseconds()) / 1000
	c.data.Interaction = &types.InteractionData{Name: c.interactionName, Duration: duration}
	c.interactionActive = false
}

// Mark records an arbitrary named numeric measurement.
func (c *CaptureScope) Mark(name string, value float64) {
	if c.data.Custom == nil {
		c.data.Custom = make(map[string]float64)
	}
	c.data.Custom[name] = value
}
