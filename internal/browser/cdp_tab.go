package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// cdpTab is one devtools-protocol target. It owns the websocket
// connection for its whole lifetime; ControlChannel calls reuse the
// same conn rather than opening a second socket.
type cdpTab struct {
	conn     *conn
	targetID string
}

func (t *cdpTab) configureDevice(ctx context.Context, device types.DeviceConfig) error {
	_, err := t.conn.call(ctx, "Emulation.setDeviceMetricsOverride", map[string]any{
		"width":             device.Width,
		"height":            device.Height,
		"deviceScaleFactor": device.DeviceScaleFactor,
		"mobile":            device.IsMobile,
	})
	if err != nil {
		return werr.Wrap(werr.CodeCDPError, "set device metrics", err)
	}

	if _, err := t.conn.call(ctx, "Emulation.setTouchEmulationEnabled", map[string]any{
		"enabled": device.HasTouch,
	}); err != nil {
		return werr.Wrap(werr.CodeCDPError, "set touch emulation", err)
	}

	if device.UserAgent != "" {
		if _, err := t.conn.call(ctx, "Network.setUserAgentOverride", map[string]any{
			"userAgent": device.UserAgent,
		}); err != nil {
			return werr.Wrap(werr.CodeCDPError, "set user agent", err)
		}
	}
	return nil
}

type evalResult struct {
	Result struct {
		Value json.RawMessage `json:"value"`
	} `json:"result"`
	ExceptionDetails *struct {
		Text string `json:"text"`
	} `json:"exceptionDetails"`
}

// Eval runs expr via Runtime.evaluate with awaitPromise/returnByValue
// set, since every probe in this core resolves a Promise to plain JSON
// (§4.3, §4.4).
func (t *cdpTab) Eval(ctx context.Context, expr string) (json.RawMessage, error) {
	raw, err := t.conn.call(ctx, "Runtime.evaluate", map[string]any{
		"expression":    expr,
		"awaitPromise":  true,
		"returnByValue": true,
	})
	if err != nil {
		return nil, werr.Wrap(werr.CodeCDPError, "evaluate", err)
	}
	var result evalResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, werr.Wrap(werr.CodeCDPError, "decode evaluate result", err)
	}
	if result.ExceptionDetails != nil {
		return nil, werr.New(werr.CodeCDPError, "evaluate threw: "+result.ExceptionDetails.Text)
	}
	return result.Result.Value, nil
}

// Goto navigates to url and polls document.readyState until the
// requested condition holds, giving up after 30 seconds (§4.3, §4.5
// step 5). WaitNetworkIdle waits for readyState "complete" (the load
// event); requests still in flight after load are not tracked. WaitLoad
// also accepts readyState "interactive".
func (t *cdpTab) Goto(ctx context.Context, url string, wait WaitCondition) error {
	if _, err := t.conn.call(ctx, "Page.enable", nil); err != nil {
		return werr.Wrap(werr.CodeNavigationFailed, "enable page domain", err)
	}
	if _, err := t.conn.call(ctx, "Page.navigate", map[string]any{"url": url}); err != nil {
		return werr.Wrap(werr.CodeNavigationFailed, "navigate to "+url, err)
	}

	condition := readyStateForWait(wait)
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		raw, err := t.Eval(ctx, condition)
		if err == nil {
			var ready bool
			if json.Unmarshal(raw, &ready) == nil && ready {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return werr.Wrap(werr.CodeNavigationFailed, "navigation cancelled", ctx.Err())
		case <-time.After(50 * time.Millisecond):
		}
	}
	return werr.New(werr.CodeNavigationFailed, fmt.Sprintf("navigation to %s did not settle (%s)", url, wait))
}

func readyStateForWait(wait WaitCondition) string {
	switch wait {
	case WaitNetworkIdle:
		return `(() => document.readyState === "complete")()`
	default:
		return `(() => document.readyState === "complete" || document.readyState === "interactive")()`
	}
}

// WaitForSelector polls for selector's presence until timeout.
func (t *cdpTab) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	script := fmt.Sprintf(`(() => document.querySelector(%q) !== null)()`, selector)
	for time.Now().Before(deadline) {
		raw, err := t.Eval(ctx, script)
		if err == nil {
			var present bool
			if json.Unmarshal(raw, &present) == nil && present {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return werr.Wrap(werr.CodeTimeout, "wait for selector cancelled", ctx.Err())
		case <-time.After(50 * time.Millisecond):
		}
	}
	return werr.New(werr.CodeTimeout, "selector never appeared: "+selector)
}

// Click dispatches a click on the first element matching selector.
func (t *cdpTab) Click(ctx context.Context, selector string) error {
	script := fmt.Sprintf(`(() => {
  const el = document.querySelector(%q);
  if (!el) return false;
  el.click();
  return true;
})()`, selector)
	raw, err := t.Eval(ctx, script)
	if err != nil {
		return werr.Wrap(werr.CodeCDPError, "click "+selector, err)
	}
	var clicked bool
	if json.Unmarshal(raw, &clicked) != nil || !clicked {
		return werr.New(werr.CodeCDPError, "element not found for click: "+selector)
	}
	return nil
}

// InjectOnNewDocument registers script via
// Page.addScriptToEvaluateOnNewDocument so it runs before any page
// script of the next navigation (§4.3, §4.5 step 1).
func (t *cdpTab) InjectOnNewDocument(ctx context.Context, script string) error {
	if _, err := t.conn.call(ctx, "Page.addScriptToEvaluateOnNewDocument", map[string]any{
		"source": script,
	}); err != nil {
		return werr.Wrap(werr.CodeCDPError, "inject on-new-document script", err)
	}
	return nil
}

// Control returns a ControlChannel backed by this tab's own
// connection: the spec treats the control channel as a session scoped
// to one tab, not a second transport.
func (t *cdpTab) Control(_ context.Context) (ControlChannel, error) {
	return &cdpControlChannel{conn: t.conn}, nil
}

// Close closes the underlying devtools websocket for this tab.
func (t *cdpTab) Close(_ context.Context) error {
	return t.conn.close()
}
