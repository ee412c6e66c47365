package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/devdumpling/traverse-sub000/internal/types"
	"github.com/devdumpling/traverse-sub000/internal/werr"
)

// cdpMessage is a Chrome DevTools Protocol JSON-RPC-shaped message.
// Outbound requests set ID/Method/Params; inbound responses correlate
// back to a pending request by ID, and events (no ID, just Method)
// are dispatched to any registered listener.
type cdpMessage struct {
	ID     int64            `json:"id,omitempty"`
	Method string           `json:"method,omitempty"`
	Params json.RawMessage  `json:"params,omitempty"`
	Result json.RawMessage  `json:"result,omitempty"`
	Error  *cdpMessageError `json:"error,omitempty"`
}

type cdpMessageError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// conn is a single devtools websocket connection shared by every
// domain call a Tab/ControlChannel makes. It owns request-ID
// correlation so concurrent Eval/Control calls never cross streams.
type conn struct {
	ws     *websocket.Conn
	nextID int64

	mu      sync.Mutex
	pending map[int64]chan cdpMessage

	readErr atomic.Value // error
}

func dial(ctx context.Context, wsURL string) (*conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	ws, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, werr.Wrap(werr.CodeLaunchFailed, "dial devtools websocket", err)
	}
	c := &conn{ws: ws, pending: make(map[int64]chan cdpMessage)}
	go c.readLoop()
	return c, nil
}

func (c *conn) readLoop() {
	for {
		var msg cdpMessage
		if err := c.ws.ReadJSON(&msg); err != nil {
			c.readErr.Store(err)
			c.failAllPending(err)
			return
		}
		if msg.ID != 0 {
			c.mu.Lock()
			ch, ok := c.pending[msg.ID]
			if ok {
				delete(c.pending, msg.ID)
			}
			c.mu.Unlock()
			if ok {
				ch <- msg
			}
		}
		// Events (no ID) carry no reply target in this core; probes
		// are evaluated request/response-style, so events are simply
		// not routed anywhere. A future extension point.
	}
}

func (c *conn) failAllPending(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, ch := range c.pending {
		ch <- cdpMessage{ID: id, Error: &cdpMessageError{Message: err.Error()}}
		delete(c.pending, id)
	}
}

// call sends a CDP method call and blocks for its correlated response.
func (c *conn) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := atomic.AddInt64(&c.nextID, 1)
	var raw json.RawMessage
	if params != nil {
		encoded, err := json.Marshal(params)
		if err != nil {
			return nil, werr.Wrap(werr.CodeCDPError, "encode params", err)
		}
		raw = encoded
	}

	replyCh := make(chan cdpMessage, 1)
	c.mu.Lock()
	c.pending[id] = replyCh
	c.mu.Unlock()

	if err := c.ws.WriteJSON(cdpMessage{ID: id, Method: method, Params: raw}); err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, werr.Wrap(werr.CodeCDPError, fmt.Sprintf("write %s", method), err)
	}

	select {
	case reply := <-replyCh:
		if reply.Error != nil {
			return nil, werr.New(werr.CodeCDPError, fmt.Sprintf("%s: %s", method, reply.Error.Message))
		}
		return reply.Result, nil
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, werr.Wrap(werr.CodeTimeout, fmt.Sprintf("%s timed out", method), ctx.Err())
	}
}

func (c *conn) close() error {
	return c.ws.Close()
}

// CDPDriver launches tabs against a running Chrome/Chromium instance's
// remote-debugging endpoint (e.g. started with --headless
// --remote-debugging-port=9222). It owns no subprocess itself: the
// headless binary is expected to already be running at Endpoint.
type CDPDriver struct {
	// Endpoint is the browser's HTTP remote-debugging root, e.g.
	// "http://127.0.0.1:9222".
	Endpoint string
	client   *http.Client
}

type versionInfo struct {
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// browserConn dials the browser-level devtools websocket (distinct
// from any tab's) for whole-process calls like Browser.close.
func (d *CDPDriver) browserConn(ctx context.Context) (*conn, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.Endpoint+"/json/version", nil)
	if err != nil {
		return nil, werr.Wrap(werr.CodeLaunchFailed, "build version request", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, werr.Wrap(werr.CodeLaunchFailed, "fetch browser version", err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, werr.Wrap(werr.CodeLaunchFailed, "read version response", err)
	}
	var v versionInfo
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, werr.Wrap(werr.CodeLaunchFailed, "parse version response", err)
	}
	return dial(ctx, v.WebSocketDebuggerURL)
}

// NewCDPDriver constructs a driver against a remote-debugging endpoint.
func NewCDPDriver(endpoint string) *CDPDriver {
	return &CDPDriver{Endpoint: strings.TrimRight(endpoint, "/"), client: &http.Client{Timeout: 10 * time.Second}}
}

type newTabTarget struct {
	ID                   string `json:"id"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// NewTab opens a fresh target via the /json/new HTTP endpoint and dials
// its devtools websocket.
func (d *CDPDriver) NewTab(ctx context.Context, device types.DeviceConfig) (Tab, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, d.Endpoint+"/json/new?about:blank", nil)
	if err != nil {
		return nil, werr.Wrap(werr.CodeLaunchFailed, "build new-tab request", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, werr.Wrap(werr.CodeLaunchFailed, "open new tab", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, werr.Wrap(werr.CodeLaunchFailed, "read new-tab response", err)
	}
	var target newTabTarget
	if err := json.Unmarshal(body, &target); err != nil {
		return nil, werr.Wrap(werr.CodeLaunchFailed, "parse new-tab response", err)
	}

	c, err := dial(ctx, target.WebSocketDebuggerURL)
	if err != nil {
		return nil, err
	}

	tab := &cdpTab{conn: c, targetID: target.ID}
	if err := tab.configureDevice(ctx, device); err != nil {
		_ = c.close()
		return nil, err
	}
	return tab, nil
}

// Close sends Browser.close over the browser-level devtools websocket,
// terminating the whole headless process (§4.3: "Launch a headless
// browser; close it" is a single capability pair on the adapter).
func (d *CDPDriver) Close(ctx context.Context) error {
	defer d.client.CloseIdleConnections()

	c, err := d.browserConn(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = c.close() }()

	_, err = c.call(ctx, "Browser.close", nil)
	return err
}
