// Package bridge hosts the WebSocket endpoint the companion browser
// extension connects to, and exposes the window/tab command surface the
// rest of the program consumes through the Host interface. One extension
// connection is active at a time; a newer connection replaces the old one.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/atomicstack/tab-merge-control/internal/logging"
	"github.com/atomicstack/tab-merge-control/internal/logging/events"
)

// ErrNotConnected is returned for commands issued while no extension is
// attached to the bridge.
var ErrNotConnected = errors.New("bridge: extension not connected")

var upgrader = websocket.Upgrader{
	// The extension connects from a browser origin; the bridge binds to
	// loopback, so origin filtering adds nothing here.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Server accepts the extension connection and correlates JSON
// request/response frames by id. It implements Host.
type Server struct {
	listener net.Listener
	httpSrv  *http.Server

	mu      sync.Mutex
	conn    *websocket.Conn
	writeMu sync.Mutex

	nextID  atomic.Int64
	pending map[int64]chan frame

	notifications chan Notification

	controlMu     sync.Mutex
	controlWindow int
	controlKnown  bool
}

// NewServer constructs an unstarted bridge server.
func NewServer() *Server {
	return &Server{
		pending:       make(map[int64]chan frame),
		notifications: make(chan Notification, 16),
	}
}

// Listen binds the bridge to addr and serves the extension endpoint in the
// background. The returned address is the concrete bound address (useful
// when addr requested port 0).
func (s *Server) Listen(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("bridge listen: %w", err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/bridge", s.handleUpgrade)
	s.listener = ln
	s.httpSrv = &http.Server{Handler: mux}
	go func() {
		if serr := s.httpSrv.Serve(ln); serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			logging.Error(serr)
		}
	}()
	events.App.BridgeListen(ln.Addr().String())
	return ln.Addr().String(), nil
}

// Close tears down the listener and any active extension connection.
func (s *Server) Close() error {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
	if s.httpSrv != nil {
		return s.httpSrv.Close()
	}
	return nil
}

// Notifications returns the stream of host change events. The channel is
// never closed; consumers stop reading when they shut down.
func (s *Server) Notifications() <-chan Notification {
	return s.notifications
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error(err)
		return
	}
	s.mu.Lock()
	old := s.conn
	s.conn = conn
	s.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	events.App.BridgeAttach(conn.RemoteAddr().String())
	go s.readLoop(conn)
}

func (s *Server) readLoop(conn *websocket.Conn) {
	var readErr error
	for {
		var f frame
		if readErr = conn.ReadJSON(&f); readErr != nil {
			break
		}
		switch {
		case f.Event != "":
			select {
			case s.notifications <- Notification(f.Event):
			default:
				// A full channel means a refetch is already due;
				// dropping the extra notification loses nothing.
			}
		case f.ID != 0:
			s.resolve(f)
		}
	}
	events.App.BridgeDetach(conn.RemoteAddr().String(), readErr)
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
	s.failPending(ErrNotConnected)
}

func (s *Server) resolve(f frame) {
	s.mu.Lock()
	ch, ok := s.pending[f.ID]
	if ok {
		delete(s.pending, f.ID)
	}
	s.mu.Unlock()
	if !ok {
		// Response for a request we no longer remember; drop it.
		return
	}
	ch <- f
}

func (s *Server) failPending(err error) {
	falseVal := false
	s.mu.Lock()
	waiting := s.pending
	s.pending = make(map[int64]chan frame)
	s.mu.Unlock()
	for _, ch := range waiting {
		ch <- frame{OK: &falseVal, Error: err.Error()}
	}
}

// call issues one request and decodes the result into out (when non-nil).
func (s *Server) call(ctx context.Context, method string, params interface{}, out interface{}) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	id := s.nextID.Add(1)
	ch := make(chan frame, 1)
	s.mu.Lock()
	s.pending[id] = ch
	s.mu.Unlock()

	req := frame{ID: id, Method: method, Params: params}
	s.writeMu.Lock()
	err := conn.WriteJSON(req)
	s.writeMu.Unlock()
	if err != nil {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
		return fmt.Errorf("bridge %s: %w", method, err)
	}

	select {
	case <-ctx.Done():
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
		return ctx.Err()
	case resp := <-ch:
		if resp.OK == nil || !*resp.OK {
			msg := resp.Error
			if msg == "" {
				msg = "unknown error"
			}
			return fmt.Errorf("bridge %s: %s", method, msg)
		}
		if out == nil || len(resp.Result) == 0 {
			return nil
		}
		if err := json.Unmarshal(resp.Result, out); err != nil {
			return fmt.Errorf("bridge %s: decode result: %w", method, err)
		}
		return nil
	}
}

// ListWindows implements Host.
func (s *Server) ListWindows(ctx context.Context) ([]Window, error) {
	var res listWindowsResult
	if err := s.call(ctx, methodListWindows, nil, &res); err != nil {
		return nil, err
	}
	return res.Windows, nil
}

// CreateWindow implements Host.
func (s *Server) CreateWindow(ctx context.Context, seedTabID int) (int, error) {
	var res createWindowResult
	err := s.call(ctx, methodCreateWindow, createWindowParams{SeedTabID: seedTabID}, &res)
	if err != nil {
		return 0, err
	}
	events.Window.Create(seedTabID, res.WindowID)
	return res.WindowID, nil
}

// MoveTabs implements Host. Tabs are always appended at the end of the
// destination window, preserving the given order.
func (s *Server) MoveTabs(ctx context.Context, tabIDs []int, windowID int) error {
	if len(tabIDs) == 0 {
		return nil
	}
	events.Tab.Move(tabIDs, windowID)
	return s.call(ctx, methodMoveTabs, moveTabsParams{TabIDs: tabIDs, WindowID: windowID, Position: "end"}, nil)
}

// FocusWindow implements Host.
func (s *Server) FocusWindow(ctx context.Context, windowID int) error {
	events.Window.Focus(windowID)
	return s.call(ctx, methodFocusWindow, focusWindowParams{WindowID: windowID}, nil)
}

// CloseTab implements Host.
func (s *Server) CloseTab(ctx context.Context, tabID int) error {
	events.Tab.Close(tabID)
	return s.call(ctx, methodCloseTab, closeTabParams{TabID: tabID}, nil)
}

// LocateControlWindow implements Host. The last successful answer is cached
// and returned when the lookup fails, so window-targeted actions keep
// working if the user drags the control page into another window and the
// extension briefly cannot resolve it.
func (s *Server) LocateControlWindow(ctx context.Context) (int, error) {
	var res locateControlResult
	if err := s.call(ctx, methodLocateControl, nil, &res); err != nil {
		s.controlMu.Lock()
		known, id := s.controlKnown, s.controlWindow
		s.controlMu.Unlock()
		if known {
			return id, nil
		}
		return 0, err
	}
	s.controlMu.Lock()
	s.controlWindow = res.WindowID
	s.controlKnown = true
	s.controlMu.Unlock()
	return res.WindowID, nil
}
