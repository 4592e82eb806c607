package bridge

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startServer(t *testing.T) (*Server, string) {
	t.Helper()
	s := NewServer()
	addr, err := s.Listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, addr
}

// dialExtension connects like the companion extension and waits for the
// server to adopt the connection.
func dialExtension(t *testing.T, s *Server, addr string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/bridge", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	deadline := time.Now().Add(2 * time.Second)
	for {
		s.mu.Lock()
		attached := s.conn != nil
		s.mu.Unlock()
		if attached {
			return conn
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never adopted the connection")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// respondOnce reads one request frame and answers it.
func respondOnce(t *testing.T, conn *websocket.Conn, wantMethod string, result string, errMsg string) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var req frame
	if err := conn.ReadJSON(&req); err != nil {
		t.Errorf("read request: %v", err)
		return
	}
	if req.Method != wantMethod {
		t.Errorf("method = %q, want %q", req.Method, wantMethod)
	}
	ok := errMsg == ""
	resp := frame{ID: req.ID, OK: &ok, Error: errMsg}
	if result != "" {
		resp.Result = json.RawMessage(result)
	}
	if err := conn.WriteJSON(resp); err != nil {
		t.Errorf("write response: %v", err)
	}
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestCallWithoutConnection(t *testing.T) {
	s, _ := startServer(t)
	if _, err := s.ListWindows(testCtx(t)); err != ErrNotConnected {
		t.Fatalf("err = %v, want ErrNotConnected", err)
	}
}

func TestListWindowsRoundTrip(t *testing.T) {
	s, addr := startServer(t)
	conn := dialExtension(t, s, addr)

	go respondOnce(t, conn, "list-windows",
		`{"windows":[{"id":7,"focused":true,"tabs":[{"id":21,"windowId":7,"title":"docs","url":"https://docs.example.com","active":true}]}]}`, "")

	windows, err := s.ListWindows(testCtx(t))
	if err != nil {
		t.Fatalf("ListWindows: %v", err)
	}
	if len(windows) != 1 || windows[0].ID != 7 || !windows[0].Focused {
		t.Fatalf("windows = %+v", windows)
	}
	if len(windows[0].Tabs) != 1 || windows[0].Tabs[0].URL != "https://docs.example.com" {
		t.Fatalf("tabs = %+v", windows[0].Tabs)
	}
}

func TestCommandParamsOnTheWire(t *testing.T) {
	s, addr := startServer(t)
	conn := dialExtension(t, s, addr)

	done := make(chan frame, 1)
	go func() {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var req frame
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		done <- req
		ok := true
		_ = conn.WriteJSON(frame{ID: req.ID, OK: &ok})
	}()

	if err := s.MoveTabs(testCtx(t), []int{4, 5}, 9); err != nil {
		t.Fatalf("MoveTabs: %v", err)
	}
	req := <-done
	if req.Method != "move-tabs" {
		t.Fatalf("method = %q", req.Method)
	}
	raw, err := json.Marshal(req.Params)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	var params moveTabsParams
	if err := json.Unmarshal(raw, &params); err != nil {
		t.Fatalf("decode params: %v", err)
	}
	if len(params.TabIDs) != 2 || params.TabIDs[0] != 4 || params.WindowID != 9 {
		t.Fatalf("params = %+v", params)
	}
	if params.Position != "end" {
		t.Fatalf("position = %q, want end", params.Position)
	}
}

func TestMoveTabsNoopOnEmptyList(t *testing.T) {
	s, _ := startServer(t)
	// No connection required: an empty move never touches the wire.
	if err := s.MoveTabs(testCtx(t), nil, 9); err != nil {
		t.Fatalf("MoveTabs: %v", err)
	}
}

func TestErrorResponseSurfaces(t *testing.T) {
	s, addr := startServer(t)
	conn := dialExtension(t, s, addr)

	go respondOnce(t, conn, "close-tab", "", "no such tab")

	err := s.CloseTab(testCtx(t), 42)
	if err == nil || !strings.Contains(err.Error(), "no such tab") {
		t.Fatalf("err = %v, want the extension's message", err)
	}
}

func TestEventBecomesNotification(t *testing.T) {
	s, addr := startServer(t)
	conn := dialExtension(t, s, addr)

	if err := conn.WriteJSON(frame{Event: string(NotifyTabCreated)}); err != nil {
		t.Fatalf("write event: %v", err)
	}
	select {
	case n := <-s.Notifications():
		if n != NotifyTabCreated {
			t.Fatalf("notification = %q", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the notification")
	}
}

func TestLocateControlWindowCachesLastAnswer(t *testing.T) {
	s, addr := startServer(t)
	conn := dialExtension(t, s, addr)

	go respondOnce(t, conn, "locate-control-window", `{"windowId":5}`, "")
	id, err := s.LocateControlWindow(testCtx(t))
	if err != nil || id != 5 {
		t.Fatalf("first locate = %d, %v", id, err)
	}

	go respondOnce(t, conn, "locate-control-window", "", "control page not found")
	id, err = s.LocateControlWindow(testCtx(t))
	if err != nil {
		t.Fatalf("cached locate should not error: %v", err)
	}
	if id != 5 {
		t.Fatalf("cached locate = %d, want 5", id)
	}
}

func TestDisconnectFailsPendingCalls(t *testing.T) {
	s, addr := startServer(t)
	conn := dialExtension(t, s, addr)

	errs := make(chan error, 1)
	go func() {
		_, err := s.ListWindows(testCtx(t))
		errs <- err
	}()

	// Wait for the request to land, then drop the connection.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var req frame
	if err := conn.ReadJSON(&req); err != nil {
		t.Fatalf("read request: %v", err)
	}
	_ = conn.Close()

	select {
	case err := <-errs:
		if err == nil || !strings.Contains(err.Error(), "not connected") {
			t.Fatalf("err = %v, want a disconnect failure", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("pending call never failed")
	}
}

func TestCreateWindowDecodesResult(t *testing.T) {
	s, addr := startServer(t)
	conn := dialExtension(t, s, addr)

	go respondOnce(t, conn, "create-window", `{"windowId":12}`, "")
	id, err := s.CreateWindow(testCtx(t), 3)
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if id != 12 {
		t.Fatalf("id = %d, want 12", id)
	}
}
