package handler

import (
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// newStatusTestServer は短い配信間隔のステータスフィードをhttptestサーバーで起動します。
func newStatusTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	h := &StatusHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		start:    time.Now(),
		interval: 10 * time.Millisecond,
	}

	r := gin.New()
	r.GET("/ws/status", h.Status)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/status"
	return srv, wsURL
}

func TestStatusHandler_StreamsSnapshots(t *testing.T) {
	t.Parallel()

	_, wsURL := newStatusTestServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer func() { _ = conn.Close() }()
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Errorf("expected status %d, got %d", http.StatusSwitchingProtocols, resp.StatusCode)
	}

	// 最初のフレームは接続直後に届く
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var snap statusSnapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("failed to read first snapshot: %v", err)
	}

	if snap.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", snap.Status)
	}
	if snap.GoVersion != runtime.Version() {
		t.Errorf("expected go_version %q, got %q", runtime.Version(), snap.GoVersion)
	}
	if snap.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("expected platform %q, got %q", runtime.GOOS+"/"+runtime.GOARCH, snap.Platform)
	}
	if snap.UptimeSeconds < 0 {
		t.Errorf("expected non-negative uptime, got %f", snap.UptimeSeconds)
	}
	if _, err := time.Parse(time.RFC3339, snap.DatetimeUTC); err != nil {
		t.Errorf("datetime_utc %q is not RFC3339: %v", snap.DatetimeUTC, err)
	}
}

func TestStatusHandler_StreamsRepeatedly(t *testing.T) {
	t.Parallel()

	_, wsURL := newStatusTestServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer func() { _ = conn.Close() }()
	defer func() { _ = resp.Body.Close() }()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first, second statusSnapshot
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("failed to read first snapshot: %v", err)
	}
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("failed to read second snapshot: %v", err)
	}

	if second.UptimeSeconds < first.UptimeSeconds {
		t.Errorf("uptime went backwards: %f then %f", first.UptimeSeconds, second.UptimeSeconds)
	}
}

func TestStatusHandler_ClientDisconnect(t *testing.T) {
	t.Parallel()

	_, wsURL := newStatusTestServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var snap statusSnapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}

	// クローズフレーム送信後にサーバー側ループが終了しても新しい接続は受け付けられる
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()

	conn2, resp2, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket after disconnect: %v", err)
	}
	defer func() { _ = conn2.Close() }()
	defer func() { _ = resp2.Body.Close() }()

	_ = conn2.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn2.ReadJSON(&snap); err != nil {
		t.Fatalf("failed to read snapshot on second connection: %v", err)
	}
}

func TestStatusHandler_RejectsPlainHTTP(t *testing.T) {
	t.Parallel()

	srv, _ := newStatusTestServer(t)

	resp, err := http.Get(srv.URL + "/ws/status")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status %d for non-websocket request, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}
