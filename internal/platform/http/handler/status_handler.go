package handler

import (
	"log/slog"
	"math"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// statusSnapshot は/ws/statusで1秒ごとに配信されるペイロードです。
type statusSnapshot struct {
	Status        string  `json:"status"`
	DatetimeUTC   string  `json:"datetime_utc"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	GoVersion     string  `json:"go_version"`
	Platform      string  `json:"platform"`
}

// StatusHandler はwebsocket経由のサービスステータスフィードを処理します。
// 接続ごとに独立したループが走り、切断で終了します。
type StatusHandler struct {
	upgrader websocket.Upgrader
	start    time.Time
	interval time.Duration
}

// NewStatusHandler はプロセス起動時刻を基準にStatusHandlerを生成します。
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{
		upgrader: websocket.Upgrader{
			// ステータスフィードは公開エンドポイントのため全オリジンを許可
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		start:    time.Now(),
		interval: time.Second,
	}
}

// Status は /ws/status への接続をwebsocketへアップグレードし、
// ピアが切断するまで1秒間隔でステータスを配信します。
// クライアントからの入力は受け付けません（読み取りは切断検知のみ）。
func (h *StatusHandler) Status(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgraderがエラーレスポンスを書き込み済み
		slog.Warn("websocket upgrade failed", "error", err, "remote_addr", c.ClientIP())
		return
	}
	defer func() { _ = conn.Close() }()

	// 読み取りポンプ: ピアの切断（クローズフレーム等）を検知する
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		uptime := math.Round(time.Since(h.start).Seconds()*100) / 100
		snap := statusSnapshot{
			Status:        "ok",
			DatetimeUTC:   time.Now().UTC().Format(time.RFC3339),
			UptimeSeconds: uptime,
			GoVersion:     runtime.Version(),
			Platform:      runtime.GOOS + "/" + runtime.GOARCH,
		}
		if err := conn.WriteJSON(snap); err != nil {
			return
		}

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}
