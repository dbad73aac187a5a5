package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const streamPingInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamChanges upgrades the connection and forwards every fleet change to
// the client until it disconnects. Push only fires on ingestion; clients must
// still poll the snapshot on an interval to observe staleness transitions and
// recover from missed messages.
func (a *API) StreamChanges(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to upgrade to WebSocket",
			"remote_addr", r.RemoteAddr,
			"error", err,
		)
		return
	}
	defer conn.Close()

	sub := a.Hub.Subscribe()
	defer sub.Close()

	slog.InfoContext(r.Context(), "Stream subscriber connected", "remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Client frames carry nothing we act on; the read loop only detects
	// disconnect.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(r.Context(), "Stream subscriber disconnected", "remote_addr", r.RemoteAddr)
			return
		case change := <-sub.C():
			msg := StreamMessage{Type: "data", Change: &change, Timestamp: a.now().UTC()}
			if err := conn.WriteJSON(msg); err != nil {
				slog.ErrorContext(r.Context(), "Failed to write stream message",
					"remote_addr", r.RemoteAddr,
					"error", err,
				)
				return
			}
		case <-ticker.C:
			msg := StreamMessage{Type: "ping", Timestamp: a.now().UTC()}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}
