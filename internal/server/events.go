package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/shouni/go-storyboard-kit/pkg/assistant"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// transcriptEvent はトランスクリプトに発言が追加されたことを表示側に伝えるメッセージです。
// 受け取った側はトランスクリプトの末尾までスクロールします。
type transcriptEvent struct {
	Type string `json:"type"`
	assistant.Event
}

// streamEvents はセッションのトランスクリプト変更を WebSocket で配信します。
func (h *handlers) streamEvents(c *gin.Context) {
	visit, ok := h.visit(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.WarnContext(c.Request.Context(), "WebSocket upgrade failed", "session_id", visit.ID, "error", err)
		return
	}

	send := make(chan assistant.Event, sendBuffer)
	unsubscribe := visit.Chat.Subscribe(func(e assistant.Event) {
		select {
		case send <- e:
		default:
			slog.Warn("Dropping transcript event for slow client", "session_id", visit.ID, "length", e.Length)
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		readPump(conn)
	}()

	writePump(conn, send, done)
	unsubscribe()
	_ = conn.Close()
	slog.Debug("WebSocket closed", "session_id", visit.ID)
}

// readPump はクライアントからの切断と pong を処理します。受信内容は使いません。
func readPump(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(conn *websocket.Conn, send <-chan assistant.Event, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case e := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(transcriptEvent{Type: "transcript", Event: e}); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
