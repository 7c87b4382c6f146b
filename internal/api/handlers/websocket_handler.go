// server/internal/api/handlers/websocket_handler.go
package handlers

import (
	"net/http"
	"time"

	"hospital-ops-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Thời gian chờ tối đa cho một tin nhắn từ client.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub *socket.Hub
	Log zerolog.Logger
}

// ServeWs xử lý các yêu cầu kết nối WebSocket của dashboard một cơ sở.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	facilityID := c.Query("facilityID")
	if facilityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "facilityID is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to upgrade websocket connection")
		return
	}

	h.Hub.Register(facilityID, conn)

	defer func() {
		h.Hub.Unregister(facilityID)
		conn.Close()
	}()

	// Heartbeat: client gửi PING định kỳ, server gia hạn deadline đọc.
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Vòng lặp đọc: chỉ để phát hiện client đóng kết nối.
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Log.Warn().Err(err).Str("facilityID", facilityID).Msg("unexpected websocket close")
			}
			break
		}
	}
}
