// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Hub quản lý các kết nối WebSocket của dashboard từng cơ sở.
type Hub struct {
	// clients lưu kết nối theo facilityID.
	clients map[string]*websocket.Conn
	// mu bảo vệ map clients khi truy cập từ nhiều goroutine.
	mu  sync.RWMutex
	log zerolog.Logger
}

// NewHub tạo một Hub mới.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
		log:     log.With().Str("component", "socket_hub").Logger(),
	}
}

// Register thêm một client mới vào Hub.
func (h *Hub) Register(facilityID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[facilityID] = conn
	h.log.Info().Str("facilityID", facilityID).Msg("websocket client registered")
}

// Unregister xóa một client khỏi Hub.
func (h *Hub) Unregister(facilityID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[facilityID]; ok {
		delete(h.clients, facilityID)
		h.log.Info().Str("facilityID", facilityID).Msg("websocket client unregistered")
	}
}

// Send gửi một tin nhắn đến dashboard của một cơ sở.
func (h *Hub) Send(facilityID string, message []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.clients[facilityID]
	if !ok {
		// Cơ sở đang offline, không coi đây là lỗi nghiêm trọng.
		h.log.Debug().Str("facilityID", facilityID).Msg("websocket client not found, message dropped")
		return nil
	}
	return conn.WriteMessage(websocket.TextMessage, message)
}

// Notify implements allocation.Notifier: marshal sự kiện thành JSON rồi gửi.
func (h *Hub) Notify(facilityID string, event interface{}) {
	message, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to marshal websocket event")
		return
	}
	if err := h.Send(facilityID, message); err != nil {
		h.log.Warn().Err(err).Str("facilityID", facilityID).Msg("failed to send websocket event")
	}
}
