package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

type Hub struct {
	Clients       map[string]map[*websocket.Conn]*Client // Theo từng hoạt động ghép cặp (matchingID)
	GlobalClients map[*websocket.Conn]*Client            // Dành cho broadcast chung (màn hình theo dõi lớp)
	Mutex         sync.RWMutex
}

var H = Hub{
	Clients:       make(map[string]map[*websocket.Conn]*Client),
	GlobalClients: make(map[*websocket.Conn]*Client),
}

// Struct gửi thông báo khi có lượt làm bài được nộp
type AttemptUpdate struct {
	MatchingID    string `json:"matching_id"`
	AttemptID     string `json:"attempt_id"`
	StudentID     string `json:"student_id"`
	Score         int    `json:"score"`
	MaxScore      int    `json:"max_score"`
	IsCorrect     bool   `json:"is_correct"`
	AttemptNumber int    `json:"attempt_number"`
}

// Register theo matchingID riêng
func (h *Hub) Register(matchingID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Clients[matchingID]; !ok {
		h.Clients[matchingID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.Clients[matchingID][conn] = client

	go h.readPump(matchingID, conn)
	go h.writePump(matchingID, conn)
}

// Register global cho màn hình theo dõi chung
func (h *Hub) RegisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.GlobalClients[conn] = client

	go h.readGlobalPump(conn)
	go h.writeGlobalPump(conn)
}

// Broadcast theo matchingID
func (h *Hub) Broadcast(matchingID string, messageType int, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.Clients[matchingID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// Broadcast toàn bộ global clients
func (h *Hub) BroadcastGlobal(messageType int, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	for _, client := range h.GlobalClients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// GetStats trả về số kết nối hiện tại, dùng cho health check
func (h *Hub) GetStats() map[string]int {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	total := 0
	for _, clients := range h.Clients {
		total += len(clients)
	}
	return map[string]int{
		"activity_connections": total,
		"global_connections":   len(h.GlobalClients),
	}
}

// Public function gửi thông báo lượt làm bài mới
func SendAttemptUpdate(update AttemptUpdate) {
	data, err := json.Marshal(update)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.Broadcast(update.MatchingID, websocket.TextMessage, data)
	H.BroadcastGlobal(websocket.TextMessage, data)
}

// Unregister client theo matchingID
func (h *Hub) Unregister(matchingID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Clients[matchingID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Clients, matchingID)
		}
	}
}

// Unregister global client
func (h *Hub) UnregisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if client, ok := h.GlobalClients[conn]; ok {
		close(client.Send)
		delete(h.GlobalClients, conn)
	}
}

// Read pump riêng theo matchingID
func (h *Hub) readPump(matchingID string, conn *websocket.Conn) {
	defer h.Unregister(matchingID, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Write pump riêng theo matchingID
func (h *Hub) writePump(matchingID string, conn *websocket.Conn) {
	client := h.Clients[matchingID][conn]
	defer func() {
		conn.WriteMessage(websocket.CloseMessage, []byte{})
		conn.Close()
	}()
	for msg := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// Read pump global
func (h *Hub) readGlobalPump(conn *websocket.Conn) {
	defer h.UnregisterGlobal(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Write pump global
func (h *Hub) writeGlobalPump(conn *websocket.Conn) {
	client := h.GlobalClients[conn]
	defer func() {
		conn.WriteMessage(websocket.CloseMessage, []byte{})
		conn.Close()
	}()
	for msg := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
