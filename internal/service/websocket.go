package service

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"chatroom_web/internal/models"
)

// Client 代表一個 WebSocket 客戶端連接
type Client struct {
	ID       string               // 連線識別碼，用於日誌追蹤
	Conn     *websocket.Conn      // WebSocket 連接
	RoomCode string               // 所在房間代碼
	Name     string               // 顯示名稱
	SendChan chan *models.Message // 消息發送通道，用於異步傳送消息
}

// NewClient 創建一個新的客戶端連接
func NewClient(conn *websocket.Conn, roomCode, name string) *Client {
	return &Client{
		ID:       uuid.NewString(),
		Conn:     conn,
		RoomCode: roomCode,
		Name:     name,
		SendChan: make(chan *models.Message, 256), // 設置緩衝大小為 256 的消息通道
	}
}

// incomingPayload 是客戶端送上來的消息格式
type incomingPayload struct {
	Data string `json:"data"`
}

// WebSocketManager 管理所有的 WebSocket 連接和消息傳遞
type WebSocketManager struct {
	clients    map[string]map[*Client]bool // 兩層 map: 房間代碼 -> client -> bool
	clientsMux sync.RWMutex                // 用於保護 clients map 的讀寫鎖
}

// NewWebSocketManager 創建並初始化新的 WebSocket 管理器
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients: make(map[string]map[*Client]bool),
	}
}

// AddClient 安全地添加新的客戶端連接
func (m *WebSocketManager) AddClient(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if m.clients[client.RoomCode] == nil {
		m.clients[client.RoomCode] = make(map[*Client]bool)
	}
	m.clients[client.RoomCode][client] = true
}

// RemoveClient 安全地移除客戶端連接並關閉其發送通道，可重複呼叫
func (m *WebSocketManager) RemoveClient(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	clients, ok := m.clients[client.RoomCode]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.SendChan)
	// 如果房間空了，刪除房間的 client 集合
	if len(clients) == 0 {
		delete(m.clients, client.RoomCode)
	}
}

// BroadcastToRoom 向房間內的所有客戶端廣播消息。
// 發送通道的關閉在寫鎖內進行，這裡持讀鎖期間通道保證有效。
func (m *WebSocketManager) BroadcastToRoom(roomCode string, message *models.Message) {
	m.clientsMux.RLock()
	defer m.clientsMux.RUnlock()

	for client := range m.clients[roomCode] {
		select {
		case client.SendChan <- message:
			// 消息成功加入發送隊列
		default:
			// 客戶端消息隊列已滿，強制斷線，由讀取迴圈負責清理
			client.Conn.Close()
		}
	}
}

// RoomClients 獲取指定房間的在線客戶端數量
func (m *WebSocketManager) RoomClients(roomCode string) int {
	m.clientsMux.RLock()
	defer m.clientsMux.RUnlock()

	return len(m.clients[roomCode])
}

// Run 啟動客戶端的讀寫處理，每收到一條消息就呼叫 onMessage。
// 阻塞直到連接關閉，返回前會清理客戶端資源。
func (m *WebSocketManager) Run(client *Client, onMessage func(data string)) {
	defer func() {
		m.RemoveClient(client)
		client.Conn.Close()
	}()

	go m.writePump(client)
	m.readPump(client, onMessage)
}

// readPump 持續監聽並處理從客戶端接收的消息
func (m *WebSocketManager) readPump(client *Client, onMessage func(data string)) {
	client.Conn.SetReadLimit(4096) // 設置最大消息大小為 4KB
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket unexpected close error: %v", err)
			}
			break
		}

		// 解析接收到的消息
		var payload incomingPayload
		if err := json.Unmarshal(message, &payload); err != nil {
			log.Printf("message parse error: %v", err)
			continue
		}

		// 同一連線的消息在這個迴圈裡同步處理，
		// 處理期間不會再讀取下一條消息
		onMessage(payload.Data)
	}
}

// writePump 處理向客戶端發送消息的邏輯
func (m *WebSocketManager) writePump(client *Client) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.SendChan:
			// 設置寫入超時
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// 獲取寫入器並發送消息
			w, err := client.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			// JSON 編碼
			messageBytes, err := json.Marshal(message)
			if err != nil {
				log.Printf("message encoding error: %v", err)
				continue
			}

			if _, err := w.Write(messageBytes); err != nil {
				return
			}
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
