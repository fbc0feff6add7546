package service

import (
	"context"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"chatroom_web/internal/models"
)

// failedReplyNotice 是取得回覆失敗時代替回覆內容的錯誤通知
const failedReplyNotice = "(no reply: the assistant is unavailable right now)"

// RoomService 協調連線的加入、發言與離開事件，
// 對房間註冊表與廣播通道執行對應的狀態變化
type RoomService struct {
	registry       *RoomRegistry
	wsManager      *WebSocketManager
	responder      Responder
	gatewayTimeout time.Duration
}

// NewRoomService 創建一個新的 RoomService 實例
func NewRoomService(registry *RoomRegistry, wsManager *WebSocketManager, responder Responder, gatewayTimeout time.Duration) *RoomService {
	if gatewayTimeout <= 0 {
		gatewayTimeout = 30 * time.Second
	}
	return &RoomService{
		registry:       registry,
		wsManager:      wsManager,
		responder:      responder,
		gatewayTimeout: gatewayTimeout,
	}
}

// Registry 回傳底層的房間註冊表
func (s *RoomService) Registry() *RoomRegistry {
	return s.registry
}

// Connect 處理一個已綁定 (房間, 名稱) 的新連線，阻塞直到連線結束。
// 房間在表單送出後可能已被刪除，Join 內部會重新驗證；
// 驗證失敗的連線立即關閉，不加入任何房間。
func (s *RoomService) Connect(conn *websocket.Conn, roomCode, name string) {
	if err := s.registry.Join(roomCode); err != nil {
		log.Printf("%s cannot join room %s: %v", name, roomCode, err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "room does not exist"))
		conn.Close()
		return
	}

	client := NewClient(conn, roomCode, name)
	s.wsManager.AddClient(client)
	s.post(roomCode, models.NewJoinNotice(name))
	log.Printf("%s joined room %s (conn %s)", name, roomCode, client.ID)

	// 阻塞處理這條連線的消息，直到連線關閉
	s.wsManager.Run(client, func(data string) {
		s.handleMessage(client, data)
	})

	s.Disconnect(client)
}

// handleMessage 處理一條使用者發言，依序執行：
// 廣播使用者消息、廣播佔位消息、呼叫回覆閘道、廣播回覆。
// 閘道呼叫期間不持有任何註冊表鎖，其他連線的事件不受影響。
func (s *RoomService) handleMessage(client *Client, data string) {
	if !s.registry.Exists(client.RoomCode) {
		return
	}

	s.post(client.RoomCode, models.NewUserMessage(client.Name, data))
	log.Printf("%s said: %s", client.Name, data)

	s.post(client.RoomCode, models.NewPlaceholderMessage())

	ctx, cancel := context.WithTimeout(context.Background(), s.gatewayTimeout)
	defer cancel()

	reply, err := s.responder.Reply(ctx, data)
	if err != nil {
		// 閘道失敗以錯誤通知代替回覆，發言流程照常走完
		log.Printf("responder gateway error: %v", err)
		reply = failedReplyNotice
	}

	s.post(client.RoomCode, models.NewReplyMessage(reply))
}

// Disconnect 處理連線結束：遞減成員數（可能觸發房間刪除），
// 然後廣播離開通知。房間剛被刪除時通知仍會送出，
// 給殘留的成員或在無人時落空。
func (s *RoomService) Disconnect(client *Client) {
	deleted := s.registry.Leave(client.RoomCode)
	s.post(client.RoomCode, models.NewLeaveNotice(client.Name))

	if deleted {
		log.Printf("room %s torn down", client.RoomCode)
	}
	log.Printf("%s has left the room %s (conn %s)", client.Name, client.RoomCode, client.ID)
}

// post 將消息寫入房間歷史並廣播給房間成員。
// 同一房間的配對操作在 postMu 下串行化，歷史順序即廣播順序；
// 房間已被刪除時只做盡力廣播（例如最後一位成員的離開通知）。
func (s *RoomService) post(roomCode string, msg models.Message) {
	room, ok := s.registry.lookup(roomCode)
	if !ok {
		s.wsManager.BroadcastToRoom(roomCode, &msg)
		return
	}

	room.postMu.Lock()
	defer room.postMu.Unlock()

	s.registry.Append(roomCode, msg)
	s.wsManager.BroadcastToRoom(roomCode, &msg)
}
