package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"chatroom_web/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理 WebSocket 連接
type WebSocketHandler struct {
	roomService *service.RoomService
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(roomService *service.RoomService) *WebSocketHandler {
	return &WebSocketHandler{roomService: roomService}
}

// HandleWebSocket 處理 WebSocket 連接請求。
// session 未綁定 (房間, 名稱) 的連線在升級後立即關閉，不加入任何房間。
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	code := c.GetString("roomCode")
	name := c.GetString("displayName")

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	if code == "" || name == "" {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "not joined"))
		conn.Close()
		return
	}

	// 阻塞處理客戶端連接，直到斷線
	h.roomService.Connect(conn, code, name)
}
