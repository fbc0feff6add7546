package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatroom_web/internal/service"
)

// RoomHandler 處理房間頁面的查詢
type RoomHandler struct {
	registry *service.RoomRegistry
}

// NewRoomHandler 創建一個新的 RoomHandler 實例
func NewRoomHandler(registry *service.RoomRegistry) *RoomHandler {
	return &RoomHandler{registry: registry}
}

// GetRoom 回傳 session 綁定房間的消息歷史。
// 未綁定或房間已不存在（過期綁定）一律轉回首頁。
func (h *RoomHandler) GetRoom(c *gin.Context) {
	code := c.GetString("roomCode")
	name := c.GetString("displayName")

	if code == "" || name == "" || !h.registry.Exists(code) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	messages, ok := h.registry.History(code)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":     code,
		"messages": messages,
	})
}
