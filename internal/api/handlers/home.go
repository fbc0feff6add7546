package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatroom_web/internal/middleware"
	"chatroom_web/internal/service"
	"chatroom_web/internal/utils"
)

// sessionMaxAge 是 session cookie 的存活秒數
const sessionMaxAge = 240 * 60 * 60

// HomeHandler 處理加入/建立房間的表單
type HomeHandler struct {
	registry *service.RoomRegistry
	secret   []byte
}

// NewHomeHandler 創建一個新的 HomeHandler 實例
func NewHomeHandler(registry *service.RoomRegistry, secret []byte) *HomeHandler {
	return &HomeHandler{registry: registry, secret: secret}
}

// JoinInput 定義加入/建立房間表單的結構
type JoinInput struct {
	Name   string `form:"name"`
	Code   string `form:"code"`
	Join   bool   `form:"join"`
	Create bool   `form:"create"`
}

// Home 處理回到首頁的請求，同時清除既有的 session 綁定
func (h *HomeHandler) Home(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{})
}

// SubmitJoinForm 處理加入/建立房間的表單。
// 驗證錯誤會連同已填入的欄位一起回傳，讓客戶端重新呈現表單；
// create 與 join 同時送出時 create 優先；兩者都沒送出但代碼存在時視為加入
// （沿用既有行為的刻意寬鬆，不是疏漏）。
func (h *HomeHandler) SubmitJoinForm(c *gin.Context) {
	var input JoinInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Please enter a name.",
			"name":  input.Name,
			"code":  input.Code,
		})
		return
	}

	if input.Join && input.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Please enter a room code.",
			"name":  input.Name,
			"code":  input.Code,
		})
		return
	}

	room := input.Code
	if input.Create {
		// 建立新房間時忽略表單中帶入的代碼
		room = h.registry.Create()
	} else if !h.registry.Exists(input.Code) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Room does not exist.",
			"name":  input.Name,
			"code":  input.Code,
		})
		return
	}

	token, err := utils.GenerateToken(room, input.Name, h.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "建立 session 失敗"})
		return
	}
	c.SetCookie(middleware.SessionCookieName, token, sessionMaxAge, "/", "", false, true)

	// 回傳綁定結果，客戶端據此轉往房間頁
	c.JSON(http.StatusOK, gin.H{
		"room": room,
		"name": input.Name,
	})
}
