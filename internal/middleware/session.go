package middleware

import (
	"github.com/gin-gonic/gin"

	"chatroom_web/internal/utils"
)

// SessionCookieName 是攜帶房間綁定的 cookie 名稱
const SessionCookieName = "session"

// SessionMiddleware 是一個 Gin 中間件，從 cookie 中還原連線的房間綁定。
// 沒有 cookie 或驗證失敗都視為未綁定，不是錯誤；是否拒絕請求由各處理器決定。
func SessionMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err == nil && token != "" {
			if claims, err := utils.ParseToken(token, secret); err == nil {
				// 將房間綁定設置到上下文中
				c.Set("roomCode", claims.RoomCode)
				c.Set("displayName", claims.DisplayName)
			}
		}
		c.Next() // 繼續處理請求
	}
}
