package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chatroom_web/internal/api/handlers"
	"chatroom_web/internal/middleware"
	"chatroom_web/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services, secret []byte) {
	// 初始化 handlers
	homeHandler := handlers.NewHomeHandler(services.Registry, secret)
	roomHandler := handlers.NewRoomHandler(services.Registry)
	wsHandler := handlers.NewWebSocketHandler(services.Room)

	// 所有路由都先經過 session 還原
	r.Use(middleware.SessionMiddleware(secret))

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 加入/建立房間
	r.GET("/", homeHandler.Home)
	r.POST("/", homeHandler.SubmitJoinForm)

	// 房間頁面與即時連線
	r.GET("/room", roomHandler.GetRoom)
	r.GET("/ws", wsHandler.HandleWebSocket)

	// 基本的健康檢查
	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"rooms":  services.Registry.Len(),
		})
	})
}
