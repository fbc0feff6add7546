package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"chatroom_web/internal/api"
	"chatroom_web/internal/service"
	"chatroom_web/pkg/config"
)

func main() {
	// 載入應用程式配置
	// 從配置文件與環境變量中讀取設置，如服務器地址、session 密鑰和回覆閘道憑證
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化服務
	// 房間註冊表、WebSocket 管理器與回覆閘道都在這裡建立
	services := service.NewServices(cfg)

	// 設置 Gin 路由
	// 創建一個默認的 Gin 路由器並設置路由
	r := gin.Default()
	api.SetupRoutes(r, services, []byte(cfg.Session.Secret))

	// 啟動伺服器
	// 使用配置中指定的地址啟動 HTTP 服務器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
