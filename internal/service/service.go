package service

import (
	"time"

	"chatroom_web/pkg/config"
)

type Services struct {
	Registry         *RoomRegistry
	Room             *RoomService
	WebSocketManager *WebSocketManager
}

func NewServices(cfg *config.Config) *Services {
	registry := NewRoomRegistry(cfg.Room.CodeLength)
	wsManager := NewWebSocketManager()
	responder := NewGeminiResponder(cfg.Gateway.APIKey, cfg.Gateway.Model)
	roomService := NewRoomService(registry, wsManager, responder,
		time.Duration(cfg.Gateway.Timeout)*time.Second)

	return &Services{
		Registry:         registry,
		Room:             roomService,
		WebSocketManager: wsManager,
	}
}
