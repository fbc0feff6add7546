package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Session SessionConfig
	Gateway GatewayConfig
	Room    RoomConfig
}

type ServerConfig struct {
	Address string
}

type SessionConfig struct {
	Secret string
}

type GatewayConfig struct {
	APIKey  string
	Model   string
	Timeout int // 以秒為單位
}

type RoomConfig struct {
	CodeLength int
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./pkg/config")

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("gateway.model", "gemini-1.5-flash")
	viper.SetDefault("gateway.timeout", 30)
	viper.SetDefault("room.codelength", 4)

	// 秘密值由環境變量提供，不寫進配置文件
	viper.BindEnv("session.secret", "SESSION_SECRET")
	viper.BindEnv("gateway.apikey", "GEMINI_API_KEY")

	// 配置文件不存在時僅依賴默認值與環境變量
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Session.Secret == "" {
		return nil, errors.New("session secret is not set")
	}

	return &config, nil
}
