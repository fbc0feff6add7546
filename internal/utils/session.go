package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// SessionClaims 是綁定在連線 session 中的 (房間代碼, 顯示名稱) 配對
type SessionClaims struct {
	RoomCode    string `json:"room_code"`
	DisplayName string `json:"display_name"`
	jwt.StandardClaims
}

// GenerateToken 生成一個攜帶房間綁定的 session token
func GenerateToken(roomCode, displayName string, secret []byte) (string, error) {
	nowTime := time.Now()
	expireTime := nowTime.Add(240 * time.Hour)

	claims := SessionClaims{
		RoomCode:    roomCode,
		DisplayName: displayName,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expireTime.Unix(),
			IssuedAt:  nowTime.Unix(),
		},
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenClaims.SignedString(secret)
}

// ParseToken 解析和驗證 session token，簽名無效或過期都回傳錯誤
func ParseToken(token string, secret []byte) (*SessionClaims, error) {
	tokenClaims, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if tokenClaims != nil {
		if claims, ok := tokenClaims.Claims.(*SessionClaims); ok && tokenClaims.Valid {
			return claims, nil
		}
	}

	return nil, err
}
