package models

import (
	"strings"
	"time"
)

// ResponderName 是自動回覆者在房間中顯示的名稱
const ResponderName = "AI_CHATBOT"

// lineBreak 是顯示用的換行標記，回覆內容中的換行會被轉換成它
const lineBreak = "<br>"

// MessageType 定義消息種類的類型
type MessageType string

const (
	MessageTypeUser        MessageType = "user"                  // 使用者發言
	MessageTypeSystemJoin  MessageType = "system-join"           // 加入房間通知
	MessageTypeSystemLeave MessageType = "system-leave"          // 離開房間通知
	MessageTypePlaceholder MessageType = "responder-placeholder" // 回覆產生中的佔位消息
	MessageTypeReply       MessageType = "responder-reply"       // 自動回覆者的回覆
)

// Message 代表房間歷史中的一條消息，建立後不再修改
type Message struct {
	Type      MessageType `json:"type"`
	Name      string      `json:"name"`
	Content   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewUserMessage 創建一條使用者發言
func NewUserMessage(name, content string) Message {
	return Message{
		Type:      MessageTypeUser,
		Name:      name,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewJoinNotice 創建一條加入房間的系統通知
func NewJoinNotice(name string) Message {
	return Message{
		Type:      MessageTypeSystemJoin,
		Name:      name,
		Content:   "has entered the room",
		Timestamp: time.Now(),
	}
}

// NewLeaveNotice 創建一條離開房間的系統通知
func NewLeaveNotice(name string) Message {
	return Message{
		Type:      MessageTypeSystemLeave,
		Name:      name,
		Content:   "has left the room",
		Timestamp: time.Now(),
	}
}

// NewPlaceholderMessage 創建一條佔位消息，告知成員回覆正在產生中
func NewPlaceholderMessage() Message {
	return Message{
		Type:      MessageTypePlaceholder,
		Name:      ResponderName,
		Content:   "thinking...",
		Timestamp: time.Now(),
	}
}

var replyLineBreaks = strings.NewReplacer("\r\n", lineBreak, "\n", lineBreak)

// NewReplyMessage 創建一條自動回覆消息，內容中的換行會轉換為顯示用的換行標記
func NewReplyMessage(content string) Message {
	return Message{
		Type:      MessageTypeReply,
		Name:      ResponderName,
		Content:   replyLineBreaks.Replace(content),
		Timestamp: time.Now(),
	}
}
