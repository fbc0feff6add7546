package service

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"chatroom_web/internal/models"
)

// ErrRoomNotFound 表示操作的房間代碼不存在於註冊表中
var ErrRoomNotFound = errors.New("room does not exist")

// codeAlphabet 是房間代碼使用的字母表
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// DefaultCodeLength 是房間代碼的預設長度
const DefaultCodeLength = 4

// Room 代表一個聊天房間的狀態，由 RoomRegistry 獨佔持有
type Room struct {
	members  int
	messages []models.Message

	// postMu 串行化同一房間的「寫入歷史 + 廣播」配對，
	// 確保歷史順序與廣播順序一致
	postMu sync.Mutex
}

// RoomRegistry 是全進程的房間註冊表，管理房間的建立、成員計數與刪除。
// 所有共享狀態的修改都在 mu 保護下進行。
type RoomRegistry struct {
	mu         sync.Mutex
	rooms      map[string]*Room
	codeLength int
	rnd        *rand.Rand
}

// NewRoomRegistry 創建一個新的房間註冊表。
// 每個實例持有自己的亂數來源，測試可以各自建立獨立的註冊表。
func NewRoomRegistry(codeLength int) *RoomRegistry {
	if codeLength <= 0 {
		codeLength = DefaultCodeLength
	}
	return &RoomRegistry{
		rooms:      make(map[string]*Room),
		codeLength: codeLength,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Create 配置一個新的唯一房間代碼並插入空房間。
// 代碼產生與插入在同一個鎖內完成，避免兩個呼叫者先後抽到相同代碼。
func (r *RoomRegistry) Create() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var code string
	for {
		code = r.randomCode()
		if _, ok := r.rooms[code]; !ok {
			break
		}
	}

	r.rooms[code] = &Room{}
	return code
}

// randomCode 產生一個隨機房間代碼，呼叫者必須持有 r.mu
func (r *RoomRegistry) randomCode() string {
	buf := make([]byte, r.codeLength)
	for i := range buf {
		buf[i] = codeAlphabet[r.rnd.Intn(len(codeAlphabet))]
	}
	return string(buf)
}

// Exists 回報房間代碼是否存在
func (r *RoomRegistry) Exists(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.rooms[code]
	return ok
}

// Join 將房間的成員數加一。
// 存在性檢查與計數在同一個鎖內完成：表單送出到實際連線之間房間可能已被刪除，
// 所以這裡必須重新驗證而不能信任呼叫者先前的檢查。
func (r *RoomRegistry) Join(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return ErrRoomNotFound
	}
	room.members++
	return nil
}

// Leave 將房間的成員數減一，減到零（含以下）時刪除房間。
// 房間已不存在時是無操作：斷線處理必須容忍房間因其他原因先行消失。
// 回傳值表示這次呼叫是否觸發了刪除。
func (r *RoomRegistry) Leave(code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return false
	}
	room.members--
	if room.members <= 0 {
		delete(r.rooms, code)
		return true
	}
	return false
}

// Append 將消息附加到房間歷史，房間不存在時為無操作
func (r *RoomRegistry) Append(code string, msg models.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room, ok := r.rooms[code]; ok {
		room.messages = append(room.messages, msg)
	}
}

// Members 回傳房間目前的成員數，第二個回傳值表示房間是否存在
func (r *RoomRegistry) Members(code string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return 0, false
	}
	return room.members, true
}

// History 回傳房間歷史的副本，第二個回傳值表示房間是否存在
func (r *RoomRegistry) History(code string) ([]models.Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return nil, false
	}
	out := make([]models.Message, len(room.messages))
	copy(out, room.messages)
	return out, true
}

// Len 回傳目前存在的房間數量
func (r *RoomRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.rooms)
}

// lookup 取得房間物件供同套件內的發布流程使用，
// 呼叫者只能用它的 postMu，不可在註冊表鎖外讀寫其他欄位
func (r *RoomRegistry) lookup(code string) (*Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	return room, ok
}
