package service

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatroom_web/internal/models"
)

func TestCreateGeneratesUniqueCodes(t *testing.T) {
	registry := NewRoomRegistry(4)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code := registry.Create()
		assert.Len(t, code, 4)
		assert.Equal(t, strings.ToUpper(code), code)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
	assert.Equal(t, 200, registry.Len())
}

func TestCreateReusesCodeAfterTeardown(t *testing.T) {
	// 長度 1 的代碼空間只有 26 個，先填滿再釋放一個，
	// 下一次 Create 必然回收被釋放的代碼
	registry := NewRoomRegistry(1)

	for i := 0; i < 26; i++ {
		registry.Create()
	}
	require.Equal(t, 26, registry.Len())

	freed := "M"
	require.True(t, registry.Exists(freed))
	require.NoError(t, registry.Join(freed))
	require.True(t, registry.Leave(freed))
	require.False(t, registry.Exists(freed))

	assert.Equal(t, freed, registry.Create())
}

func TestJoinMissingRoom(t *testing.T) {
	registry := NewRoomRegistry(4)

	err := registry.Join("ZZZZ")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestLeaveTearsDownEmptyRoom(t *testing.T) {
	registry := NewRoomRegistry(4)
	code := registry.Create()
	other := registry.Create()

	require.NoError(t, registry.Join(code))
	require.NoError(t, registry.Join(code))
	require.NoError(t, registry.Join(other))

	assert.False(t, registry.Leave(code))
	members, ok := registry.Members(code)
	require.True(t, ok)
	assert.Equal(t, 1, members)

	assert.True(t, registry.Leave(code))
	assert.False(t, registry.Exists(code))

	// 對已刪除的房間再 Leave 是無操作，也不影響其他房間
	assert.False(t, registry.Leave(code))
	members, ok = registry.Members(other)
	require.True(t, ok)
	assert.Equal(t, 1, members)
}

func TestAppendMissingRoomIsNoop(t *testing.T) {
	registry := NewRoomRegistry(4)

	registry.Append("ZZZZ", models.NewUserMessage("A", "hello"))

	_, ok := registry.History("ZZZZ")
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Len())
}

func TestHistoryPreservesOrderAndIsACopy(t *testing.T) {
	registry := NewRoomRegistry(4)
	code := registry.Create()

	registry.Append(code, models.NewUserMessage("A", "first"))
	registry.Append(code, models.NewUserMessage("A", "second"))

	messages, ok := registry.History(code)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)

	// 修改副本不影響註冊表中的歷史
	messages[0].Content = "mutated"
	again, _ := registry.History(code)
	assert.Equal(t, "first", again[0].Content)
}

func TestConcurrentCreateNeverDuplicates(t *testing.T) {
	registry := NewRoomRegistry(4)

	const workers = 20
	const perWorker = 25

	codes := make(chan string, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				codes <- registry.Create()
			}
		}()
	}
	wg.Wait()
	close(codes)

	seen := make(map[string]bool)
	for code := range codes {
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestConcurrentJoinLeave(t *testing.T) {
	registry := NewRoomRegistry(4)
	code := registry.Create()

	const members = 50
	var wg sync.WaitGroup
	for i := 0; i < members; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, registry.Join(code))
		}()
	}
	wg.Wait()

	count, ok := registry.Members(code)
	require.True(t, ok)
	assert.Equal(t, members, count)

	for i := 0; i < members; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			registry.Leave(code)
		}()
	}
	wg.Wait()

	assert.False(t, registry.Exists(code))
}
