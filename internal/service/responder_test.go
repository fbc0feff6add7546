package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeminiResponder(t *testing.T, handler http.HandlerFunc) *GeminiResponder {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	responder := NewGeminiResponder("test-key", "gemini-1.5-flash")
	responder.baseURL = srv.URL
	return responder
}

func TestGeminiReply(t *testing.T) {
	responder := newTestGeminiResponder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Parts: []part{{Text: "hi there"}}}},
			},
		})
	})

	text, err := responder.Reply(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", text)
}

func TestGeminiReplyServerError(t *testing.T) {
	responder := newTestGeminiResponder(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := responder.Reply(context.Background(), "hello")
	assert.ErrorContains(t, err, "status 429")
}

func TestGeminiReplyEmptyCandidates(t *testing.T) {
	responder := newTestGeminiResponder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := responder.Reply(context.Background(), "hello")
	assert.Error(t, err)
}

func TestGeminiReplyTimeout(t *testing.T) {
	responder := newTestGeminiResponder(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := responder.Reply(ctx, "hello")
	assert.Error(t, err)
}
