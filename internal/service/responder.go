package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Responder 是自動回覆閘道的介面：給一段使用者發言，產生一段回覆文字
type Responder interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

// defaultGeminiBaseURL 是 Gemini API 的正式端點
const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiResponder 透過 Gemini generateContent API 產生回覆
type GeminiResponder struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiResponder 創建一個新的 GeminiResponder 實例
func NewGeminiResponder(apiKey, model string) *GeminiResponder {
	return &GeminiResponder{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// generateRequest 是 generateContent API 的請求格式
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse 是 generateContent API 的回應格式，只解析需要的欄位
type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Reply 呼叫 Gemini API 產生回覆文字。
// 超時由呼叫者透過 ctx 控制；任何傳輸錯誤、非 2xx 狀態或空回應都視為閘道失敗。
func (g *GeminiResponder) Reply(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("gemini api returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	text := ""
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			text += p.Text
		}
	}
	if text == "" {
		return "", errors.New("gemini api returned no text")
	}

	return text, nil
}
