// Package chat talks to a local Ollama instance for the assistant
// feature.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "http://127.0.0.1:11434"
	defaultModel   = "gemma3:1b"
	generatePath   = "/api/generate"
)

// ErrEmptyResponse indicates the model returned no text.
var ErrEmptyResponse = errors.New("chat: 模型沒有回應")

// Options 設定 Ollama 用戶端。
type Options struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client 是 Ollama generate API 的用戶端。
type Client struct {
	baseURL string
	model   string
	client  *http.Client
	logger  zerolog.Logger
}

// NewClient 構造聊天用戶端。
func NewClient(opts Options, logger zerolog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		model:   opts.Model,
		client:  &http.Client{Timeout: opts.Timeout},
		logger:  logger.With().Str("component", "chat").Logger(),
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate sends prompt to the model and returns its reply.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("chat: 提示詞不可為空")
	}

	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("model", c.model).Msg("發送聊天請求")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("聊天請求失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("聊天服務響應碼異常: %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("解析聊天響應失敗: %w", err)
	}
	if parsed.Response == "" {
		return "", ErrEmptyResponse
	}
	return parsed.Response, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }
