// internal/delivery/telegram/app/http_client/telegram.go
package http_client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultAPIURL - адрес Bot API по умолчанию
const DefaultAPIURL = "https://api.telegram.org"

// APIError - отказ Telegram Bot API
type APIError struct {
	StatusCode  int
	ErrorCode   int
	Description string
	RetryAfter  int
}

func (e *APIError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("telegram API error %d (http %d): %s, retry after %ds", e.ErrorCode, e.StatusCode, e.Description, e.RetryAfter)
	}
	return fmt.Sprintf("telegram API error %d (http %d): %s", e.ErrorCode, e.StatusCode, e.Description)
}

// TelegramClient клиент для работы с Telegram API
type TelegramClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewTelegramClient создает новый клиент Telegram для бота token
func NewTelegramClient(apiURL, token string, timeout time.Duration) *TelegramClient {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TelegramClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(apiURL, "/") + "/bot" + token + "/",
	}
}

// SendMessage отправляет сообщение в чат; успех - HTTP 200
func (c *TelegramClient) SendMessage(ctx context.Context, chatID, text, parseMode string) error {
	request := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	if parseMode != "" {
		request["parse_mode"] = parseMode
	}
	return c.call(ctx, "sendMessage", request)
}

// call выполняет метод Bot API
func (c *TelegramClient) call(ctx context.Context, method string, request map[string]interface{}) error {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+method, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error содержит адрес запроса вместе с токеном бота
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("failed to send request to %s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var telegramResp struct {
		OK          bool   `json:"ok"`
		ErrorCode   int    `json:"error_code,omitempty"`
		Description string `json:"description,omitempty"`
		Parameters  struct {
			RetryAfter int `json:"retry_after"`
		} `json:"parameters"`
	}
	apiErr := &APIError{StatusCode: resp.StatusCode, ErrorCode: resp.StatusCode, Description: strings.TrimSpace(string(body))}
	if json.Unmarshal(body, &telegramResp) == nil && telegramResp.Description != "" {
		apiErr.ErrorCode = telegramResp.ErrorCode
		apiErr.Description = telegramResp.Description
		apiErr.RetryAfter = telegramResp.Parameters.RetryAfter
	}
	return apiErr
}

// GetBaseURL возвращает базовый URL (с токеном)
func (c *TelegramClient) GetBaseURL() string {
	return c.baseURL
}
