// internal/delivery/fcm/client.go
package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// MessagingScope - scope сервисного аккаунта для отправки сообщений
	MessagingScope  = "https://www.googleapis.com/auth/firebase.messaging"
	DefaultEndpoint = "https://fcm.googleapis.com"

	defaultTimeout = 15 * time.Second
)

// Message - уведомление на топик
type Message struct {
	Topic string
	Title string
	Body  string
}

type sendRequest struct {
	Message struct {
		Topic        string `json:"topic"`
		Notification struct {
			Title string `json:"title"`
			Body  string `json:"body"`
		} `json:"notification"`
	} `json:"message"`
}

// SendError - FCM вернул не 200
type SendError struct {
	StatusCode int
	Body       string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("fcm send failed: http %d: %s", e.StatusCode, e.Body)
}

// Client отправляет уведомления через FCM HTTP v1
type Client struct {
	httpClient *http.Client
	tokens     oauth2.TokenSource
	endpoint   string
	projectID  string
}

// NewClient создает клиента с готовым источником токенов
func NewClient(tokens oauth2.TokenSource, projectID, endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		endpoint:   strings.TrimRight(endpoint, "/"),
		projectID:  projectID,
	}
}

// NewClientFromFile читает JSON сервисного аккаунта; токен кэшируется и обновляется TokenSource.
// Обмен токена идет через клиент с тем же таймаутом, что и отправка.
func NewClientFromFile(ctx context.Context, credentialsFile, projectID, endpoint string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: timeout})

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read fcm credentials: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, MessagingScope)
	if err != nil {
		return nil, fmt.Errorf("parse fcm credentials: %w", err)
	}

	if projectID == "" {
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, fmt.Errorf("fcm project id is not set and missing in credentials")
	}

	return NewClient(creds.TokenSource, projectID, endpoint, timeout), nil
}

// SendURL - адрес messages:send
func (c *Client) SendURL() string {
	return fmt.Sprintf("%s/v1/projects/%s/messages:send", c.endpoint, c.projectID)
}

// Send отправляет уведомление на топик; успех - HTTP 200
func (c *Client) Send(ctx context.Context, msg Message) error {
	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("fcm access token: %w", err)
	}

	var payload sendRequest
	payload.Message.Topic = msg.Topic
	payload.Message.Notification.Title = msg.Title
	payload.Message.Notification.Body = msg.Body

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal fcm message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.SendURL(), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build fcm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; UTF-8")
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fcm request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 16<<10))
	if resp.StatusCode != http.StatusOK {
		return &SendError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return nil
}
