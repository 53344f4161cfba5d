// internal/infrastructure/api/request.go
package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// maxBodySize - ответы со свечами не бывают больше нескольких сотен КБ
const maxBodySize = 4 << 20

// GetJSON выполняет GET и возвращает проверенное JSON-тело.
// HTML-страница блокировки при статусе 200 считается ошибкой парсинга.
func GetJSON(ctx context.Context, client *http.Client, provider, endpoint string, params url.Values, userAgent string) (gjson.Result, error) {
	apiURL := endpoint
	if len(params) > 0 {
		apiURL = apiURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return gjson.Result{}, ParseError(provider, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return gjson.Result{}, NetworkError(provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return gjson.Result{}, NetworkError(provider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return gjson.Result{}, HTTPError(provider, resp.StatusCode, string(body))
	}

	if looksLikeHTML(resp.Header.Get("Content-Type"), body) {
		return gjson.Result{}, ParseError(provider, "html page instead of json", nil)
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, ParseError(provider, "invalid json body", nil)
	}

	return gjson.ParseBytes(body), nil
}

func looksLikeHTML(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	return bytes.HasPrefix(bytes.TrimSpace(body), []byte("<"))
}
