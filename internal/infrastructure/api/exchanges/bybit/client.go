// internal/infrastructure/api/exchanges/bybit/client.go
package bybit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"crypto-engulfing-alert-bot/internal/core/domain/candle"
	"crypto-engulfing-alert-bot/internal/infrastructure/api"
	"crypto-engulfing-alert-bot/pkg/logger"
	"crypto-engulfing-alert-bot/pkg/period"
)

const (
	Name           = "bybit"
	DefaultBaseURL = "https://api.bybit.com"
	klineEndpoint  = "/v5/market/kline"
	maxLimit       = 1000
)

// ============================================
// BYBIT CLIENT
// ============================================

// BybitClient - клиент для работы с API Bybit
type BybitClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	category   string
}

// NewBybitClient создает новый клиент для работы с API Bybit
func NewBybitClient(opts api.ClientOptions) *BybitClient {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &BybitClient{
		httpClient: &http.Client{Timeout: opts.ClampedTimeout()},
		baseURL:    baseURL,
		userAgent:  opts.UA(),
		category:   CategorySpot,
	}
}

// Name возвращает идентификатор провайдера
func (c *BybitClient) Name() string {
	return Name
}

// BaseURL возвращает адрес API
func (c *BybitClient) BaseURL() string {
	return c.baseURL
}

// ============================================
// ОСНОВНЫЕ API МЕТОДЫ
// ============================================

// FetchCandles получает свечи /v5/market/kline (ответ от новых к старым)
func (c *BybitClient) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]candle.Candle, error) {
	if err := api.ValidateLimit(Name, limit); err != nil {
		return nil, err
	}

	p, err := period.Normalize(interval)
	if err != nil {
		return nil, api.ParseError(Name, "unsupported interval "+interval, err)
	}

	params := url.Values{}
	params.Set("category", c.category)
	params.Set("symbol", FormatSymbol(symbol))
	params.Set("interval", intervals[p])
	params.Set("limit", strconv.Itoa(min(limit, maxLimit)))

	root, err := api.GetJSON(ctx, c.httpClient, Name, c.baseURL+klineEndpoint, params, c.userAgent)
	if err != nil {
		return nil, err
	}

	// Проверяем код ошибки в ответе API
	retCode := root.Get("retCode")
	if !retCode.Exists() {
		return nil, api.ParseError(Name, "missing retCode in response", nil)
	}
	if retCode.Int() != 0 {
		return nil, api.ProviderError(Name, fmt.Sprintf("%d: %s", retCode.Int(), root.Get("retMsg").String()))
	}

	list := root.Get("result.list")
	if !list.IsArray() {
		return nil, api.ParseError(Name, "result.list is missing", nil)
	}

	var candles []candle.Candle
	var parseErr error
	list.ForEach(func(_, item gjson.Result) bool {
		var cndl candle.Candle
		if item.IsArray() {
			cndl, parseErr = parsePositional(item.Array())
		} else {
			cndl, parseErr = parseNamed(item)
		}
		if parseErr != nil {
			return false
		}
		candles = append(candles, cndl)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	logger.Debug("📊 Bybit: получено %d свечей %s %s", len(candles), symbol, p)
	return api.Finalize(Name, candles, limit)
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ
// ============================================

func parsePositional(f []gjson.Result) (candle.Candle, error) {
	if len(f) <= fieldVolume {
		return candle.Candle{}, api.ParseError(Name, "kline row has unexpected shape", nil)
	}
	return build(f[fieldStart], f[fieldOpen], f[fieldHigh], f[fieldLow], f[fieldClose], f[fieldVolume])
}

// parseNamed - вариант ответа с именованными полями
func parseNamed(item gjson.Result) (candle.Candle, error) {
	if !item.IsObject() {
		return candle.Candle{}, api.ParseError(Name, "kline item has unexpected shape", nil)
	}
	start := item.Get("startTime")
	if !start.Exists() {
		start = item.Get("start")
	}
	return build(start, item.Get("open"), item.Get("high"), item.Get("low"), item.Get("close"), item.Get("volume"))
}

func build(start, open, high, low, closeV, volume gjson.Result) (candle.Candle, error) {
	ts, err := api.UnixTime(Name, "startTime", start, time.Millisecond)
	if err != nil {
		return candle.Candle{}, err
	}
	o, err := api.Decimal(Name, "open", open)
	if err != nil {
		return candle.Candle{}, err
	}
	h, err := api.Decimal(Name, "high", high)
	if err != nil {
		return candle.Candle{}, err
	}
	l, err := api.Decimal(Name, "low", low)
	if err != nil {
		return candle.Candle{}, err
	}
	cl, err := api.Decimal(Name, "close", closeV)
	if err != nil {
		return candle.Candle{}, err
	}
	c := candle.Candle{Open: o, High: h, Low: l, Close: cl, Timestamp: ts, Source: Name}
	// объем опционален
	if volume.Exists() {
		if v, err := api.Decimal(Name, "volume", volume); err == nil {
			c.Volume = v
		}
	}
	return c, nil
}

// FormatSymbol приводит символ к виду BTCUSDT
func FormatSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "/", "")
}
