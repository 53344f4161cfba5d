// internal/infrastructure/api/exchanges/binance/client.go
package binance

import (
	"context"
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
	Name           = "binance"
	DefaultBaseURL = "https://api.binance.com"
	klinesEndpoint = "/api/v3/klines"
	maxLimit       = 1000
)

// intervals - Binance принимает канонические имена как есть
var intervals = map[string]string{
	period.Period1m:  "1m",
	period.Period3m:  "3m",
	period.Period5m:  "5m",
	period.Period15m: "15m",
	period.Period30m: "30m",
	period.Period1h:  "1h",
	period.Period2h:  "2h",
	period.Period4h:  "4h",
	period.Period6h:  "6h",
	period.Period12h: "12h",
	period.Period1d:  "1d",
	period.Period1w:  "1w",
}

// BinanceClient - клиент для API Binance (spot klines)
type BinanceClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewBinanceClient создает нового клиента для Binance
func NewBinanceClient(opts api.ClientOptions) *BinanceClient {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &BinanceClient{
		httpClient: &http.Client{Timeout: opts.ClampedTimeout()},
		baseURL:    baseURL,
		userAgent:  opts.UA(),
	}
}

// Name возвращает идентификатор провайдера
func (c *BinanceClient) Name() string {
	return Name
}

// BaseURL возвращает адрес API
func (c *BinanceClient) BaseURL() string {
	return c.baseURL
}

// FetchCandles получает свечи /api/v3/klines
func (c *BinanceClient) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]candle.Candle, error) {
	if err := api.ValidateLimit(Name, limit); err != nil {
		return nil, err
	}

	p, err := period.Normalize(interval)
	if err != nil {
		return nil, api.ParseError(Name, "unsupported interval "+interval, err)
	}

	params := url.Values{}
	params.Set("symbol", FormatSymbol(symbol))
	params.Set("interval", intervals[p])
	params.Set("limit", strconv.Itoa(min(limit, maxLimit)))

	root, err := api.GetJSON(ctx, c.httpClient, Name, c.baseURL+klinesEndpoint, params, c.userAgent)
	if err != nil {
		return nil, err
	}

	// Ошибки Binance приходят объектом {"code": -1121, "msg": "Invalid symbol."}
	if root.IsObject() {
		if msg := root.Get("msg"); msg.Exists() {
			return nil, api.ProviderError(Name, root.Get("code").String()+": "+msg.String())
		}
		return nil, api.ParseError(Name, "unexpected object response", nil)
	}
	if !root.IsArray() {
		return nil, api.ParseError(Name, "klines response is not an array", nil)
	}

	rows := root.Array()
	candles := make([]candle.Candle, 0, len(rows))
	for _, row := range rows {
		// [openTime, open, high, low, close, volume, closeTime, ...]
		if !row.IsArray() || len(row.Array()) < 6 {
			return nil, api.ParseError(Name, "kline row has unexpected shape", nil)
		}
		cndl, err := parseRow(row.Array())
		if err != nil {
			return nil, err
		}
		candles = append(candles, cndl)
	}

	logger.Debug("📊 Binance: получено %d свечей %s %s", len(candles), symbol, p)
	return api.Finalize(Name, candles, limit)
}

func parseRow(f []gjson.Result) (candle.Candle, error) {
	ts, err := api.UnixTime(Name, "openTime", f[0], time.Millisecond)
	if err != nil {
		return candle.Candle{}, err
	}
	open, err := api.Decimal(Name, "open", f[1])
	if err != nil {
		return candle.Candle{}, err
	}
	high, err := api.Decimal(Name, "high", f[2])
	if err != nil {
		return candle.Candle{}, err
	}
	low, err := api.Decimal(Name, "low", f[3])
	if err != nil {
		return candle.Candle{}, err
	}
	closePrice, err := api.Decimal(Name, "close", f[4])
	if err != nil {
		return candle.Candle{}, err
	}
	volume, err := api.Decimal(Name, "volume", f[5])
	if err != nil {
		return candle.Candle{}, err
	}

	return candle.Candle{
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePrice,
		Volume:    volume,
		Timestamp: ts,
		Source:    Name,
	}, nil
}

// FormatSymbol приводит символ к виду BTCUSDT
func FormatSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "/", "")
}
