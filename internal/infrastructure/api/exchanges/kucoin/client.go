// internal/infrastructure/api/exchanges/kucoin/client.go
package kucoin

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
	Name            = "kucoin"
	DefaultBaseURL  = "https://api.kucoin.com"
	candlesEndpoint = "/api/v1/market/candles"
	successCode     = "200000"
	maxLimit        = 1500
)

// intervals - KuCoin использует именованные интервалы
var intervals = map[string]string{
	period.Period1m:  "1min",
	period.Period3m:  "3min",
	period.Period5m:  "5min",
	period.Period15m: "15min",
	period.Period30m: "30min",
	period.Period1h:  "1hour",
	period.Period2h:  "2hour",
	period.Period4h:  "4hour",
	period.Period6h:  "6hour",
	period.Period12h: "12hour",
	period.Period1d:  "1day",
	period.Period1w:  "1week",
}

// quoteAssets - котируемые валюты для разбиения BTCUSDT -> BTC-USDT (длинные первыми)
var quoteAssets = []string{"USDT", "USDC", "TUSD", "BUSD", "DAI", "EUR", "BTC", "ETH", "KCS", "TRX"}

// KuCoinClient - клиент для API KuCoin
type KuCoinClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	now        func() time.Time
}

// NewKuCoinClient создает клиента KuCoin
func NewKuCoinClient(opts api.ClientOptions) *KuCoinClient {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &KuCoinClient{
		httpClient: &http.Client{Timeout: opts.ClampedTimeout()},
		baseURL:    baseURL,
		userAgent:  opts.UA(),
		now:        time.Now,
	}
}

// Name возвращает идентификатор провайдера
func (c *KuCoinClient) Name() string {
	return Name
}

// BaseURL возвращает адрес API
func (c *KuCoinClient) BaseURL() string {
	return c.baseURL
}

// FetchCandles получает свечи /api/v1/market/candles (ответ от новых к старым)
func (c *KuCoinClient) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]candle.Candle, error) {
	if err := api.ValidateLimit(Name, limit); err != nil {
		return nil, err
	}

	p, err := period.Normalize(interval)
	if err != nil {
		return nil, api.ParseError(Name, "unsupported interval "+interval, err)
	}
	step, _ := period.StringToDuration(p)

	limit = min(limit, maxLimit)
	// Окно запроса с запасом в одну свечу под формирующуюся
	end := c.now().UTC()
	start := end.Add(-time.Duration(limit+1) * step)

	params := url.Values{}
	params.Set("symbol", FormatSymbol(symbol))
	params.Set("type", intervals[p])
	params.Set("startAt", strconv.FormatInt(start.Unix(), 10))
	params.Set("endAt", strconv.FormatInt(end.Unix(), 10))

	root, err := api.GetJSON(ctx, c.httpClient, Name, c.baseURL+candlesEndpoint, params, c.userAgent)
	if err != nil {
		return nil, err
	}

	code := root.Get("code")
	if !code.Exists() {
		return nil, api.ParseError(Name, "missing code in response", nil)
	}
	if code.String() != successCode {
		return nil, api.ProviderError(Name, code.String()+": "+root.Get("msg").String())
	}

	data := root.Get("data")
	if !data.IsArray() {
		return nil, api.ParseError(Name, "data is missing", nil)
	}

	rows := data.Array()
	candles := make([]candle.Candle, 0, len(rows))
	for _, row := range rows {
		cndl, err := parseRow(row)
		if err != nil {
			return nil, err
		}
		candles = append(candles, cndl)
	}

	logger.Debug("📊 KuCoin: получено %d свечей %s %s", len(candles), symbol, p)
	return api.Finalize(Name, candles, limit)
}

// parseRow - [time(sec), open, close, high, low, volume, turnover]
func parseRow(row gjson.Result) (candle.Candle, error) {
	f := row.Array()
	if !row.IsArray() || len(f) < 5 {
		return candle.Candle{}, api.ParseError(Name, "candle row has unexpected shape", nil)
	}

	ts, err := api.UnixTime(Name, "time", f[0], time.Second)
	if err != nil {
		return candle.Candle{}, err
	}
	open, err := api.Decimal(Name, "open", f[1])
	if err != nil {
		return candle.Candle{}, err
	}
	closePrice, err := api.Decimal(Name, "close", f[2])
	if err != nil {
		return candle.Candle{}, err
	}
	high, err := api.Decimal(Name, "high", f[3])
	if err != nil {
		return candle.Candle{}, err
	}
	low, err := api.Decimal(Name, "low", f[4])
	if err != nil {
		return candle.Candle{}, err
	}

	c := candle.Candle{Open: open, High: high, Low: low, Close: closePrice, Timestamp: ts, Source: Name}
	if len(f) > 5 {
		if v, err := api.Decimal(Name, "volume", f[5]); err == nil {
			c.Volume = v
		}
	}
	return c, nil
}

// FormatSymbol приводит символ к виду BTC-USDT
func FormatSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	s = strings.ReplaceAll(s, "/", "-")
	if strings.Contains(s, "-") {
		return s
	}
	for _, quote := range quoteAssets {
		if strings.HasSuffix(s, quote) && len(s) > len(quote) {
			return s[:len(s)-len(quote)] + "-" + quote
		}
	}
	return s
}
