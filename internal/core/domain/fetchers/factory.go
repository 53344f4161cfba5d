// internal/core/domain/fetchers/factory.go
package fetchers

import (
	"fmt"
	"net/url"
	"time"

	"crypto-engulfing-alert-bot/internal/infrastructure/api"
	"crypto-engulfing-alert-bot/internal/infrastructure/api/exchanges/binance"
	"crypto-engulfing-alert-bot/internal/infrastructure/api/exchanges/bybit"
	"crypto-engulfing-alert-bot/internal/infrastructure/api/exchanges/kucoin"
	"crypto-engulfing-alert-bot/internal/infrastructure/config"
)

// ProviderFactory создает клиентов бирж по конфигурации
type ProviderFactory struct {
	timeout   time.Duration
	userAgent string
}

// NewProviderFactory создает фабрику с общими HTTP-настройками
func NewProviderFactory(timeout time.Duration, userAgent string) *ProviderFactory {
	return &ProviderFactory{timeout: timeout, userAgent: userAgent}
}

// New создает клиента провайдера name для адреса baseURL
func (f *ProviderFactory) New(name, baseURL string) (api.CandleProvider, error) {
	opts := api.ClientOptions{BaseURL: baseURL, Timeout: f.timeout, UserAgent: f.userAgent}

	switch name {
	case binance.Name:
		return binance.NewBinanceClient(opts), nil
	case bybit.Name:
		return bybit.NewBybitClient(opts), nil
	case kucoin.Name:
		return kucoin.NewKuCoinClient(opts), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// BuildChain разворачивает конфигурацию в цепочку: каждое зеркало - отдельное звено
func (f *ProviderFactory) BuildChain(providers []config.ProviderConfig) ([]api.CandleProvider, error) {
	var chain []api.CandleProvider
	for _, p := range providers {
		if !p.IsEnabled() {
			continue
		}
		for i, baseURL := range p.BaseURLs {
			client, err := f.New(p.Name, baseURL)
			if err != nil {
				return nil, err
			}
			if i > 0 {
				client = &mirror{CandleProvider: client, name: mirrorName(p.Name, baseURL)}
			}
			chain = append(chain, client)
		}
	}

	if len(chain) == 0 {
		return nil, fmt.Errorf("provider chain is empty")
	}
	return chain, nil
}

// mirror - резервный адрес того же провайдера
type mirror struct {
	api.CandleProvider
	name string
}

func (m *mirror) Name() string {
	return m.name
}

func mirrorName(provider, baseURL string) string {
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		return provider + "@" + u.Host
	}
	return provider + "@" + baseURL
}
