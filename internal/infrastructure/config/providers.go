// /internal/infrastructure/config/providers.go
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProviderConfig - один провайдер свечей и его зеркала
type ProviderConfig struct {
	Name     string   `yaml:"name"`
	BaseURLs []string `yaml:"base_urls"`
	Enabled  *bool    `yaml:"enabled,omitempty"`
}

// IsEnabled - провайдер включен, если явно не выключен
func (p ProviderConfig) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

type providersFile struct {
	Providers []ProviderConfig `yaml:"providers"`
}

// DefaultProviders - встроенная цепочка провайдеров
func DefaultProviders() []ProviderConfig {
	return []ProviderConfig{
		{Name: "binance", BaseURLs: []string{"https://api.binance.com", "https://data-api.binance.vision"}},
		{Name: "bybit", BaseURLs: []string{"https://api.bybit.com", "https://api.bytick.com"}},
		{Name: "kucoin", BaseURLs: []string{"https://api.kucoin.com"}},
	}
}

// LoadProvidersFile читает YAML со списком провайдеров
func LoadProvidersFile(path string) ([]ProviderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read providers file: %w", err)
	}

	var file providersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse providers file %s: %w", path, err)
	}

	for i := range file.Providers {
		p := &file.Providers[i]
		p.Name = strings.ToLower(strings.TrimSpace(p.Name))
		if p.Name == "" {
			return nil, fmt.Errorf("providers file %s: entry %d has no name", path, i)
		}
		if p.IsEnabled() && len(p.BaseURLs) == 0 {
			return nil, fmt.Errorf("providers file %s: provider %s has no base_urls", path, p.Name)
		}
	}
	return file.Providers, nil
}

// ResolveProviders строит цепочку: источник - файл (или встроенный список),
// порядок и состав задает PROVIDERS
func ResolveProviders(order []string, file string) ([]ProviderConfig, error) {
	known := DefaultProviders()
	if file != "" {
		loaded, err := LoadProvidersFile(file)
		if err != nil {
			return nil, err
		}
		known = loaded
	}

	byName := make(map[string]ProviderConfig, len(known))
	for _, p := range known {
		if p.IsEnabled() {
			byName[p.Name] = p
		}
	}

	// без PROVIDERS - порядок файла
	if len(order) == 0 {
		var chain []ProviderConfig
		for _, p := range known {
			if p.IsEnabled() {
				chain = append(chain, p)
			}
		}
		return chain, nil
	}

	chain := make([]ProviderConfig, 0, len(order))
	seen := make(map[string]bool, len(order))
	for _, raw := range order {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || seen[name] {
			continue
		}
		p, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown or disabled provider %q", name)
		}
		seen[name] = true
		chain = append(chain, p)
	}
	return chain, nil
}
