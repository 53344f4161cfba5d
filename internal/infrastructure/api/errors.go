// internal/infrastructure/api/errors.go
package api

import (
	"errors"
	"fmt"
)

// Kind - категория ошибки получения свечей
type Kind string

const (
	KindNetwork  Kind = "network"
	KindHTTP     Kind = "http"
	KindParse    Kind = "parse"
	KindProvider Kind = "provider"
)

// Сентинелы для errors.Is
var (
	ErrNetwork  = errors.New("network error")
	ErrHTTP     = errors.New("http error")
	ErrParse    = errors.New("parse error")
	ErrProvider = errors.New("provider error")
)

// FetchError - ошибка одного провайдера; для координатора означает "пробуем следующий"
type FetchError struct {
	Provider   string
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("%s: http status %d: %s", e.Provider, e.StatusCode, e.Message)
	case KindProvider:
		return fmt.Sprintf("%s: provider error: %s", e.Provider, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s error: %s: %v", e.Provider, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Provider, e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is сопоставляет ошибку с сентинелом ее категории
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrHTTP:
		return e.Kind == KindHTTP
	case ErrParse:
		return e.Kind == KindParse
	case ErrProvider:
		return e.Kind == KindProvider
	}
	return false
}

func NetworkError(provider string, err error) *FetchError {
	return &FetchError{Provider: provider, Kind: KindNetwork, Message: "request failed", Err: err}
}

func HTTPError(provider string, status int, body string) *FetchError {
	return &FetchError{Provider: provider, Kind: KindHTTP, StatusCode: status, Message: truncate(body, 200)}
}

func ParseError(provider, msg string, err error) *FetchError {
	return &FetchError{Provider: provider, Kind: KindParse, Message: msg, Err: err}
}

func ProviderError(provider, msg string) *FetchError {
	return &FetchError{Provider: provider, Kind: KindProvider, Message: msg}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
