// internal/core/domain/fetchers/types.go
package fetchers

import (
	"errors"
	"fmt"
	"strings"
)

// MinCandles - минимум свечей для анализа паттерна
const MinCandles = 2

// ErrInsufficientCandles - провайдер вернул меньше двух свечей
var ErrInsufficientCandles = errors.New("insufficient candles")

// Attempt - результат попытки одного провайдера
type Attempt struct {
	Provider string
	Err      error
}

// AllProvidersFailedError - ни один провайдер не вернул пригодных данных
type AllProvidersFailedError struct {
	Symbol   string
	Interval string
	Attempts []Attempt
}

func (e *AllProvidersFailedError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("all providers failed for %s %s: no providers configured", e.Symbol, e.Interval)
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("[%s] %v", a.Provider, a.Err))
	}
	return fmt.Sprintf("all providers failed for %s %s: %s", e.Symbol, e.Interval, strings.Join(parts, "; "))
}

// Unwrap позволяет errors.Is/As по ошибкам отдельных провайдеров
func (e *AllProvidersFailedError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}
