// internal/delivery/telegram/app/bot/formatters/number.go
package formatters

import (
	"github.com/shopspring/decimal"
)

// NumberFormatter форматирует цены
type NumberFormatter struct{}

// NewNumberFormatter создает новый форматтер чисел
func NewNumberFormatter() *NumberFormatter {
	return &NumberFormatter{}
}

// FormatDecimal - точность зависит от величины цены
func (f *NumberFormatter) FormatDecimal(price decimal.Decimal) string {
	abs := price.Abs()
	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		return price.StringFixed(2)
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return price.StringFixed(4)
	case abs.IsZero():
		return "0"
	default:
		return price.StringFixed(8)
	}
}
