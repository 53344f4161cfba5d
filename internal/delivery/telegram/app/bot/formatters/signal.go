// internal/delivery/telegram/app/bot/formatters/signal.go
package formatters

import (
	"fmt"
	"strings"
	"time"

	"crypto-engulfing-alert-bot/internal/core/domain/signals"
	"crypto-engulfing-alert-bot/pkg/period"
	"crypto-engulfing-alert-bot/pkg/utils"
)

// SignalFormatter отвечает за форматирование сигналов поглощения
type SignalFormatter struct {
	numberFormatter *NumberFormatter
}

// NewSignalFormatter создает новый форматтер сигналов
func NewSignalFormatter() *SignalFormatter {
	return &SignalFormatter{
		numberFormatter: NewNumberFormatter(),
	}
}

// Title - короткий заголовок алерта
func (f *SignalFormatter) Title(alert signals.Alert) string {
	return fmt.Sprintf("%s %s %s", alert.Signal.Icon(), alert.Signal.Label(), alert.Symbol)
}

// FormatAlert форматирует алерт в Markdown для Telegram
func (f *SignalFormatter) FormatAlert(alert signals.Alert) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s *%s*\n\n", alert.Signal.Icon(), alert.Signal.Label())
	fmt.Fprintf(&b, "📊 Символ: *%s*\n", EscapeMarkdown(alert.Symbol))
	fmt.Fprintf(&b, "⏱ Интервал: %s\n", period.FormatPeriodForDisplay(alert.Interval))
	fmt.Fprintf(&b, "💰 Цена закрытия: `%s`\n", f.numberFormatter.FormatDecimal(alert.Price))
	fmt.Fprintf(&b, "📈 Тренд: %s\n", alert.Trend.Label())
	if alert.Source != "" {
		fmt.Fprintf(&b, "🏦 Источник: %s\n", EscapeMarkdown(alert.Source))
	}
	if !alert.CandleTime.IsZero() {
		fmt.Fprintf(&b, "🕐 Свеча: %s UTC\n", utils.FormatCandleTime(alert.CandleTime))
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatStartup - сообщение о запуске бота
func (f *SignalFormatter) FormatStartup(symbol, interval, version string, started time.Time) string {
	return fmt.Sprintf("🚀 *Бот запущен* (v%s)\n\n📊 Символ: *%s*\n⏱ Интервал: %s\n🕐 %s UTC",
		version, EscapeMarkdown(symbol), period.FormatPeriodForDisplay(interval), utils.FormatCandleTime(started))
}

// PlainText убирает разметку Markdown (для push-уведомлений)
func PlainText(markdown string) string {
	replacer := strings.NewReplacer("*", "", "`", "", "\\_", "_", "\\[", "[")
	return replacer.Replace(markdown)
}

// EscapeMarkdown экранирует спецсимволы Markdown v1
func EscapeMarkdown(s string) string {
	replacer := strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")
	return replacer.Replace(s)
}
