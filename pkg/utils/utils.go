// pkg/utils/utils.go
package utils

import (
	"fmt"
	"time"
)

// CandleTimeLayout - формат времени свечи в сообщениях
const CandleTimeLayout = "2006-01-02 15:04"

// FormatDuration форматирует продолжительность в читаемый вид
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%dс", int(d.Seconds()))
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dч %dм", hours, minutes)
	}
	return fmt.Sprintf("%dм", minutes)
}

// FormatCandleTime - время свечи в UTC для алертов
func FormatCandleTime(t time.Time) string {
	return t.UTC().Format(CandleTimeLayout)
}
