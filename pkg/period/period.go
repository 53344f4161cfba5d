// pkg/period/period.go
package period

import (
	"fmt"
	"strings"
	"time"
)

// Normalize приводит период к каноническому виду ("1H" -> "1h", "60m" -> "1h")
func Normalize(period string) (string, error) {
	p := strings.TrimSpace(period)
	// "1M" у бирж - месяц, а не минута
	if strings.HasSuffix(p, "M") {
		return "", fmt.Errorf("месячный период не поддерживается: %s", period)
	}

	p = strings.ToLower(p)
	if _, ok := periodMinutes[p]; ok {
		return p, nil
	}

	// Алиасы вида "60m", "240m", "1440m"
	if strings.HasSuffix(p, "m") {
		var minutes int
		if _, err := fmt.Sscanf(p, "%dm", &minutes); err == nil {
			for name, m := range periodMinutes {
				if m == minutes {
					return name, nil
				}
			}
		}
	}

	return "", fmt.Errorf("неизвестный период: %s", period)
}

// StringToMinutes конвертирует строковый период в минуты
func StringToMinutes(period string) (int, error) {
	p, err := Normalize(period)
	if err != nil {
		return 0, err
	}
	return periodMinutes[p], nil
}

// StringToDuration конвертирует строковый период в time.Duration с проверкой ошибки
func StringToDuration(period string) (time.Duration, error) {
	minutes, err := StringToMinutes(period)
	if err != nil {
		return 0, err
	}
	return MinutesToDuration(minutes), nil
}

// MinutesToDuration конвертирует минуты в time.Duration
func MinutesToDuration(minutes int) time.Duration {
	return time.Duration(minutes) * time.Minute
}

// IsValidPeriod проверяет, является ли период валидным
func IsValidPeriod(period string) bool {
	_, err := Normalize(period)
	return err == nil
}

// FormatPeriodForDisplay форматирует период для отображения
func FormatPeriodForDisplay(period string) string {
	minutes, err := StringToMinutes(period)
	if err != nil {
		return period
	}

	switch {
	case minutes == Minutes10080:
		return "1 неделя"
	case minutes < 60:
		if minutes == 1 {
			return "1 минута"
		}
		return fmt.Sprintf("%d минут", minutes)
	case minutes < Minutes1440:
		hours := minutes / 60
		if hours == 1 {
			return "1 час"
		} else if hours >= 2 && hours <= 4 {
			return fmt.Sprintf("%d часа", hours)
		}
		return fmt.Sprintf("%d часов", hours)
	default:
		return "1 день"
	}
}
