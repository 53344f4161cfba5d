package period

// Поддерживаемые периоды в минутах
const (
	Minutes1     = 1
	Minutes3     = 3
	Minutes5     = 5
	Minutes15    = 15
	Minutes30    = 30
	Minutes60    = 60   // 1 час
	Minutes120   = 120  // 2 часа
	Minutes240   = 240  // 4 часа
	Minutes360   = 360  // 6 часов
	Minutes720   = 720  // 12 часов
	Minutes1440  = 1440 // 1 день
	Minutes10080 = 7 * Minutes1440
)

// Поддерживаемые строковые представления
const (
	Period1m  = "1m"
	Period3m  = "3m"
	Period5m  = "5m"
	Period15m = "15m"
	Period30m = "30m"
	Period1h  = "1h"
	Period2h  = "2h"
	Period4h  = "4h"
	Period6h  = "6h"
	Period12h = "12h"
	Period1d  = "1d"
	Period1w  = "1w"
)

// Все поддерживаемые периоды
var AllPeriods = []string{
	Period1m,
	Period3m,
	Period5m,
	Period15m,
	Period30m,
	Period1h,
	Period2h,
	Period4h,
	Period6h,
	Period12h,
	Period1d,
	Period1w,
}

var periodMinutes = map[string]int{
	Period1m:  Minutes1,
	Period3m:  Minutes3,
	Period5m:  Minutes5,
	Period15m: Minutes15,
	Period30m: Minutes30,
	Period1h:  Minutes60,
	Period2h:  Minutes120,
	Period4h:  Minutes240,
	Period6h:  Minutes360,
	Period12h: Minutes720,
	Period1d:  Minutes1440,
	Period1w:  Minutes10080,
}
