// pkg/logger/global.go
package logger

import (
	"io"
	"sync"
)

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
	fallbackOnce sync.Once
	fallback     *Logger
)

func InitGlobal(opts Options) error {
	l, err := NewLogger(opts)
	if err != nil {
		return err
	}
	globalMu.Lock()
	old := globalLogger
	globalLogger = l
	globalMu.Unlock()
	if old != nil {
		old.Close()
	}
	return nil
}

// GetLogger возвращает глобальный логгер; до InitGlobal - консольный
func GetLogger() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	fallbackOnce.Do(func() {
		fallback, _ = NewLogger(Options{Level: "info"})
	})
	return fallback
}

// SetOutput перенаправляет вывод (используется в тестах)
func SetOutput(w io.Writer) {
	GetLogger().entry.SetOutput(w)
}

// Глобальные методы для удобства
func Debug(format string, v ...interface{}) {
	GetLogger().Debug(format, v...)
}

func Info(format string, v ...interface{}) {
	GetLogger().Info(format, v...)
}

func Warn(format string, v ...interface{}) {
	GetLogger().Warn(format, v...)
}

func Error(format string, v ...interface{}) {
	GetLogger().Error(format, v...)
}

func Signal(symbol, interval, signal, trend, price string) {
	GetLogger().Signal(symbol, interval, signal, trend, price)
}

func Close() {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger != nil {
		globalLogger.Close()
		globalLogger = nil
	}
}
