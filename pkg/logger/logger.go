// pkg/logger/logger.go

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Уровни логирования
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelFatal = "FATAL"
)

// Logger - printf-обертка над logrus
type Logger struct {
	entry   *logrus.Logger
	logFile *os.File
}

// Options - параметры логгера
type Options struct {
	Path   string // пустой путь - только stdout
	Level  string
	Format string // text | json
	Debug  bool
	Output io.Writer
}

// NewLogger создает логгер, пишущий в stdout и (опционально) в файл
func NewLogger(opts Options) (*Logger, error) {
	l := &Logger{entry: logrus.New()}

	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil {
		level = logrus.InfoLevel
	}
	if opts.Debug && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	l.entry.SetLevel(level)

	switch strings.ToLower(opts.Format) {
	case "json":
		l.entry.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	default:
		l.entry.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
			ForceColors:     opts.Debug,
		})
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log dir: %w", err)
		}
		file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		l.logFile = file
		out = io.MultiWriter(out, file)
	}
	l.entry.SetOutput(out)

	return l, nil
}

// Методы для разных уровней
func (l *Logger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.entry.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

func (l *Logger) Fatal(format string, v ...interface{}) {
	l.entry.Fatalf(format, v...)
}

// Writer возвращает writer уровня INFO (для access-логов HTTP)
func (l *Logger) Writer() *io.PipeWriter {
	return l.entry.WriterLevel(logrus.InfoLevel)
}

// Status выводит блок статуса
func (l *Logger) Status(stats map[string]string) {
	l.Info("%s", strings.Repeat("─", 50))
	l.Info("📊 СТАТУС СИСТЕМЫ")
	for key, value := range stats {
		l.Info("   %-20s: %s", key, value)
	}
	l.Info("%s", strings.Repeat("─", 50))
}

// Signal логирует обнаруженный сигнал
func (l *Logger) Signal(symbol, interval, signal, trend, price string) {
	icon := "📈"
	if signal == "bearish" {
		icon = "📉"
	}
	l.entry.WithFields(logrus.Fields{
		"symbol":   symbol,
		"interval": interval,
		"trend":    trend,
	}).Infof("%s СИГНАЛ: %s %s (%s) по цене %s", icon, symbol, signal, interval, price)
}

func (l *Logger) Close() {
	if l.logFile != nil {
		l.logFile.Close()
	}
}
