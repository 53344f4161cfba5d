// internal/delivery/status/server.go
package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"crypto-engulfing-alert-bot/application/pipeline"
	"crypto-engulfing-alert-bot/application/scheduler"
	"crypto-engulfing-alert-bot/pkg/logger"
)

// ShutdownGrace - время на завершение запросов при остановке
const ShutdownGrace = 5 * time.Second

// Source - источник статуса пайплайна
type Source interface {
	Snapshot() pipeline.Status
	Healthy() bool
}

// SchedulerSource - источник статуса планировщика (опционально)
type SchedulerSource interface {
	Status() scheduler.Status
}

// Response - тело ответа /health
type Response struct {
	pipeline.Status
	Scheduler *scheduler.Status `json:"scheduler,omitempty"`
	Version   string            `json:"version,omitempty"`
}

// Server - HTTP-сервер статуса. Нужен и как health-check хостинга
type Server struct {
	source  Source
	sched   SchedulerSource
	version string
	router  *mux.Router
	handler http.Handler
	server  *http.Server
}

// NewServer создает сервер статуса
func NewServer(source Source, sched SchedulerSource, version string) *Server {
	s := &Server{
		source:  source,
		sched:   sched,
		version: version,
	}
	s.setupRoutes()

	var h http.Handler = s.router
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(h)
	s.handler = handlers.CombinedLoggingHandler(logger.GetLogger().Writer(), h)
	return s
}

func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()
	s.router.HandleFunc("/", s.handleHealth).Methods(http.MethodGet, http.MethodHead)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet, http.MethodHead)
	s.router.HandleFunc("/health/live", s.handleLive).Methods(http.MethodGet, http.MethodHead)
	s.router.HandleFunc("/health/ready", s.handleReady).Methods(http.MethodGet)
}

// Handler возвращает роутер с access-логом и восстановлением после паники
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start слушает порт в фоне
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ln)
}

// Serve обслуживает уже открытый listener в фоне
func (s *Server) Serve(ln net.Listener) error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("🌐 HTTP статус-сервер слушает %s", ln.Addr())

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("❌ HTTP статус-сервер: %v", err)
		}
	}()
	return nil
}

// Shutdown останавливает сервер с ожиданием ShutdownGrace
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, ShutdownGrace)
	defer cancel()

	logger.Info("🛑 Остановка HTTP статус-сервера")
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := Response{Status: s.source.Snapshot(), Version: s.version}
	if s.sched != nil {
		st := s.sched.Status()
		resp.Scheduler = &st
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleReady - 503, если последний цикл завершился ошибкой
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Snapshot()
	code := http.StatusOK
	if !s.source.Healthy() {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"status": snap.Status})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("⚠️ Ошибка кодирования ответа: %v", err)
	}
}
