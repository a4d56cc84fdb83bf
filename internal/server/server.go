package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/monitorchuva/monitorchuva/internal/config"
	"github.com/monitorchuva/monitorchuva/internal/logger"
	"github.com/monitorchuva/monitorchuva/internal/monitor"
)

const maxRequestSize = 1024 * 1024

var limiter = rate.NewLimiter(rate.Every(time.Second/10), 20)

// Server exposes the dashboard, health and metrics endpoints alongside
// a manual cycle trigger.
type Server struct {
	server    *http.Server
	mon       *monitor.Monitor
	startTime time.Time

	// ctx bounds the lifetime of cycles triggered through POST /run,
	// so shutdown interrupts them like the scheduler's own cycles.
	ctx    context.Context
	cancel context.CancelFunc
}

func New(mon *monitor.Monitor) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{mon: mon, startTime: time.Now(), ctx: ctx, cancel: cancel}

	mux := http.NewServeMux()
	mux.Handle("/", securityHeadersMiddleware(rateLimitMiddleware(http.HandlerFunc(s.handleDashboard))))
	mux.Handle("/dashboard", securityHeadersMiddleware(rateLimitMiddleware(http.HandlerFunc(s.handleDashboard))))
	mux.Handle("/health", securityHeadersMiddleware(rateLimitMiddleware(http.HandlerFunc(s.handleHealth))))
	mux.Handle("/api/alerts", securityHeadersMiddleware(rateLimitMiddleware(http.HandlerFunc(s.handleAlerts))))
	mux.Handle("/api/log", securityHeadersMiddleware(rateLimitMiddleware(http.HandlerFunc(s.handleLog))))
	mux.Handle("/run", securityHeadersMiddleware(rateLimitMiddleware(http.HandlerFunc(s.handleRun))))
	mux.Handle("/metrics", securityHeadersMiddleware(rateLimitMiddleware(promhttp.Handler())))

	addr := config.GetServerAddress()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		if ip := net.ParseIP(host); ip != nil && !ip.IsLoopback() {
			if !config.AllowNonLoopbackServer() {
				fallback := config.DefaultServerHost + ":" + fmt.Sprintf("%d", config.DefaultServerPort)
				logger.Warn("Rejecting non-loopback server address, falling back to default",
					zap.String("requested_addr", addr),
					zap.String("fallback", fallback))
				addr = fallback
			}
		}
	}

	s.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  config.DefaultServerReadTimeout,
		WriteTimeout: config.DefaultServerWriteTimeout,
	}
	return s
}

// Start runs the listener in the background.
func (s *Server) Start() {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic in HTTP server", zap.Any("panic", r))
			}
		}()
		logger.Info("HTTP server listening", zap.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()
}

func (s *Server) Shutdown() {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(ctx)
}

// Handler returns the configured handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.mon.Status()
	payload := map[string]interface{}{
		"status":         "ok",
		"service":        "monitorchuva",
		"version":        config.Version,
		"uptimeSeconds":  int(time.Since(s.startTime).Seconds()),
		"running":        st.Running,
		"lastCycleRun":   formatRunTime(st.LastCycleRun),
		"lastSummaryRun": formatRunTime(st.LastSummaryRun),
		"cycleCount":     st.CycleCount,
		"summaryCount":   st.SummaryCount,
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sent": s.mon.Store().Entries(),
	})
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.mon.Messages.Recent(0))
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	go func() {
		if err := s.mon.RunCycle(s.ctx); err != nil {
			logger.Warn("Manual cycle failed", zap.Error(err))
		}
	}()
	writeJSON(w, http.StatusAccepted, map[string]string{"message": "cycle started"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}

func formatRunTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format(time.RFC3339)
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > maxRequestSize {
			http.Error(w, "Request too large", http.StatusRequestEntityTooLarge)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
