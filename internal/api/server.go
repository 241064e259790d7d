// Package api exposes the read-only HTTP surface: weekly leaderboard,
// per-user stats and quests, health, and Prometheus metrics. All writes
// stay on the ledger path behind the CLI.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"levelup/internal/clock"
	"levelup/internal/engine"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "levelup_http_requests_total",
	Help: "HTTP requests served, by route and status class.",
}, []string{"route", "status"})

// Server is the LevelUp HTTP API server.
type Server struct {
	db  *sql.DB
	clk *clock.Clock
	log *zap.Logger
}

func NewServer(db *sql.DB, clk *clock.Clock, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{db: db, clk: clk, log: log}
}

// service builds a ledger view bound to one user. The engine is cheap
// to construct; handlers get a fresh one per request.
func (s *Server) service(userID string) *engine.Service {
	svc := engine.NewService(s.db, s.clk)
	if userID != "" {
		svc.SetUser(userID)
	}
	return svc
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/stats/{user}", s.handleStats)
		r.Get("/quests/{user}", s.handleQuests)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		requestsTotal.WithLabelValues(route, http.StatusText(ww.Status())).Inc()
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
