package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/felixge/httpsnoop"

	"crpg-api/config"
	"crpg-api/game"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	roster  *game.Roster
	rules   atomic.Pointer[config.Rules]
	metrics *Metrics

	router    *http.ServeMux
	config    *config.Config
	jwtSecret []byte
}

func NewServer(cfg *config.Config, rules *config.Rules) *Server {
	roster := game.NewRoster()
	s := &Server{
		roster:    roster,
		metrics:   NewMetrics(roster.Len),
		router:    http.NewServeMux(),
		config:    cfg,
		jwtSecret: cfg.JWTSecret,
	}
	s.SetRules(rules)

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/derive", s.middleware("derive", s.handleDerive))
	s.router.HandleFunc("/characters", s.middleware("characters", s.handleCreateCharacter))
	s.router.HandleFunc("/characters/", s.middleware("character", s.handleCharacterRoutes))
	s.router.HandleFunc("/metrics", s.middleware("metrics", s.handleMetrics))
}

// SetRules swaps the rules applied to incoming requests. A nil rules value
// restores the defaults.
func (s *Server) SetRules(rules *config.Rules) {
	if rules == nil {
		rules = config.DefaultRules()
	}
	s.rules.Store(rules)
}

func (s *Server) Rules() *config.Rules {
	return s.rules.Load()
}

// middleware wraps next with request logging, request metrics and CORS.
func (s *Server) middleware(route string, next http.HandlerFunc) http.HandlerFunc {
	cors := s.corsMiddleware(next)
	return func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(cors, w, r)

		s.metrics.ObserveRequest(route, m.Code)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"route", route,
			"status", m.Code,
			"bytes", m.Written,
			"duration", m.Duration,
		)
	}
}

func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.config.AllowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
