package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Dr-Boom/KYT-Demo/internal/emitter"
	"github.com/Dr-Boom/KYT-Demo/internal/metrics"
	"github.com/Dr-Boom/KYT-Demo/internal/store"
)

// Config holds API server settings.
type Config struct {
	Port           int
	AllowedOrigins []string
	// Location is the time zone calendar-date filters are interpreted in.
	Location *time.Location
	// History serves ?source=redis on the audit endpoint. Nil disables it.
	History emitter.History
}

// Server exposes the demo state over HTTP.
type Server struct {
	router   chi.Router
	handlers *Handlers
	server   *http.Server
}

// NewServer creates a new API server.
func NewServer(cfg Config, st *store.Store, audit *emitter.MemoryLog) *Server {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		router:   chi.NewRouter(),
		handlers: NewHandlers(st, audit, cfg.History, cfg.Location),
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.setupMiddleware(cfg)
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware(cfg Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(instrument)
	s.router.Use(middleware.Recoverer)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", userHeader},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	h := s.handlers

	s.router.Get("/health", h.HealthCheck)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.ListTransactions)
			r.Get("/export", h.ExportTransactions)
			r.Get("/{id}", h.GetTransaction)
			r.Get("/{id}/alerts/summary", h.GetAlertSummary)
			r.Put("/{id}/status", h.UpdateTransactionStatus)
		})

		r.Get("/dashboard", h.GetDashboard)

		r.Route("/cases", func(r chi.Router) {
			r.Get("/", h.ListCases)
			r.Post("/", h.CreateCase)
			r.Get("/summary", h.GetCaseSummary)
			r.Get("/{id}", h.GetCase)
			r.Put("/{id}/status", h.UpdateCaseStatus)
			r.Put("/{id}/assignee", h.UpdateCaseAssignee)
			r.Get("/{id}/findings", h.ListFindings)
			r.Post("/{id}/findings", h.AddFinding)
			r.Delete("/{id}/findings/{findingID}", h.DeleteFinding)
		})

		r.Get("/rules", h.ListRules)

		r.Route("/screenings", func(r chi.Router) {
			r.Get("/", h.ListScreenings)
			r.Post("/", h.ScreenAddress)
			r.Get("/{id}", h.GetScreening)
		})

		r.Get("/exposures/{address}", h.GetExposure)
		r.Get("/audit", h.ListAudit)
	})
}

// Router returns the chi router.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	slog.Info("API server listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// instrument records request metrics labelled by route pattern.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		metrics.HTTPLatency.WithLabelValues(route).Observe(elapsed.Seconds())
		slog.Debug("HTTP request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
