// Package server provides the HTTP server and routing for the analytics service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/aristath/ecoledger/internal/events"
	"github.com/aristath/ecoledger/internal/metrics"
	"github.com/aristath/ecoledger/internal/modules/charts"
	chartshandlers "github.com/aristath/ecoledger/internal/modules/charts/handlers"
	"github.com/aristath/ecoledger/internal/scheduler"
	"github.com/aristath/ecoledger/internal/sources"
)

const statusCheckInterval = 60 * time.Second

// Config holds server configuration
type Config struct {
	Log      zerolog.Logger
	Port     int
	DevMode  bool
	Source   sources.Source
	Charts   *charts.Service
	Bus      *events.Bus
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer // defaults to prometheus.DefaultGatherer
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	port           int
	cfg            Config
	systemHandlers *SystemHandlers
	statusMonitor  *StatusMonitor
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("component", "server").Logger(),
		port:           cfg.Port,
		cfg:            cfg,
		systemHandlers: NewSystemHandlers(cfg.Source, cfg.Bus, cfg.Log),
	}

	if checker, ok := cfg.Source.(sources.HealthChecker); ok && cfg.Bus != nil {
		s.statusMonitor = NewStatusMonitor(cfg.Source.Name(), checker, cfg.Bus, cfg.Log)
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// SetRefreshJob registers the dashboard refresh job for manual triggering via API
func (s *Server) SetRefreshJob(job scheduler.Job) {
	s.systemHandlers.SetRefreshJob(job)
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.systemHandlers.HandleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))

	s.router.Route("/api", func(r chi.Router) {
		// Streams are long-lived: no timeout, no compression
		if s.cfg.Bus != nil {
			stream := NewEventsStreamHandler(s.cfg.Bus, s.cfg.Metrics, s.log)
			r.Get("/events/stream", stream.ServeHTTP)
			r.Get("/events/ws", stream.ServeWebSocket)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))
			if !s.cfg.DevMode {
				r.Use(middleware.Compress(5))
			}

			r.Route("/system", func(r chi.Router) {
				r.Get("/status", s.systemHandlers.HandleSystemStatus)
				r.Post("/jobs/refresh", s.systemHandlers.HandleTriggerRefresh)
			})

			if s.cfg.Charts != nil {
				chartshandlers.NewHandler(s.cfg.Charts, s.log).RegisterRoutes(r)
			}
		})
	})
}

// Start starts the HTTP server and background monitors
func (s *Server) Start() error {
	if s.statusMonitor != nil {
		s.statusMonitor.Start(statusCheckInterval)
		s.log.Info().Msg("Status monitor started")
	}

	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	if s.statusMonitor != nil {
		s.statusMonitor.Stop()
	}
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
