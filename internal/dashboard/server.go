// Package dashboard serves the watch-history views as a JSON API for a chart
// frontend. The dataset is loaded once and never mutated; every request
// filters and aggregates from scratch.
package dashboard

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/runnerr0/watchlog/internal/config"
	"github.com/runnerr0/watchlog/internal/history"
	"github.com/runnerr0/watchlog/internal/logger"
	"github.com/runnerr0/watchlog/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

// Server is the dashboard HTTP API over one in-memory dataset.
type Server struct {
	events  []history.WatchEvent
	cfg     config.DashboardConfig
	log     *logger.Logger
	metrics *metrics.Metrics
	mux     *chi.Mux
}

// New builds the router for events. m may be nil, in which case /metrics is
// not mounted.
func New(events []history.WatchEvent, cfg config.DashboardConfig, log *logger.Logger, m *metrics.Metrics) *Server {
	if log == nil {
		log = logger.Named("dashboard")
	}
	s := &Server{
		events:  events,
		cfg:     cfg,
		log:     log,
		metrics: m,
		mux:     chi.NewRouter(),
	}
	if m != nil {
		m.DatasetSize.Set(float64(len(events)))
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.mux
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.NoCache)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(s.requestLog)

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/range", s.instrument("range", s.handleRange))
		r.Get("/channels", s.instrument("channels", s.handleChannels))
		r.Get("/hourly", s.instrument("hourly", s.handleHourly))
		r.Get("/daily", s.instrument("daily", s.handleDaily))
		r.Get("/monthly", s.instrument("monthly", s.handleMonthly))
		r.Get("/views", s.instrument("views", s.handleViews))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, errors.New("no such endpoint"))
	})
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.mux }

// Addr returns host:port from the dashboard config.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// Run listens on Addr and blocks until ctx is cancelled or the listener
// fails. Cancellation triggers a graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Int("events", len(s.events)).Msg("dashboard listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info().Msg("dashboard shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// instrument records request count by status code and view latency.
func (s *Server) instrument(view string, h http.HandlerFunc) http.HandlerFunc {
	if s.metrics == nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		h(ww, r)
		s.metrics.ViewDur.WithLabelValues(view).Observe(time.Since(start).Seconds())
		s.metrics.ViewRequests.WithLabelValues(view, strconv.Itoa(ww.Status())).Inc()
	}
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
