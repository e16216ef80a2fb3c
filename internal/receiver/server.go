// Package receiver exposes the notification service over HTTP so push
// gateways and scripts can deliver notifications and manage the feed.
package receiver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cristianoliveira/alonix-notify/internal/logging"
	"github.com/cristianoliveira/alonix-notify/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Server routes HTTP requests to a Service.
type Server struct {
	svc      *service.Service
	gatherer prometheus.Gatherer
	log      logging.Logger
}

// New returns a receiver. gatherer may be nil, which disables /metrics.
func New(svc *service.Service, gatherer prometheus.Gatherer, log logging.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	return &Server{svc: svc, gatherer: gatherer, log: log.With("component", "receiver")}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, s.requestLog)

	r.Get("/healthz", s.health)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Route("/notifications", func(r chi.Router) {
			r.Post("/", s.receive)
			r.Get("/", s.list)
			r.Delete("/", s.clear)
			r.Post("/{id}/read", s.markRead)
			r.Post("/{id}/unread", s.markUnread)
			r.Post("/{id}/open", s.open)
			r.Delete("/{id}", s.delete)
		})
		r.Route("/schedule", func(r chi.Router) {
			r.Post("/", s.schedule)
			r.Delete("/", s.cancelAllScheduled)
			r.Delete("/{id}", s.cancelScheduled)
		})
		r.Get("/badge", s.badge)
		r.Get("/preferences", s.getPreferences)
		r.Put("/preferences", s.putPreferences)
	})
	return r
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("receiver listening", "addr", addr)
		errCh <- srv.ListenAndServe()
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
		s.log.Info("receiver shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
