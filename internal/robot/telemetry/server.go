// Package telemetry exposes the health and metrics endpoints consumed by the
// pit display. It carries no match-critical state; the robot runs fine with
// the server disabled.
package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/team6458/powerup/internal/pkg/metrics"
	"github.com/team6458/powerup/pkg/field"
	"github.com/team6458/powerup/pkg/log"
)

// AssignmentFunc reports the current plate assignment. It is called from the
// serving goroutine, so implementations must be safe for concurrent reads.
type AssignmentFunc func() field.Assignment

// Server serves /healthz, /readyz, /metrics and /assignment.
type Server struct {
	server *http.Server
	log    log.Logger
}

// NewServer builds the telemetry server on the given address.
func NewServer(addr string, assignment AssignmentFunc) *Server {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.HandleFunc("/assignment", func(w http.ResponseWriter, _ *http.Request) {
		a := assignment()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"assignment": a.String(),
			"known":      a.Known(),
		})
	}).Methods(http.MethodGet)

	return &Server{
		server: &http.Server{Addr: addr, Handler: r},
		log:    log.WithName("telemetry"),
	}
}

// Handler exposes the route table for tests.
func (s *Server) Handler() http.Handler { return s.server.Handler }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("starting telemetry server", "addr", s.server.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}
