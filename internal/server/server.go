package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spacesedan/reviewpulse/internal/analysis"
)

type Server struct {
	httpServer *http.Server
}

// New wires the HTTP surface: health check, analysis intake, history, and
// Prometheus exposition. Every route sits behind the CORS middleware.
func New(addr string, analyzer *analysis.Analyzer, classifierHealthy *atomic.Bool, reg *prometheus.Registry) *Server {
	h := &handlers{
		analyzer:          analyzer,
		classifierHealthy: classifierHealthy,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", h.healthCheck)
	mux.HandleFunc("/api/analyze-review", h.analyzeReview)
	mux.HandleFunc("/api/reviews", h.listReviews)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           withCORS(mux),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the full middleware-wrapped handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
