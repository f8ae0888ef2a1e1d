package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server exposes the cosmic variance calculator over HTTP as a small JSON
// API, plus Prometheus metrics on /metrics.
type Server struct {
	addr string
}

func NewServer(addr string) *Server {
	registerMetrics()
	return &Server{addr: addr}
}

// Handler builds the route table. Split out from Start so tests can drive it
// through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/variance", s.handleVariance)
	mux.HandleFunc("/api/variance/batch", s.handleVarianceBatch)
	mux.HandleFunc("/api/surveys", s.handleSurveys)
	mux.HandleFunc("/api/bins", s.handleBins)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

func (s *Server) Start() error {
	logrus.Infof("listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}
