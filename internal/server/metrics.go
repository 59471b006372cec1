package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewMetricsHandler serves metrics at GET /metrics.
func NewMetricsHandler(metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", metrics)
	return r
}
