// Package api exposes gulog's append/read/verify operations over REST.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the chi router for a server. Split out from StartServer
// so tests can drive handlers through httptest.
func NewRouter(server *Server, config ServerConfig, metrics *Metrics) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(requestIDMiddleware)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Record-Id", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(config.APIKey, metrics))

		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Log operations: append a payload, read it back, verify integrity
		r.Post("/records", metrics.InstrumentHandler("POST", "/api/v1/records", server.handleAppend))
		r.Get("/records/{id}", metrics.InstrumentHandler("GET", "/api/v1/records/{id}", server.handleRead))
		r.Get("/records/{id}/verify", metrics.InstrumentHandler("GET", "/api/v1/records/{id}/verify", server.handleVerify))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(client WALClient, config ServerConfig) error {
	// Initialize metrics
	metrics := NewMetrics()

	server := NewServer(client, config, metrics)
	router := NewRouter(server, config, metrics)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting gulog REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)

	return http.ListenAndServe(addr, router)
}
