// Package http assembles the REST surface: route registration and the
// middleware chain around it.
package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/horolog/horolog/infrastructure/config"
	"github.com/horolog/horolog/infrastructure/http/handler"
	"github.com/horolog/horolog/infrastructure/http/middleware"
	"github.com/horolog/horolog/metrics"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Products *handler.ProductHandler
	Export   *handler.ExportHandler
	Audit    *handler.AuditHandler
	Stats    *handler.StatsHandler
	Auth     *handler.AuthHandler
}

// NewRouter wires all routes. Reads and mutations both require a principal;
// only login, health, and the scrape endpoint are open.
func NewRouter(cfg *config.Config, h Handlers, authMW *middleware.AuthMiddleware, rateLimitMW *middleware.RateLimitMiddleware) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", rateLimitMW.LimitLogin(h.Auth.Login)).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", authMW.RequireAuth(h.Auth.Me)).Methods(http.MethodGet)

	api.HandleFunc("/products", authMW.RequireAuth(h.Products.List)).Methods(http.MethodGet)
	api.HandleFunc("/products", authMW.RequireAuth(h.Products.Create)).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}", authMW.RequireAuth(h.Products.Get)).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", authMW.RequireAuth(h.Products.Update)).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", authMW.RequireAuth(h.Products.Delete)).Methods(http.MethodDelete)

	api.HandleFunc("/export/csv", authMW.RequireAuth(h.Export.CSV)).Methods(http.MethodGet)

	api.HandleFunc("/audit", authMW.RequireAuth(h.Audit.List)).Methods(http.MethodGet)
	api.HandleFunc("/audit/actors", authMW.RequireAuth(h.Audit.Actors)).Methods(http.MethodGet)

	api.HandleFunc("/dashboard/stats", authMW.RequireAuth(h.Stats.Dashboard)).Methods(http.MethodGet)

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"healthy"}`)
	}).Methods(http.MethodGet)

	r.Use(middleware.MetricsMiddleware)

	var chained http.Handler = r
	chained = middleware.CorrelationIDMiddleware(chained)
	if cfg.CORSEnabled && len(cfg.CORSAllowedOrigins) > 0 {
		chained = middleware.CORSMiddleware(chained, cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials)
	}
	return chained
}
