// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	// Registers the OpenAPI document served under /swagger.
	_ "github.com/tomtom215/sensorgrid/docs"
	"github.com/tomtom215/sensorgrid/internal/auth"
	"github.com/tomtom215/sensorgrid/internal/middleware"
)

// Router assembles the handler, auth middleware and chi middleware.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	chiMiddleware *ChiMiddleware
	perfMon       *middleware.PerformanceMonitor
	maxBodyBytes  int64
}

// NewRouter creates a router. perfMon may be nil.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, chiMiddleware *ChiMiddleware, perfMon *middleware.PerformanceMonitor, maxBodyBytes int64) *Router {
	return &Router{
		handler:       handler,
		auth:          authMiddleware,
		chiMiddleware: chiMiddleware,
		perfMon:       perfMon,
		maxBodyBytes:  maxBodyBytes,
	}
}

// SetupChi builds the HTTP handler.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(auditSource)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.PrometheusMetrics)
	if router.perfMon != nil {
		r.Use(router.perfMon.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusNotFound, ErrCodeNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.MaxBodyBytes(router.maxBodyBytes))

		r.Route("/health", func(r chi.Router) {
			r.Get("/", router.handler.Health)
			r.Get("/live", router.handler.HealthLive)
			r.Get("/ready", router.handler.HealthReady)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitAdmin())
			r.Use(router.auth.RequireAdmin)

			r.Post("/companies", router.handler.AdminCreateCompany)
			r.Get("/companies", router.handler.AdminListCompanies)
			r.Post("/locations", router.handler.AdminCreateLocation)
			r.Post("/sensors", router.handler.AdminCreateSensor)
			r.Get("/audit", router.handler.AdminAuditEvents)
			r.Get("/stats", router.handler.AdminStats)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitAPI())
			r.Use(router.auth.RequireCompany)
			r.Use(chimiddleware.Compress(5, "application/json"))

			r.Route("/locations", func(r chi.Router) {
				r.Post("/", router.handler.CreateLocation)
				r.Get("/", router.handler.ListLocations)
				r.Get("/{id}", router.handler.GetLocation)
				r.Put("/{id}", router.handler.UpdateLocation)
				r.Delete("/{id}", router.handler.DeleteLocation)
			})

			r.Route("/sensors", func(r chi.Router) {
				r.Post("/", router.handler.CreateSensor)
				r.Get("/", router.handler.ListSensors)
				r.Get("/{id}", router.handler.GetSensor)
				r.Put("/{id}", router.handler.UpdateSensor)
				r.Delete("/{id}", router.handler.DeleteSensor)
				r.Post("/{id}/rotate-key", router.handler.RotateSensorKey)
			})

			r.Get("/sensor_data", router.handler.GetSensorData)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitIngest())
			r.Use(router.auth.OptionalSensor)

			r.Post("/sensor_data", router.handler.PostSensorData)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
