// Package revenueaggregator предоставляет маршруты для основного приложения.
package revenueaggregator

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/revenue-aggregator/internal/http/handlers/customer/profile"
	"github.com/magabrotheeeer/revenue-aggregator/internal/http/handlers/dashboard"
	"github.com/magabrotheeeer/revenue-aggregator/internal/http/handlers/health"
	"github.com/magabrotheeeer/revenue-aggregator/internal/http/handlers/report/export"
	"github.com/magabrotheeeer/revenue-aggregator/internal/http/handlers/report/summary"
	"github.com/magabrotheeeer/revenue-aggregator/internal/http/handlers/subscription/projection"
	"github.com/magabrotheeeer/revenue-aggregator/internal/http/middlewarectx"
	reportservice "github.com/magabrotheeeer/revenue-aggregator/internal/services/report"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, reportService *reportservice.ReportService, tokenParser middlewarectx.TokenParser) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokenParser, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/dashboard/summary", dashboard.New(logger, reportService).ServeHTTP)
			r.Post("/reports/summary", summary.New(logger, reportService).ServeHTTP)
			r.Post("/reports/export", export.New(logger, reportService).ServeHTTP)
			r.Get("/subscriptions/projection", projection.New(logger, reportService).ServeHTTP)
			r.Post("/customers/profile", profile.New(logger, reportService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
