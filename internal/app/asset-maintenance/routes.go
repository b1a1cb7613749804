package assetmaintenance

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация спецификации Swagger.
	_ "github.com/magabrotheeeer/asset-maintenance/docs"

	"github.com/magabrotheeeer/asset-maintenance/internal/config"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/handlers/analytics"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/handlers/dashboard"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/handlers/equipment/create"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/handlers/equipment/list"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/handlers/equipment/read"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/handlers/equipment/remove"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/handlers/equipment/update"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/handlers/health"
	maintenanceadd "github.com/magabrotheeeer/asset-maintenance/internal/http/handlers/maintenance/add"
	maintenancelist "github.com/magabrotheeeer/asset-maintenance/internal/http/handlers/maintenance/list"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/middlewarectx"
	"github.com/magabrotheeeer/asset-maintenance/internal/metrics"
	analyticsservice "github.com/magabrotheeeer/asset-maintenance/internal/services/analytics"
	equipmentservice "github.com/magabrotheeeer/asset-maintenance/internal/services/equipment"
)

// Services — зависимости обработчиков.
type Services struct {
	Equipment   *equipmentservice.Service
	Analytics   *analyticsservice.Service
	TokenParser middlewarectx.TokenParser // nil отключает аутентификацию
	RateLimit   config.RateLimit
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		metrics.Middleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)

		r.Group(func(r chi.Router) {
			if s.TokenParser != nil {
				r.Use(middlewarectx.JWTMiddleware(s.TokenParser, logger))
			}
			r.Use(middlewarectx.RateLimitMiddleware(logger, s.RateLimit.RPS, s.RateLimit.Burst))

			r.Get("/equipment", list.New(logger, s.Equipment).ServeHTTP)
			r.Post("/equipment", create.New(logger, s.Equipment).ServeHTTP)
			r.Get("/equipment/{id}", read.New(logger, s.Equipment).ServeHTTP)
			r.Put("/equipment/{id}", update.New(logger, s.Equipment).ServeHTTP)
			r.Delete("/equipment/{id}", remove.New(logger, s.Equipment).ServeHTTP)
			r.Get("/equipment/{id}/maintenance", maintenancelist.New(logger, s.Equipment).ServeHTTP)
			r.Post("/equipment/{id}/maintenance", maintenanceadd.New(logger, s.Equipment).ServeHTTP)

			r.Get("/dashboard", dashboard.New(logger, s.Analytics).ServeHTTP)
			r.Get("/analytics", analytics.New(logger, s.Analytics).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
