// Package usermanager предоставляет маршруты и жизненный цикл основного приложения.
package usermanager

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/user-manager/internal/http/handlers/user/fetch"
	"github.com/magabrotheeeer/user-manager/internal/http/handlers/user/health"
	"github.com/magabrotheeeer/user-manager/internal/http/handlers/user/insert"
	"github.com/magabrotheeeer/user-manager/internal/http/handlers/user/remove"
	"github.com/magabrotheeeer/user-manager/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/user-manager/internal/http/middlewarectx"
	userservice "github.com/magabrotheeeer/user-manager/internal/services/user"
)

// Лимит запросов к /users: 50 rps с запасом на всплеск в 100 запросов.
const (
	usersRateLimit = rate.Limit(50)
	usersRateBurst = 100
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, userService *userservice.UserService, checker health.ReadinessChecker, corsOrigin string, dev bool) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{corsOrigin},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
		}),
	)

	r.Route("/users", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, usersRateLimit, usersRateBurst))
		r.Get("/", fetch.New(logger, userService, dev).ServeHTTP)
		r.Post("/", insert.New(logger, userService, dev).ServeHTTP)
		r.Put("/{id}", update.New(logger, userService, dev).ServeHTTP)
		r.Delete("/{id}", remove.New(logger, userService, dev).ServeHTTP)
	})

	r.Get("/health", health.New(logger, checker).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
