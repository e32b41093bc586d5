package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-auth-service/internal/config"
	"go-auth-service/internal/handler"
	"go-auth-service/internal/middleware"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", healthHandler.Health)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":404,"errors":[{"message":"resource not found"}]}`))
	})

	r.Route("/api/{version}", func(api chi.Router) {
		api.Use(middleware.APIVersion)
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/login", authHandler.Login)
			ar.With(authMiddleware.RequireAuth).Post("/logout", authHandler.Logout)
			ar.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("admin")).Post("/revoke/user", authHandler.RevokeUser)
			ar.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("admin")).Post("/revoke/all", authHandler.RevokeAll)
		})

		api.With(authMiddleware.RequireAuth).Get("/users/me", userHandler.Me)
	})

	return r
}
