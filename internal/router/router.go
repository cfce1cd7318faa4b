package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"go-bookstore/internal/config"
	"go-bookstore/internal/handler"
	"go-bookstore/internal/middleware"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Seller *handler.SellerHandler
	Book   *handler.BookHandler
	Audit  *handler.AuditHandler
	Docs   *handler.DocsHandler
	Health *handler.HealthHandler
}

func New(cfg *config.Config, log *slog.Logger, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	proxies := middleware.NewProxyTrust(cfg.TrustedProxies)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM, proxies)

	r.Use(middleware.Logging(log, proxies))
	r.Use(middleware.Recovery)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(chimw.StripSlashes)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.Health.Health)
	r.Get("/openapi.yaml", h.Docs.OpenAPI)
	r.Get("/swagger", h.Docs.SwaggerUI)

	requireAuth := authMiddleware.RequireAuth

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Post("/token", h.Auth.Token)

		api.Route("/seller", func(seller chi.Router) {
			seller.Get("/", h.Seller.List)
			seller.Post("/", h.Seller.Create)
			seller.With(requireAuth).Get("/me", h.Seller.Me)
			seller.With(requireAuth).Get("/me/activity", h.Audit.Activity)
			seller.Get("/{id}", h.Seller.Get)
			seller.With(requireAuth).Put("/{id}", h.Seller.Update)
			seller.With(requireAuth).Delete("/{id}", h.Seller.Delete)
		})

		api.Route("/books", func(books chi.Router) {
			books.Get("/", h.Book.List)
			books.With(requireAuth).Post("/", h.Book.Create)
			books.Get("/{id}", h.Book.Get)
			books.With(requireAuth).Put("/{id}", h.Book.Update)
			books.With(requireAuth).Delete("/{id}", h.Book.Delete)
		})
	})

	return r
}
