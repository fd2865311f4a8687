// Haven - Handcrafted Artisan Marketplace
// Copyright 2026 Caleb Morton (cmorton)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cmorton/haven

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cmorton/haven/internal/auth"
	"github.com/cmorton/haven/internal/authz"
	"github.com/cmorton/haven/internal/config"
	"github.com/cmorton/haven/internal/middleware"
	"github.com/cmorton/haven/internal/web"
)

// Router assembles the HTTP route tree.
type Router struct {
	cfg      *config.Config
	handler  *Handler
	authMW   *auth.Middleware
	enforcer *authz.Enforcer
	limiter  *auth.LoginLimiter
	pages    *web.Handler
}

// NewRouter wires the route tree dependencies.
func NewRouter(cfg *config.Config, handler *Handler, authMW *auth.Middleware, enforcer *authz.Enforcer, limiter *auth.LoginLimiter, pages *web.Handler) *Router {
	return &Router{
		cfg:      cfg,
		handler:  handler,
		authMW:   authMW,
		enforcer: enforcer,
		limiter:  limiter,
		pages:    pages,
	}
}

// Setup builds the full route tree: global middleware, the JSON API
// groups, the metrics endpoint, and the gated page routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   router.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	requirePolicy := authz.Middleware(router.enforcer)
	apiLimit := httprate.LimitByIP(router.cfg.Server.RateLimit, time.Minute)

	// Auth endpoints. Login carries the strictest limit on top of the
	// group-wide one.
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(apiLimit)
		r.Use(middleware.PrometheusMetrics)

		r.Post("/signup", router.handler.Signup)
		r.With(router.limiter.Middleware).Post("/login", router.handler.Login)
		r.Post("/logout", router.handler.Logout)
		r.With(router.authMW.Authenticate).Get("/me", router.handler.Me)
	})

	// Catalog reads are public; OptionalAuth lets an artisan see their
	// own drafts in the management listing.
	r.Route("/api/products", func(r chi.Router) {
		r.Use(apiLimit)
		r.Use(middleware.PrometheusMetrics)

		r.With(router.authMW.OptionalAuth).Get("/", router.handler.ListProducts)
		r.Get("/{id}", router.handler.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(router.authMW.Authenticate)
			r.Use(requirePolicy)
			r.Post("/", router.handler.CreateProduct)
			r.Put("/{id}", router.handler.UpdateProduct)
			r.Delete("/{id}", router.handler.DeleteProduct)
		})
	})

	r.Route("/api/reviews", func(r chi.Router) {
		r.Use(apiLimit)
		r.Use(middleware.PrometheusMetrics)

		r.Get("/", router.handler.ListReviews)
		r.Get("/{id}", router.handler.GetReview)

		r.Group(func(r chi.Router) {
			r.Use(router.authMW.Authenticate)
			r.Use(requirePolicy)
			r.Post("/", router.handler.CreateReview)
			r.Put("/{id}", router.handler.UpdateReview)
			r.Delete("/{id}", router.handler.DeleteReview)
		})
	})

	r.Route("/api/profiles", func(r chi.Router) {
		r.Use(apiLimit)
		r.Use(middleware.PrometheusMetrics)

		r.Get("/", router.handler.ListProfiles)
		r.Get("/artisan/{slug}", router.handler.GetArtisanBySlug)
		r.Get("/{id}", router.handler.GetProfile)
		r.With(router.authMW.Authenticate).Put("/{id}", router.handler.UpdateProfile)
	})

	r.Route("/api/customers", func(r chi.Router) {
		r.Use(apiLimit)
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.authMW.Authenticate)
		r.Use(requirePolicy)

		r.Get("/{id}/orders", router.handler.ListCustomerOrders)
		r.Get("/{id}/reviews", router.handler.ListCustomerReviews)
	})

	r.Route("/api/search", func(r chi.Router) {
		r.Use(apiLimit)
		r.Use(middleware.PrometheusMetrics)
		r.Get("/", router.handler.Search)
	})

	// Health probes get a generous limit so monitors never trip the API
	// budget.
	r.Route("/api/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, time.Minute))
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Server-rendered pages behind the navigation gate.
	r.Mount("/", router.pages.Routes())

	return r
}
