package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/osu-parks/parks-api/internal/api"
	apiMiddleware "github.com/osu-parks/parks-api/internal/api/middleware"
)

// APIPrefix is the path every resource route is mounted under.
const APIPrefix = "/api/v1"

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.metrics.Middleware)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)

	pages := app.config.Pagination
	parkHandler := api.NewParkHandler(app.parkStore, app.schema, app.serializer, pages, app.logger)
	ownerHandler := api.NewOwnerHandler(app.ownerStore, app.schema, app.serializer, pages, app.logger)
	authHandler := api.NewAuthHandler(app.authenticator, app.jwtService, app.logger)
	healthHandler := api.NewHealthHandler(app.db, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.logger)

	r.Route(APIPrefix, func(r chi.Router) {
		r.Post("/auth/token", authHandler.Token)

		r.Route("/parks", func(r chi.Router) {
			r.Get("/", parkHandler.List)
			r.Get("/{"+api.ParamParkID+"}", parkHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/", parkHandler.Create)
				r.Patch("/{"+api.ParamParkID+"}", parkHandler.Update)
				r.Delete("/{"+api.ParamParkID+"}", parkHandler.Delete)
			})
		})

		r.Route("/owners", func(r chi.Router) {
			r.Get("/", ownerHandler.List)
			r.Get("/{"+api.ParamOwnerID+"}", ownerHandler.Get)
			r.Get("/{"+api.ParamOwnerID+"}/parks", parkHandler.ListByOwner)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/", ownerHandler.Create)
				r.Patch("/{"+api.ParamOwnerID+"}", ownerHandler.Update)
				r.Delete("/{"+api.ParamOwnerID+"}", ownerHandler.Delete)
			})
		})
	})

	r.Get("/health", healthHandler.Check)
	r.Handle("/metrics", app.metrics.Handler())

	return r
}
