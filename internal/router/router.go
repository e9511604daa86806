// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// folio API. Reads are public; every mutation sits behind RequireAuth.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"folio/internal/auth"
	"folio/internal/content"
	"folio/internal/handlers"
	"folio/internal/middleware"
	"folio/internal/session"
	"folio/internal/storage"
)

// Deps holds everything the router wires into handlers.
type Deps struct {
	DB             handlers.Pinger
	Content        *content.Service
	Sessions       *session.Store // optional; nil disables cookie sessions
	Tokens         *auth.Issuer
	Files          *storage.Client // optional; nil disables uploads
	AllowedOrigins []string
	SecureCookies  bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	var files handlers.ObjectStore
	if d.Files != nil {
		files = d.Files
	}

	api := handlers.NewContent(d.Content, files)
	authH := handlers.NewAuth(d.Content, d.Sessions, d.Tokens)
	upload := handlers.NewUpload(files)

	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(corsOptions(d.AllowedOrigins)))
	r.Use(middleware.LoadSession(d.Sessions))
	r.Use(middleware.LoadBearer(d.Tokens, stampSource(d.Content)))
	r.Use(middleware.NewCSRF(d.SecureCookies))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not found"}`))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error":"Method not allowed"}`))
	})

	r.Get("/health", handlers.Health(d.DB))

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", api.ListCategories)
		r.Get("/tree", api.CategoryTree)
		r.With(middleware.RequireAuth).Post("/", api.CreateCategory)
		r.With(middleware.RequireAuth).Delete("/*", api.DeleteCategory)
	})

	r.Route("/videos", func(r chi.Router) {
		r.Get("/", api.ListVideos)
		r.Get("/{id}", api.GetVideo)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", api.CreateVideo)
			r.Patch("/{id}", api.UpdateVideo)
			r.Delete("/{id}", api.DeleteVideo)
		})
	})

	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/", api.ListPortfolio)
		r.Get("/{id}", api.GetPortfolioItem)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", api.CreatePortfolioItem)
			r.Patch("/{id}", api.UpdatePortfolioItem)
			r.Delete("/{id}", api.DeletePortfolioItem)
		})
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", api.GetSettings)
		r.Get("/rendered", api.RenderedSettings)
		r.Get("/{key}", api.GetSetting)
		r.With(middleware.RequireAuth).Patch("/", api.UpdateSetting)
	})

	r.With(middleware.RequireAuth).Post("/upload", upload.Image)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authH.Login)
		r.Post("/logout", authH.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", authH.Me)
			r.Post("/password", authH.ChangePassword)
			r.Post("/2fa/setup", authH.SetupTOTP)
			r.Post("/2fa/enable", authH.EnableTOTP)
		})
	})

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	// Browsers refuse credentialed requests to a wildcard origin.
	credentials := true
	for _, o := range origins {
		if o == "*" {
			credentials = false
		}
	}

	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.CSRFHeaderName},
		AllowCredentials: credentials,
		MaxAge:           300,
	}
}

// stampSource keeps a nil service from becoming a non-nil interface.
func stampSource(svc *content.Service) middleware.StampSource {
	if svc == nil {
		return nil
	}
	return svc
}
