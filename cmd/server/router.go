package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/studybuddy/studybuddy-api/internal/api"
	apimiddleware "github.com/studybuddy/studybuddy-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware, using the application dependencies to build the handlers.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	if len(app.config.Server.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   app.config.Server.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
	)
	noteHandler := api.NewNoteHandler(app.noteStore)
	flashcardHandler := api.NewFlashcardHandler(app.flashcardStore)
	sessionHandler := api.NewSessionHandler(app.sessionStore)

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Profile and friends
			r.Get("/auth/me", authHandler.Me)
			r.Put("/auth/me", authHandler.UpdateProfile)
			r.Get("/auth/me/friends", authHandler.ListFriends)
			r.Post("/auth/me/friends/{id}", authHandler.AddFriend)
			r.Delete("/auth/me/friends/{id}", authHandler.RemoveFriend)

			// Notes
			r.Route("/notes", func(r chi.Router) {
				r.Post("/", noteHandler.Create)
				r.Get("/", noteHandler.List)
				r.Get("/search", noteHandler.Search)
				r.Get("/{id}", noteHandler.Get)
				r.Put("/{id}", noteHandler.Update)
				r.Delete("/{id}", noteHandler.Delete)
				r.Patch("/{id}/archive", noteHandler.Archive)
			})

			// Flashcards
			r.Route("/flashcards", func(r chi.Router) {
				r.Post("/", flashcardHandler.Create)
				r.Get("/", flashcardHandler.List)
				r.Get("/review", flashcardHandler.Due)
				r.Get("/{id}", flashcardHandler.Get)
				r.Put("/{id}", flashcardHandler.Update)
				r.Delete("/{id}", flashcardHandler.Delete)
				r.Post("/{id}/review", flashcardHandler.Review)
			})

			// Study sessions
			r.Route("/study-sessions", func(r chi.Router) {
				r.Post("/", sessionHandler.Create)
				r.Get("/", sessionHandler.List)
				r.Get("/stats", sessionHandler.Stats)
				r.Get("/{id}", sessionHandler.Get)
				r.Put("/{id}", sessionHandler.Update)
				r.Delete("/{id}", sessionHandler.Delete)
				r.Patch("/{id}/complete", sessionHandler.Complete)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
