package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rewritely/rewritely-be/internal/api/handlers"
	"github.com/rewritely/rewritely-be/internal/auth"
	"github.com/rewritely/rewritely-be/internal/llm"
	"github.com/rewritely/rewritely-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	frontendURL string,
	tokens *auth.TokenManager,
	userService services.UserServiceProvider,
	rewriteService services.RewriteServiceProvider,
	provider llm.Provider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	rewriteHandler := handlers.NewRewriteHandler(rewriteService)
	aiHandler := handlers.NewAIHandler(provider)
	healthHandler := handlers.NewHealthHandler()

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Get)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
			r.With(tokens.Middleware()).Get("/me", userHandler.GetMe)
		})

		r.Route("/resume-rewrites", func(r chi.Router) {
			r.Use(tokens.Middleware())
			r.Get("/", rewriteHandler.GetAll)
			r.Post("/", rewriteHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rewriteHandler.Get)
				r.Put("/", rewriteHandler.Update)
				r.Delete("/", rewriteHandler.Delete)
				r.Patch("/favorite", rewriteHandler.ToggleFavorite)
			})
		})

		// Model-backed endpoints
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware())
			r.Post("/upload-resume", aiHandler.UploadResume)
			r.Post("/rewrite-resume", aiHandler.RewriteResume)
			r.Post("/generate-star", aiHandler.GenerateStar)
		})
	})

	return r
}
