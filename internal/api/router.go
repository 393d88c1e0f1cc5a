package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lenderdesk/lenderdesk/internal/api/handlers"
	"github.com/lenderdesk/lenderdesk/internal/api/middleware"
	"github.com/lenderdesk/lenderdesk/internal/repository"
	"github.com/lenderdesk/lenderdesk/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	log *zap.Logger,
	lenderService *service.LenderService,
	productService *service.ProductService,
	matchingService *service.MatchingService,
	authService *service.AuthService,
	userRepo *repository.UserRepository,
	settingsRepo *repository.SettingsRepository,
	docTypeRepo *repository.DocumentTypeRepository,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(middleware.CORS)

	// Health checks (no auth required)
	r.Get("/health", handlers.Health)
	r.Get("/ready", handlers.Ready)

	// Create handlers
	lenderHandler := handlers.NewLenderHandler(lenderService)
	productHandler := handlers.NewProductHandler(productService)
	matchHandler := handlers.NewMatchHandler(matchingService)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userRepo)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)
	docTypeHandler := handlers.NewDocumentTypeHandler(docTypeRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints (no auth required)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Lender endpoints
			r.Route("/lenders", func(r chi.Router) {
				r.Get("/", lenderHandler.List)
				r.Post("/", lenderHandler.Create)
				r.Post("/import", lenderHandler.Import)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", lenderHandler.Get)
					r.Put("/", lenderHandler.Update)
					r.Delete("/", lenderHandler.Delete)
				})

				// Products nested under their lender
				r.Route("/{lenderID}/products", func(r chi.Router) {
					r.Get("/", productHandler.ListByLender)
					r.Post("/", productHandler.Create)
				})
			})

			// Product endpoints
			r.Route("/products/{id}", func(r chi.Router) {
				r.Get("/", productHandler.Get)
				r.Put("/", productHandler.Update)
				r.Delete("/", productHandler.Delete)
				r.Post("/evaluate", matchHandler.Evaluate)
			})

			// Matching
			r.Post("/match", matchHandler.Match)

			// Document types
			r.Get("/document-types", docTypeHandler.List)

			// Integration settings
			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.List)
				r.Get("/{provider}", settingsHandler.Get)
				r.With(middleware.RequireAdmin).Put("/{provider}", settingsHandler.Put)
			})

			// Staff users (admin only)
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", userHandler.List)
				r.Post("/", userHandler.Create)
				r.Get("/{id}", userHandler.Get)
				r.Patch("/{id}", userHandler.Update)
				r.Delete("/{id}", userHandler.Delete)
			})
		})
	})

	return r
}
