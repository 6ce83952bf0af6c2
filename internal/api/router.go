package api

import (
	"net/http"
	"time"
	"wings_cafe/internal/api/handler"
	"wings_cafe/internal/app/service"
	"wings_cafe/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	inventoryService *service.InventoryService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// The browser client is served from a different origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// JWT Auth Middleware Setup
	// Parses a token from "Authorization: Bearer T" and puts it in context;
	// enforcement happens in middleware.Authenticator on protected routes.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		// Auth routes (register/login public, check-session authenticated)
		authHandler := handler.NewAuthHandler(authService)
		authHandler.RegisterRoutes(api)

		// Product routes (all authenticated)
		productHandler := handler.NewProductHandler(inventoryService)
		api.Route("/products", productHandler.RegisterRoutes)

		// User listing (authenticated)
		userHandler := handler.NewUserHandler(authService)
		api.Route("/users", userHandler.RegisterRoutes)
	})

	return r
}
