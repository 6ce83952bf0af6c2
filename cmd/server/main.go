package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"wings_cafe/internal/api"
	"wings_cafe/internal/app/service"
	"wings_cafe/internal/common/security"
	"wings_cafe/internal/domain/repository"
	"wings_cafe/internal/platform/cache"
	"wings_cafe/internal/platform/config"
	"wings_cafe/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	database.Migrate()

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	productRepo := repository.NewPgProductRepository(database.DB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo)
	productCache := cache.NewProductCache(cache.RDB, config.AppConfig.ProductCacheTTL)
	inventoryService := service.NewInventoryService(productRepo, productCache)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, inventoryService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
