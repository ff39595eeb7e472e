// Package main is the entry point for the EDR Solution API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"edr/internal/domain/auth"
	"edr/internal/domain/dashboard"
	"edr/internal/domain/hr"
	"edr/internal/domain/interventions"
	"edr/internal/domain/inventory"
	"edr/internal/domain/projects"
	"edr/internal/domain/quotes"
	"edr/internal/domain/settings"
	"edr/internal/domain/suppliers"
	v1 "edr/internal/infrastructure/http/v1"
	"edr/internal/infrastructure/storage"
	"edr/pkg/logger"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting edr server")

	// --- Storage backend ---
	storageCfg := storage.Config{
		Kind:        storage.Kind(getEnv("STORAGE_BACKEND", string(storage.KindMemory))),
		DSN:         getEnv("DATABASE_URL", ""),
		TablePrefix: getEnv("TABLE_PREFIX", ""),
		Latency:     getEnvDuration("STORAGE_LATENCY", 0),
	}
	backend, err := storage.New(ctx, storageCfg)
	if err != nil {
		log.Fatalw("failed to initialize storage backend", "error", err)
	}
	defer backend.Close()
	log.Infow("storage backend ready", "kind", string(storageCfg.Kind))

	// --- Auth ---
	jwtSecret := getEnv("JWT_SECRET", "change-me-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))
	authService := auth.NewService(backend.Users, jwtService, auth.DefaultServiceConfig())

	adminEmail := getEnv("ADMIN_EMAIL", "admin@edr-solution.fr")
	adminPassword := getEnv("ADMIN_PASSWORD", "changeme123")
	if err := authService.EnsureAdmin(ctx, adminEmail, adminPassword); err != nil {
		log.Fatalw("failed to seed admin account", "error", err)
	}

	// --- Domain services ---
	settingsService := settings.NewService(backend.Settings, backend.Trail)
	interventionService := interventions.NewService(backend.Interventions, backend.TxManager, backend.Trail)
	quoteService := quotes.NewService(backend.Quotes, backend.TxManager, backend.Trail, backend.Numerator, settingsService)
	inventoryService := inventory.NewService(backend.Inventory, backend.TxManager, backend.Trail)
	supplierService := suppliers.NewService(backend.Suppliers, backend.TxManager, backend.Trail)
	employeeService := hr.NewEmployeeService(backend.Employees, backend.TxManager, backend.Trail)
	leaveService := hr.NewLeaveService(backend.Leaves, backend.Employees, backend.TxManager, backend.Trail)
	projectService := projects.NewService(backend.Projects, backend.TxManager, backend.Trail)
	dashboardService := dashboard.NewService(backend.Interventions, backend.Quotes, backend.Inventory, backend.Trail)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:         log,
		AuthService:    authService,
		Interventions:  interventionService,
		Quotes:         quoteService,
		Inventory:      inventoryService,
		Suppliers:      supplierService,
		Employees:      employeeService,
		Leaves:         leaveService,
		Projects:       projectService,
		Settings:       settingsService,
		Dashboard:      dashboardService,
		Ready: func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return backend.Ping(pingCtx)
		},
		AllowedOrigins: splitEnv("CORS_ORIGINS"),
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
