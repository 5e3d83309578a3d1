package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avolkov/storefront/internal/crypto"
	"github.com/avolkov/storefront/internal/server/handlers"
	"github.com/avolkov/storefront/internal/server/middleware"
	"github.com/avolkov/storefront/internal/server/storage/sqlite"
	"github.com/avolkov/storefront/internal/server/token"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "Address to listen on")
	dbPath := flag.String("db", "storefront.db", "Path to SQLite database")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := newLogger(*logLevel)

	if err := run(logger, *addr, *dbPath); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath string) error {
	secret := os.Getenv("STOREFRONT_JWT_SECRET")
	if secret == "" {
		return errors.New("STOREFRONT_JWT_SECRET environment variable is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	tokens := token.NewManager([]byte(secret), token.DefaultTTL)
	hasher := crypto.NewPasswordHasher()

	authHandler := handlers.NewAuthHandler(logger, store, hasher, tokens)
	catalogHandler := handlers.NewCatalogHandler(logger, store)
	orderHandler := handlers.NewOrderHandler(logger, store, store)
	adminHandler := handlers.NewAdminHandler(logger, store, store)
	healthHandler := handlers.NewHealthHandler(logger)

	// 10 attempts per minute per IP on credential endpoints
	limiter := middleware.NewRateLimiter(10, time.Minute, logger)
	defer limiter.Stop()

	auth := middleware.Auth(logger, tokens)
	adminOnly := middleware.AdminOnly(logger, store)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)

	mux.Handle("POST /api/v1/auth/register", limiter.Middleware(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/v1/auth/login", limiter.Middleware(http.HandlerFunc(authHandler.Login)))
	mux.Handle("GET /api/v1/auth/me", auth(http.HandlerFunc(authHandler.Me)))

	mux.HandleFunc("GET /api/v1/categories", catalogHandler.ListCategories)
	mux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct)

	mux.Handle("POST /api/v1/orders", auth(http.HandlerFunc(orderHandler.Create)))
	mux.Handle("GET /api/v1/orders", auth(http.HandlerFunc(orderHandler.ListMine)))

	admin := func(h http.HandlerFunc) http.Handler {
		return auth(adminOnly(h))
	}
	mux.Handle("POST /api/v1/admin/products", admin(adminHandler.CreateProduct))
	mux.Handle("PUT /api/v1/admin/products/{id}", admin(adminHandler.UpdateProduct))
	mux.Handle("DELETE /api/v1/admin/products/{id}", admin(adminHandler.DeleteProduct))
	mux.Handle("GET /api/v1/admin/orders", admin(adminHandler.ListOrders))

	handler := middleware.Recovery(logger)(middleware.Logging(logger)(mux))

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", addr, "version", Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func printVersion() {
	fmt.Printf("Storefront Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
