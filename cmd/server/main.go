package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketresale/config"
	deliveryhttp "ticketresale/internal/delivery/http"
	"ticketresale/internal/delivery/http/controllers"
	"ticketresale/internal/repository/postgres"
	"ticketresale/internal/services"
)

// @title Ticket Resale API
// @version 1.0
// @description Events and second-hand ticket listings.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		config.NewLogger("development").Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	db, err := postgres.Open(ctx, cfg.DBUrl, postgres.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	cancel()
	if db == nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err != nil {
		logger.Warn("database not reachable at startup", "err", err)
	}

	eventRepo := postgres.NewEventRepository(db)
	sellerRepo := postgres.NewSellerRepository(db)
	listingService := services.NewListingService(eventRepo, sellerRepo, postgres.NewTransactor(db), cfg.RequestTimeout)
	initializer := services.NewInitializer(postgres.NewSchemaStore(db), logger, cfg.RequestTimeout)

	// A failure here is logged by the initializer; GET /api/init-db retries it.
	_, _ = initializer.Initialize(context.Background())

	router := deliveryhttp.NewRouter(
		controllers.NewEventController(logger, listingService),
		controllers.NewSellerController(logger, listingService),
		controllers.NewListingController(logger, listingService),
		controllers.NewSystemController(logger, initializer, db, cfg.RequestTimeout),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           deliveryhttp.WithMiddleware(logger, cfg.AllowedOrigins, router),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "err", err)
		return
	}
	logger.Info("server stopped")
}
