package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inekruz/MoneyNote/internal/adapter/http/controller"
	"github.com/inekruz/MoneyNote/internal/adapter/http/middleware"
	"github.com/inekruz/MoneyNote/internal/adapter/http/router"
	"github.com/inekruz/MoneyNote/internal/adapter/notify"
	"github.com/inekruz/MoneyNote/internal/adapter/repository/postgres"
	"github.com/inekruz/MoneyNote/internal/config"
	"github.com/inekruz/MoneyNote/internal/domain"
	"github.com/inekruz/MoneyNote/internal/metrics"
	"github.com/inekruz/MoneyNote/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(startupCtx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(startupCtx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	var publisher domain.PushPublisher
	if cfg.RedisAddr != "" {
		redisPublisher := notify.NewRedisPublisher(cfg.RedisAddr, cfg.PushChannel)
		defer redisPublisher.Close()
		publisher = redisPublisher
	} else {
		publisher = notify.NewNoopPublisher()
	}

	collector := metrics.NewCollector()

	transactionRepo := postgres.NewTransactionRepository(db)
	loanRepo := postgres.NewLoanRepository(db)

	profileService := usecase.NewProfileService(transactionRepo, loanRepo)
	creditService := usecase.NewCreditService(profileService, loanRepo, publisher, collector)

	creditController := controller.NewCreditController(creditService)
	healthController := controller.NewHealthController(db)

	mux := router.New(creditController, healthController, collector.Handler(), middleware.Auth(cfg.SecretKey))

	limiter := middleware.NewRateLimiter(30, time.Minute)
	defer limiter.Stop()

	handler := middleware.RequestID(middleware.RateLimit(limiter)(mux))

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("credit engine listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalf("server error: %v", err)
	case sig := <-quit:
		log.Printf("shutting down on signal %s", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
