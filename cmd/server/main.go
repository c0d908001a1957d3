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

	"github.com/gin-gonic/gin"
	"github.com/nathanyu/bank-transfer/internal/bank"
	"github.com/nathanyu/bank-transfer/internal/config"
	"github.com/nathanyu/bank-transfer/internal/handler"
	"github.com/nathanyu/bank-transfer/internal/middleware"
	"github.com/nathanyu/bank-transfer/internal/queue"
	"github.com/nathanyu/bank-transfer/internal/store"
	"github.com/nathanyu/bank-transfer/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "bank-transfer"

func main() {
	cfg := config.Load()

	// Initialize structured logging
	telemetry.InitLogger(serviceName)

	// Initialize OpenTelemetry tracing
	cleanup, err := telemetry.InitTracer(serviceName)
	if err != nil {
		log.Printf("Warning: Failed to initialize tracer: %v", err)
	} else {
		defer cleanup()
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	log.Println("Starting bank transfer service...")

	// 1. Open the account store
	accountStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open account store: %v", err)
	}
	defer accountStore.Close()
	log.Printf("Account store ready (%s)", cfg.Store)

	// 2. Connect to NATS for transfer events (optional)
	var events bank.EventPublisher
	if cfg.NATSUrl != "" {
		log.Printf("Connecting to NATS at %s...", cfg.NATSUrl)
		publisher, err := queue.NewNATSPublisher(cfg.NATSUrl)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer publisher.Close()
		events = publisher
		log.Println("Connected to NATS")
	}

	// 3. Initialize the transfer service
	service := bank.NewService(accountStore, events)

	// 4. Initialize HTTP handler
	h := handler.NewHandler(service)
	verifier := middleware.NewStaticTokenVerifier(cfg.AuthToken)

	// 5. Setup Gin router with middleware
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Tracing())
	router.Use(middleware.Metrics())
	handler.SetupRoutes(router, h, verifier)

	// 6. Start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// 7. Start metrics server (separate port for Prometheus scraping)
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler: metricsMux,
	}

	go func() {
		log.Printf("HTTP server listening on port %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	go func() {
		log.Printf("Metrics server listening on port %d", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Metrics server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("HTTP server forced to shutdown: %v", err)
	}
	if err := metricsSrv.Shutdown(ctx); err != nil {
		log.Printf("Metrics server forced to shutdown: %v", err)
	}

	log.Println("Service stopped")
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store {
	case "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return store.NewRedisStore(ctx, cfg.RedisAddr)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}
