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

	"reciteflow-backend/internal/catalog"
	"reciteflow-backend/internal/config"
	"reciteflow-backend/internal/database"
	"reciteflow-backend/internal/handlers"
	"reciteflow-backend/internal/middleware"
	"reciteflow-backend/internal/router"
	"reciteflow-backend/internal/schedule"
	"reciteflow-backend/internal/scheduler"
	"reciteflow-backend/internal/session"
	"reciteflow-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting ReciteFlow Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Redis Client ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 3: Initialize Scheduler Client ────
	schedulerClient := scheduler.NewClient(cfg.SchedulerURL, cfg.SchedulerToken)
	log.Println("✓ Scheduler client initialized")

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	catalogService := catalog.NewService(
		catalog.NewRedisCache(redisClient),
		cfg.CatalogURL,
		cfg.CatalogFallbackURL,
		time.Duration(cfg.CatalogCacheTTLHours)*time.Hour,
	)
	assembler := schedule.NewAssembler(schedulerClient)

	// ──── Step 4: Start WebSocket Hub ────
	wsHub := websocket.NewHub(jwtAuth)
	log.Println("✓ WebSocket hub started")

	// ──── Step 5: Start Session Manager ────
	sessions := session.NewManager(schedulerClient, wsHub, session.Config{
		TimerSeconds: cfg.ItemTimerSeconds,
		BatchSize:    cfg.ReviewBatchSize,
	})
	log.Println("✓ Session manager started")

	// ──── Initialize Handlers ────
	reviewHandler := handlers.NewReviewHandler(sessions)
	learnHandler := handlers.NewLearnHandler(sessions)
	overviewHandler := handlers.NewOverviewHandler(assembler)
	analyticsHandler := handlers.NewAnalyticsHandler(schedulerClient)
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		reviewHandler,
		learnHandler,
		overviewHandler,
		analyticsHandler,
		catalogHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		sessions.Shutdown()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ ReciteFlow Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
