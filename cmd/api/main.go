package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"npdecide/app"
	"npdecide/internal"
	"npdecide/internal/api"
	"npdecide/internal/config"
	"npdecide/internal/metrics"
	"npdecide/internal/solver/continuous"
	"npdecide/internal/solver/matrix"
	"npdecide/ports"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)
	logger := internal.NewLogger(cfg.Log.Level)

	var collector *metrics.Collector
	var sink ports.SolveMetrics
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.Namespace)
		sink = collector
	}

	service := app.NewDecisionService(
		continuous.NewSolver(continuous.Config{
			MaxIterations: cfg.Solver.RootMaxIterations,
			Tolerance:     cfg.Solver.RootTolerance,
		}),
		matrix.NewSolver(),
		sink,
		logger,
		app.BatchLimits{
			Concurrency: cfg.Batch.Concurrency,
			MaxItems:    cfg.Batch.MaxItems,
		},
	)

	server := api.NewServer(service, api.ServerOptions{
		Addr:           ":" + cfg.Server.Port,
		RequestTimeout: cfg.Server.RequestTimeout,
		Collector:      collector,
		Logger:         logger,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case sig := <-quit:
		logger.Info("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed: %v", err)
		}
	}
}
