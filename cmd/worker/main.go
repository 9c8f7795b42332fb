// cmd/worker/main.go
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"gallery-backend/pkg/logger"
)

// The worker drains the asset cleanup queue: blobs orphaned by image
// updates and deletes are removed here, out of the request path.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := loadConfig()
	logger.Init(cfg.Environment)

	if !cfg.RedisEnabled {
		log.Fatal("[Worker] REDIS_ENABLED must be true to run the worker")
	}

	// Initialize handlers
	handlers, err := initializeHandlers(cfg)
	if err != nil {
		log.Fatalf("[Worker] Failed to initialize handlers: %v", err)
	}

	// Setup Asynq server
	srv := setupAsynqServer(cfg, handlers)

	// Wait for shutdown signal
	waitForShutdown(srv)
}

func waitForShutdown(srv *asynqServer) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("[Shutdown] Gracefully stopping...")
	srv.Shutdown()
	log.Println("[Shutdown] Stopped")
}
