package main

import (
	"github.com/hibiken/asynq"

	imageJob "gallery-backend/internal/domains/image/job"
	"gallery-backend/internal/infrastructure/queue"
	"gallery-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	assetCleanup *imageJob.AssetCleanupHandler
}

// initializeHandlers creates all job handlers with their dependencies.
// The worker only needs the asset store; it never touches the
// database.
func initializeHandlers(cfg *Config) (*HandlerRegistry, error) {
	store, err := container.NewStore(cfg.App)
	if err != nil {
		return nil, err
	}

	return &HandlerRegistry{
		assetCleanup: imageJob.NewAssetCleanupHandler(store),
	}, nil
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeAssetCleanup, h.assetCleanup.ProcessTask)
}
