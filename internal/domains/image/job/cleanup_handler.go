package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"gallery-backend/internal/infrastructure/queue"
	"gallery-backend/internal/infrastructure/storage"
)

// AssetCleanupHandler removes blobs that no record references
// anymore (replaced main images, dropped sub-images, deleted
// records).
type AssetCleanupHandler struct {
	store storage.Store
}

func NewAssetCleanupHandler(store storage.Store) *AssetCleanupHandler {
	return &AssetCleanupHandler{
		store: store,
	}
}

// ProcessTask deletes the orphaned blobs from the asset store.
func (h *AssetCleanupHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload queue.AssetCleanupPayload

	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal AssetCleanup payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Int("count", len(payload.Filenames)).
		Msg("Cleaning up orphaned assets")

	for _, name := range payload.Filenames {
		if err := h.store.Remove(ctx, name); err != nil {
			log.Error().
				Err(err).
				Str("filename", name).
				Msg("Failed to remove orphaned asset")
			return fmt.Errorf("remove asset %s: %w", name, err)
		}
	}

	log.Info().
		Int("count", len(payload.Filenames)).
		Msg("Orphaned assets removed")

	return nil
}
