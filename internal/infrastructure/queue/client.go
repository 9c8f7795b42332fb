package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"gallery-backend/internal/config"
)

// Task types handled by cmd/worker.
const (
	TypeAssetCleanup = "asset:cleanup"
)

// AssetCleanupPayload lists blobs that no longer back any record.
type AssetCleanupPayload struct {
	Filenames []string `json:"filenames"`
}

// NewAssetCleanupTask builds the cleanup task for a set of orphaned
// filenames.
func NewAssetCleanupTask(filenames []string) (*asynq.Task, error) {
	payload, err := json.Marshal(AssetCleanupPayload{Filenames: filenames})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cleanup payload: %w", err)
	}
	return asynq.NewTask(TypeAssetCleanup, payload), nil
}

// Client wraps the asynq client. A nil *Client is valid and drops
// every enqueue, so the API behaves identically without Redis (the
// orphans simply accumulate).
type Client struct {
	inner *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		inner: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// EnqueueAssetCleanup schedules orphaned blobs for out-of-band
// deletion.
func (c *Client) EnqueueAssetCleanup(ctx context.Context, filenames []string) error {
	if c == nil || len(filenames) == 0 {
		return nil
	}

	task, err := NewAssetCleanupTask(filenames)
	if err != nil {
		return err
	}

	info, err := c.inner.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue cleanup task: %w", err)
	}

	log.Info().
		Str("task_id", info.ID).
		Int("count", len(filenames)).
		Msg("Asset cleanup enqueued")

	return nil
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.inner.Close()
}
