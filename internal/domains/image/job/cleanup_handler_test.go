package job

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/internal/infrastructure/queue"
)

type recordingStore struct {
	removed []string
}

func (s *recordingStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	return name, nil
}

func (s *recordingStore) Remove(ctx context.Context, name string) error {
	s.removed = append(s.removed, name)
	return nil
}

func (s *recordingStore) PublicPath(name string) string {
	return "/img/thanks/" + name
}

func TestAssetCleanupHandler_ProcessTask(t *testing.T) {
	store := &recordingStore{}
	h := NewAssetCleanupHandler(store)

	task, err := queue.NewAssetCleanupTask([]string{"old-main.png", "old-a.png"})
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(context.Background(), task))
	assert.Equal(t, []string{"old-main.png", "old-a.png"}, store.removed)
}

func TestAssetCleanupHandler_ProcessTask_EmptyPayload(t *testing.T) {
	store := &recordingStore{}
	h := NewAssetCleanupHandler(store)

	payload, err := json.Marshal(queue.AssetCleanupPayload{})
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(queue.TypeAssetCleanup, payload)))
	assert.Empty(t, store.removed)
}

func TestAssetCleanupHandler_ProcessTask_BadPayload(t *testing.T) {
	h := NewAssetCleanupHandler(&recordingStore{})

	err := h.ProcessTask(context.Background(), asynq.NewTask(queue.TypeAssetCleanup, []byte("not json")))
	assert.Error(t, err)
}
