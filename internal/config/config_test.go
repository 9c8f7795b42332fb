package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "thanks_images.db", cfg.Database.Path)
	assert.Equal(t, "disk", cfg.Storage.Driver)
	assert.Equal(t, "static/uploads/thanks", cfg.Storage.Root)
	assert.Equal(t, "/img/thanks", cfg.Storage.PublicPrefix)
	assert.Equal(t, int64(10), cfg.Storage.MaxUploadMB)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "http://localhost:3000", cfg.CORS.AllowedOrigin)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/other.db")
	t.Setenv("STORAGE_DRIVER", "minio")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("STORAGE_MAX_UPLOAD_MB", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, "minio", cfg.Storage.Driver)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, int64(25), cfg.Storage.MaxUploadMB)
}

func TestLoad_UnknownStorageDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "ftp")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_ProductionSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")

	t.Setenv("SESSION_SECRET", "real-secret")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OAUTH_STATE_SECRET")

	t.Setenv("OAUTH_STATE_SECRET", "real-state-secret")
	_, err = Load()
	assert.NoError(t, err)
}
