package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("S3_BUCKET", "case-docs")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, BackendFile, cfg.StorageBackend)
	assert.False(t, cfg.UsesDatabase())
	assert.Equal(t, ObjectStoreS3, cfg.ObjectStore)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(20*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.RateLimitEnabled())
}

func TestParse_NormalizesBackends(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", " SQLite ")
	t.Setenv("OBJECT_STORE", "LOCAL")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.StorageBackend)
	assert.True(t, cfg.UsesDatabase())
	assert.Equal(t, ObjectStoreLocal, cfg.ObjectStore)
}

func TestParse_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mongodb")
	t.Setenv("OBJECT_STORE", "local")

	_, err := Parse()
	assert.ErrorContains(t, err, "STORAGE_BACKEND")
}

func TestParse_RequiresBucketForS3(t *testing.T) {
	t.Setenv("OBJECT_STORE", "s3")
	t.Setenv("S3_BUCKET", "")

	_, err := Parse()
	assert.ErrorContains(t, err, "S3_BUCKET")
}

func TestParse_RejectsDefaultSecretInRelease(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("OBJECT_STORE", "local")

	_, err := Parse()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.IsRelease())
}

func TestParse_RateLimitNeedsRedis(t *testing.T) {
	t.Setenv("OBJECT_STORE", "local")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.RateLimitEnabled())
}
