package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.S3Enabled())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("DB_NAME", "forkful_prod")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t,
		"host=db.internal port=5432 user=postgres password=hunter2 dbname=forkful_prod sslmode=disable",
		cfg.DSN())
}

func TestRedisAndS3Toggles(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("S3_BUCKET_NAME", "forkful-images")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.S3Enabled())
}
