package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/cinevault?sslmode=disable")
	t.Setenv("JWT_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
	t.Setenv("CINEVAULT_S3_BUCKET", "cinevault-images")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 168*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, "0 9 * * *", cfg.Reminder.Schedule)
	assert.True(t, cfg.Reminder.Enabled)
	assert.Equal(t, 100, cfg.Redis.RequestsPerWindow)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CINEVAULT_PORT", "9999")
	t.Setenv("JWT_EXPIRES_IN", "5m")
	t.Setenv("CINEVAULT_REMINDER_ENABLED", "false")
	t.Setenv("CINEVAULT_S3_USE_PATH_STYLE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.False(t, cfg.Reminder.Enabled)
	assert.True(t, cfg.S3.UsePathStyle)
}

func TestLoadConfig_MissingSecretsIsFatal(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_IdenticalSecretsRejected(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_REFRESH_SECRET", "access-secret")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}

func TestLoadConfig_NoBucketDisablesS3(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CINEVAULT_S3_BUCKET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.S3.Bucket)
}

func TestLoadConfig_CredentialsWithoutBucketRejected(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CINEVAULT_S3_BUCKET", "")
	t.Setenv("CINEVAULT_S3_ACCESS_KEY", "minio")
	t.Setenv("CINEVAULT_S3_SECRET_KEY", "minio123")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CINEVAULT_S3_BUCKET")
}

func TestLoadConfig_MissingDatabaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
