package config_test

import (
	"testing"
	"time"

	"videohub/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_NAME", "videos")
	t.Setenv("SESSION_SECRET", "s3cr3t")

	cfg, err := config.FromViper(config.NewViper())
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "NodeJs", cfg.SessionCookie)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.False(t, cfg.CacheInvalidateOnWrite)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestFromViper_MissingRequired(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASS", "")
	t.Setenv("DB_NAME", "videos")
	t.Setenv("SESSION_SECRET", "")

	_, err := config.FromViper(config.NewViper())
	require.ErrorIs(t, err, config.ErrMissing)
	assert.Contains(t, err.Error(), "DB_HOST, DB_PASS, SESSION_SECRET")
}

func TestFromViper_SQLiteNeedsNoServerCredentials(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASS", "")
	t.Setenv("DB_NAME", "videohub.db")
	t.Setenv("SESSION_SECRET", "s3cr3t")
	t.Setenv("CACHE_TTL", "90s")

	cfg, err := config.FromViper(config.NewViper())
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
}

func TestFromViper_RejectsUnknownBackends(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", "videohub.db")
	t.Setenv("SESSION_SECRET", "s3cr3t")
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := config.FromViper(config.NewViper())
	assert.ErrorContains(t, err, "CACHE_BACKEND")
}
