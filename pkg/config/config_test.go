package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, int64(10), cfg.Inventory.LowStockThreshold)
	assert.Equal(t, 4, cfg.Inventory.BulkConcurrency)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(3), cfg.Inventory.LowStockThreshold)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/w", DBName: "stockroom", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fw@db:5432/stockroom?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
