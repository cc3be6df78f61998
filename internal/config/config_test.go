package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 2*time.Second, cfg.Checkout.GatewayDelay)
	assert.Equal(t, 10, cfg.Password.BcryptCost)
	assert.True(t, cfg.Seed.OnStart)
	assert.True(t, cfg.App.IsDev())
}

func TestLoadReadsPrefixedEnv(t *testing.T) {
	t.Setenv("PETADOPT_STORAGE_DRIVER", " Redis ")
	t.Setenv("PETADOPT_REDIS_NAMESPACE", "test")
	t.Setenv("PETADOPT_CHECKOUT_GATEWAY_DELAY", "10ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "test", cfg.Redis.Namespace)
	assert.Equal(t, 10*time.Millisecond, cfg.Checkout.GatewayDelay)
}

func TestLoadRejectsBadDriver(t *testing.T) {
	t.Setenv("PETADOPT_STORAGE_DRIVER", "mongo")
	_, err := Load()
	require.Error(t, err)
}

func TestPostgresRequiresDSN(t *testing.T) {
	t.Setenv("PETADOPT_STORAGE_DRIVER", "postgres")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("PETADOPT_DB_DSN", "postgres://localhost/petadopt")
	_, err = Load()
	require.NoError(t, err)
}

func TestSQLiteDSNFallback(t *testing.T) {
	assert.Equal(t, "file::memory:?cache=shared", DBConfig{}.SQLiteDSN())
	assert.Equal(t, "/tmp/pets.db", DBConfig{DSN: "/tmp/pets.db"}.SQLiteDSN())
}
