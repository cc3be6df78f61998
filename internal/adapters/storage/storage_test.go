package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption-platform/internal/config"
	"pet-adoption-platform/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	repos, err := Open(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory}}, nil)
	require.NoError(t, err)
	defer repos.Close()

	assert.Equal(t, config.DriverMemory, repos.Driver)
	assert.NotNil(t, repos.Users)
	assert.NotNil(t, repos.Sessions)
	assert.NotNil(t, repos.Carts)
}

func TestOpen_SQLiteSeeds(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.DriverSQLite},
		DB:      config.DBConfig{DSN: "file:storage_open?mode=memory&cache=shared"},
	}
	repos, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer repos.Close()

	rep, err := seed.Apply(ctx, repos.SeedTarget(), time.Now(), 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, rep.Pets)

	all, err := repos.Pets.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: "mongo"}}, nil)
	assert.Error(t, err)
}

func TestClose_CombinesErrors(t *testing.T) {
	first, second := errors.New("first"), errors.New("second")
	r := &Repositories{closers: []func() error{
		func() error { return first },
		func() error { return nil },
		func() error { return second },
	}}

	err := r.Close()
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
}
