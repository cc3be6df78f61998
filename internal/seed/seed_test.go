package seed

import (
	"context"
	"testing"
	"time"

	"pet-adoption-platform/internal/adapters/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestApply_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	target := Target{
		Users:        store.Users(),
		Pets:         store.Pets(),
		Products:     store.Products(),
		Appointments: store.Appointments(),
	}
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	rep, err := Apply(ctx, target, now, bcrypt.MinCost, nil)
	require.NoError(t, err)
	assert.Equal(t, Report{Users: 2, Pets: 6, Products: 6, Appointments: 2}, rep)

	again, err := Apply(ctx, target, now, bcrypt.MinCost, nil)
	require.NoError(t, err)
	assert.Equal(t, Report{}, again)

	u, err := store.Users().GetByEmail(ctx, "shelter@petadopt.dev")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(DemoPassword)))
}

func TestApply_SkipsNilTargets(t *testing.T) {
	store := memory.New()
	rep, err := Apply(context.Background(), Target{Products: store.Products()}, time.Now(), bcrypt.MinCost, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, rep.Products)
	assert.Zero(t, rep.Pets)
}

func TestSeedData(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	owners := map[string]bool{}
	for _, d := range DemoUsers() {
		owners[d.ID] = true
	}
	for _, p := range Pets(now) {
		assert.True(t, owners[p.OwnerUserID], "pet %s has unknown owner", p.ID)
		assert.False(t, p.CreatedAt.After(now))
	}

	services := map[string]bool{}
	for _, s := range Services() {
		services[s.ID] = true
	}
	assert.Len(t, services, 8)

	appts := Appointments(now)
	require.Len(t, appts, 2)
	for _, a := range appts {
		assert.True(t, services[a.ServiceID])
		assert.True(t, a.Date.After(now))
	}
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), appts[0].Date)
}
