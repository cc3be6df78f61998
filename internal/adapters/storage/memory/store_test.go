package memory

import (
	"context"
	"testing"
	"time"

	"pet-adoption-platform/internal/domain/adoptions"
	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/domain/shop"
	"pet-adoption-platform/internal/domain/users"
	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdoptions_CommitIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Pets().Create(ctx, pets.Pet{ID: "rex", Status: pets.StatusAvailable}))

	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	req := adoptions.Request{ID: "r1", PetID: "rex", Status: adoptions.StatusPending}

	err := s.Adoptions().Commit(ctx, adoptions.Commit{Request: req, Insert: true, PetID: "missing", PetStatus: pets.StatusPending, At: at})
	assert.ErrorIs(t, err, pets.ErrNotFound)
	_, err = s.Adoptions().GetByID(ctx, "r1")
	assert.True(t, apperrors.IsNotFound(err))

	err = s.Adoptions().Commit(ctx, adoptions.Commit{Request: adoptions.Request{ID: "ghost", PetID: "rex"}, PetID: "rex", PetStatus: pets.StatusAdopted, At: at})
	assert.ErrorIs(t, err, adoptions.ErrNotFound)
	p, _ := s.Pets().GetByID(ctx, "rex")
	assert.Equal(t, pets.StatusAvailable, p.Status)

	require.NoError(t, s.Adoptions().Commit(ctx, adoptions.Commit{Request: req, Insert: true, PetID: "rex", PetStatus: pets.StatusPending, At: at}))
	p, _ = s.Pets().GetByID(ctx, "rex")
	assert.Equal(t, pets.StatusPending, p.Status)
	assert.Equal(t, at, p.UpdatedAt)

	err = s.Adoptions().Commit(ctx, adoptions.Commit{Request: req, Insert: true, PetID: "rex", PetStatus: pets.StatusPending, At: at})
	assert.ErrorIs(t, err, ErrExists)
}

func TestPets_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Pets().Create(ctx, pets.Pet{ID: "rex"}))
	require.NoError(t, s.Pets().Create(ctx, pets.Pet{ID: "luna"}))
	for i, petID := range []string{"rex", "rex", "luna"} {
		req := adoptions.Request{ID: string(rune('a' + i)), PetID: petID, Applicant: adoptions.Applicant{UserID: "u"}}
		require.NoError(t, s.Adoptions().Commit(ctx, adoptions.Commit{Request: req, Insert: true, PetID: petID, PetStatus: pets.StatusPending}))
	}

	removed, err := s.Pets().Delete(ctx, "rex")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	left, err := s.Adoptions().ListByApplicant(ctx, "u")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "luna", left[0].PetID)

	_, err = s.Pets().Delete(ctx, "rex")
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestUsers_EmailUnique(t *testing.T) {
	ctx := context.Background()
	repo := New().Users()
	require.NoError(t, repo.Create(ctx, users.User{ID: "a", Email: "a@x.io"}))
	require.NoError(t, repo.Create(ctx, users.User{ID: "b", Email: "b@x.io"}))

	assert.ErrorIs(t, repo.Create(ctx, users.User{ID: "c", Email: "a@x.io"}), users.ErrDuplicateEmail)
	assert.ErrorIs(t, repo.Update(ctx, users.User{ID: "b", Email: "a@x.io"}), users.ErrDuplicateEmail)
	require.NoError(t, repo.Update(ctx, users.User{ID: "a", Email: "a@x.io", Name: "A"}))

	u, err := repo.GetByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)

	all, _ := repo.List(ctx)
	assert.Len(t, all, 2)
}

func TestSessions_StoredCopyIsIsolated(t *testing.T) {
	ctx := context.Background()
	s := New()
	repo := s.Sessions()

	sess := session.Session{ID: "s1", State: session.StateAuthenticated, Principal: &session.Principal{UserID: "u1"}}
	require.NoError(t, repo.Save(ctx, sess))
	sess.Principal.UserID = "tampered"

	got, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.Principal.UserID)

	require.NoError(t, s.Carts().Save(ctx, "s1", []shop.Line{{ProductID: "p", Quantity: 1}}))
	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Load(ctx, "s1")
	assert.True(t, apperrors.IsNotFound(err))
	lines, _ := s.Carts().Load(ctx, "s1")
	assert.Empty(t, lines)
}

func TestCarts_SaveEmptyClears(t *testing.T) {
	ctx := context.Background()
	carts := New().Carts()

	lines, err := carts.Load(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.NoError(t, carts.Save(ctx, "c", []shop.Line{{ProductID: "p1", Quantity: 2}}))
	lines, _ = carts.Load(ctx, "c")
	lines[0].Quantity = 99
	again, _ := carts.Load(ctx, "c")
	assert.Equal(t, 2, again[0].Quantity)

	require.NoError(t, carts.Save(ctx, "c", nil))
	lines, _ = carts.Load(ctx, "c")
	assert.Empty(t, lines)
}
