package memory

import (
	"context"
	"sync"
	"testing"

	"pet-adoption-platform/internal/domain/adoptions"
	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdoptions_CommitRejectsStaleStatus(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Pets().Create(ctx, pets.Pet{ID: "rex", Status: pets.StatusAvailable}))

	req := adoptions.Request{ID: "r1", PetID: "rex", Status: adoptions.StatusPending}
	err := s.Adoptions().Commit(ctx, adoptions.Commit{Request: req, Insert: true, PetID: "rex", PetStatus: pets.StatusPending, FromPetStatus: pets.StatusAdopted})
	assert.ErrorIs(t, err, adoptions.ErrStale)
	p, _ := s.Pets().GetByID(ctx, "rex")
	assert.Equal(t, pets.StatusAvailable, p.Status)

	require.NoError(t, s.Adoptions().Commit(ctx, adoptions.Commit{Request: req, Insert: true, PetID: "rex", PetStatus: pets.StatusPending, FromPetStatus: pets.StatusAvailable}))

	decided := req
	decided.Status = adoptions.StatusApproved
	err = s.Adoptions().Commit(ctx, adoptions.Commit{Request: decided, FromStatus: adoptions.StatusRejected, PetID: "rex", PetStatus: pets.StatusAdopted})
	assert.ErrorIs(t, err, adoptions.ErrStale)

	got, err := s.Adoptions().GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, adoptions.StatusPending, got.Status)
	p, _ = s.Pets().GetByID(ctx, "rex")
	assert.Equal(t, pets.StatusPending, p.Status)
}

// gatedPets hace que las dos primeras lecturas esperen a la otra: ambas
// decisiones parten del mismo estado antes de que ninguna escriba.
type gatedPets struct {
	pets.Repository
	mu    sync.Mutex
	calls int
	gate  sync.WaitGroup
}

func newGatedPets(repo pets.Repository) *gatedPets {
	g := &gatedPets{Repository: repo}
	g.gate.Add(2)
	return g
}

func (g *gatedPets) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	p, err := g.Repository.GetByID(ctx, id)
	g.mu.Lock()
	g.calls++
	first := g.calls <= 2
	g.mu.Unlock()
	if first {
		g.gate.Done()
		g.gate.Wait()
	}
	return p, err
}

func owner() *session.Session {
	return &session.Session{
		ID:        "s-owner",
		State:     session.StateAuthenticated,
		Principal: &session.Principal{UserID: "owner", Name: "Owner", Email: "owner@example.com"},
	}
}

func seedPendingRequests(t *testing.T, s *Store, ids ...string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Pets().Create(ctx, pets.Pet{ID: "rex", OwnerUserID: "owner", Status: pets.StatusPending}))
	for _, id := range ids {
		req := adoptions.Request{ID: id, PetID: "rex", Status: adoptions.StatusPending, Applicant: adoptions.Applicant{UserID: "u-" + id}}
		require.NoError(t, s.Adoptions().Commit(ctx, adoptions.Commit{Request: req, Insert: true, PetID: "rex", PetStatus: pets.StatusPending}))
	}
}

func decideConcurrently(svc *adoptions.Service, decisions map[string]adoptions.Status) map[string]error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs = make(map[string]error, len(decisions))
	)
	for key, status := range decisions {
		wg.Add(1)
		go func(key string, status adoptions.Status) {
			defer wg.Done()
			requestID := key[:2]
			_, err := svc.Decide(context.Background(), owner(), requestID, status)
			mu.Lock()
			errs[key] = err
			mu.Unlock()
		}(key, status)
	}
	wg.Wait()
	return errs
}

func TestAdoptions_ConcurrentApproveAndRejectOnSamePet(t *testing.T) {
	s := New()
	seedPendingRequests(t, s, "r1", "r2")
	svc := adoptions.NewService(s.Adoptions(), newGatedPets(s.Pets()), nil)

	errs := decideConcurrently(svc, map[string]adoptions.Status{
		"r1/approve": adoptions.StatusApproved,
		"r2/reject":  adoptions.StatusRejected,
	})
	require.NoError(t, errs["r1/approve"])
	require.NoError(t, errs["r2/reject"])

	ctx := context.Background()
	r1, _ := s.Adoptions().GetByID(ctx, "r1")
	r2, _ := s.Adoptions().GetByID(ctx, "r2")
	p, _ := s.Pets().GetByID(ctx, "rex")
	assert.Equal(t, adoptions.StatusApproved, r1.Status)
	assert.Equal(t, adoptions.StatusRejected, r2.Status)
	assert.Equal(t, pets.StatusAdopted, p.Status)
}

func TestAdoptions_ConcurrentDecisionsOnSameRequest(t *testing.T) {
	s := New()
	seedPendingRequests(t, s, "r1")
	svc := adoptions.NewService(s.Adoptions(), newGatedPets(s.Pets()), nil)

	errs := decideConcurrently(svc, map[string]adoptions.Status{
		"r1/approve": adoptions.StatusApproved,
		"r1/reject":  adoptions.StatusRejected,
	})

	ctx := context.Background()
	r1, _ := s.Adoptions().GetByID(ctx, "r1")
	p, _ := s.Pets().GetByID(ctx, "rex")

	// gana una sola; la mascota queda coherente con la ganadora
	switch r1.Status {
	case adoptions.StatusApproved:
		assert.NoError(t, errs["r1/approve"])
		assert.ErrorIs(t, errs["r1/reject"], adoptions.ErrBadState)
		assert.Equal(t, pets.StatusAdopted, p.Status)
	case adoptions.StatusRejected:
		assert.NoError(t, errs["r1/reject"])
		assert.ErrorIs(t, errs["r1/approve"], adoptions.ErrBadState)
		assert.Equal(t, pets.StatusAvailable, p.Status)
	default:
		t.Fatalf("request still %q", r1.Status)
	}
}
