package pets

import (
	"context"
	"testing"
	"time"

	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/platform/notify"
	"pet-adoption-platform/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRepoNotFound = apperrors.New(apperrors.CodeNotFound, "repo: not found")

// testRepo simula también la colección de solicitudes para verificar la cascada.
type testRepo struct {
	byID     map[string]Pet
	requests map[string]string // requestID -> petID
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}, requests: map[string]string{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) List(ctx context.Context) ([]Pet, error) {
	out := make([]Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) (int, error) {
	if _, ok := r.byID[id]; !ok {
		return 0, errRepoNotFound
	}
	delete(r.byID, id)
	removed := 0
	for reqID, petID := range r.requests {
		if petID == id {
			delete(r.requests, reqID)
			removed++
		}
	}
	return removed, nil
}

func authed(userID string) *session.Session {
	return &session.Session{
		ID:        "s-" + userID,
		State:     session.StateAuthenticated,
		Principal: &session.Principal{UserID: userID, Name: userID},
	}
}

func newTestService() (*Service, *testRepo, *time.Time) {
	repo := newTestRepo()
	svc := NewService(repo, nil)
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, repo, &now
}

func TestService_Add_RequiresSession(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.Add(context.Background(), &session.Session{ID: "anon", State: session.StateLoaded}, CreateInput{Name: "Rex", Type: TypeDog})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Add(context.Background(), nil, CreateInput{Name: "Rex", Type: TypeDog})
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, repo.byID)
}

func TestService_Add_SetsAvailableAndOwner(t *testing.T) {
	svc, _, now := newTestService()

	p, err := svc.Add(context.Background(), authed("user-a"), CreateInput{
		Name: " Rex ", Type: TypeDog, Breed: "Beagle", Age: 2, Gender: GenderMale, Size: SizeMedium,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Rex", p.Name)
	assert.Equal(t, StatusAvailable, p.Status)
	assert.Equal(t, "user-a", p.OwnerUserID)
	assert.Equal(t, *now, p.CreatedAt)
}

func TestService_Add_Validates(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Add(context.Background(), authed("u"), CreateInput{Name: "", Type: TypeDog})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Add(context.Background(), authed("u"), CreateInput{Name: "Rex", Type: TypeDog, Age: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update_MergesWithoutTouchingStatus(t *testing.T) {
	svc, repo, _ := newTestService()
	p, err := svc.Add(context.Background(), authed("user-a"), CreateInput{Name: "Rex", Type: TypeDog, Breed: "Beagle"})
	require.NoError(t, err)

	stored := repo.byID[p.ID]
	stored.Status = StatusPending
	repo.byID[p.ID] = stored

	name := "Rex II"
	age := 4
	updated, err := svc.Update(context.Background(), p.ID, Patch{Name: &name, Age: &age})
	require.NoError(t, err)
	assert.Equal(t, "Rex II", updated.Name)
	assert.Equal(t, 4, updated.Age)
	assert.Equal(t, "Beagle", updated.Breed)
	assert.Equal(t, StatusPending, updated.Status)

}

type noticeCounter struct{ n int }

func (c *noticeCounter) Notify(ctx context.Context, _ notify.Notice) { c.n++ }

func TestService_UnknownPetIsSilentNoop(t *testing.T) {
	repo := newTestRepo()
	notices := &noticeCounter{}
	svc := NewService(repo, notices)
	name := "Ghost"

	got, err := svc.Update(context.Background(), "missing", Patch{Name: &name})
	require.NoError(t, err)
	assert.Empty(t, got.ID)

	removed, err := svc.Delete(context.Background(), authed("user-a"), "missing")
	require.NoError(t, err)
	assert.Zero(t, removed)

	assert.Empty(t, repo.byID)
	assert.Zero(t, notices.n)
}

func TestService_Delete(t *testing.T) {
	svc, repo, _ := newTestService()
	p, err := svc.Add(context.Background(), authed("user-a"), CreateInput{Name: "Rex", Type: TypeDog})
	require.NoError(t, err)
	repo.requests["r-1"] = p.ID
	repo.requests["r-2"] = p.ID
	repo.requests["r-3"] = "other-pet"

	t.Run("not the owner", func(t *testing.T) {
		_, err := svc.Delete(context.Background(), authed("user-b"), p.ID)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Contains(t, repo.byID, p.ID)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.Delete(context.Background(), nil, p.ID)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("owner cascades requests", func(t *testing.T) {
		removed, err := svc.Delete(context.Background(), authed("user-a"), p.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		assert.NotContains(t, repo.byID, p.ID)
		for _, petID := range repo.requests {
			assert.NotEqual(t, p.ID, petID)
		}
	})

	t.Run("already removed", func(t *testing.T) {
		removed, err := svc.Delete(context.Background(), authed("user-a"), p.ID)
		require.NoError(t, err)
		assert.Zero(t, removed)
	})
}

func TestService_Search(t *testing.T) {
	svc, repo, _ := newTestService()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []Pet{
		{ID: "1", Name: "Max", Type: TypeDog, Breed: "Golden Retriever", Age: 3, Gender: GenderMale, Size: SizeLarge, Location: "New York, NY", Status: StatusAvailable, Description: "loves fetch", CreatedAt: base.Add(1 * time.Hour)},
		{ID: "2", Name: "Bella", Type: TypeCat, Breed: "Siamese", Age: 2, Gender: GenderFemale, Size: SizeMedium, Location: "Los Angeles, CA", Status: StatusAvailable, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "3", Name: "Charlie", Type: TypeDog, Breed: "Beagle", Age: 1, Gender: GenderMale, Size: SizeMedium, Location: "Chicago, IL", Status: StatusPending, CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, p := range seed {
		repo.byID[p.ID] = p
	}

	ids := func(items []Pet) []string {
		out := make([]string, 0, len(items))
		for _, p := range items {
			out = append(out, p.ID)
		}
		return out
	}

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "1"}, ids(all))

	got, _ := svc.Search(context.Background(), Filter{Query: "FETCH"})
	assert.Equal(t, []string{"1"}, ids(got))

	got, _ = svc.Search(context.Background(), Filter{Type: TypeDog, Size: SizeMedium})
	assert.Equal(t, []string{"3"}, ids(got))

	minAge, maxAge := 2, 3
	got, _ = svc.Search(context.Background(), Filter{MinAge: &minAge, MaxAge: &maxAge})
	assert.Equal(t, []string{"2", "1"}, ids(got))

	got, _ = svc.Search(context.Background(), Filter{Breed: "retr", Location: "new york"})
	assert.Equal(t, []string{"1"}, ids(got))

	got, _ = svc.Search(context.Background(), Filter{Status: StatusPending, Gender: GenderMale})
	assert.Equal(t, []string{"3"}, ids(got))
}

func TestService_OwnerOf(t *testing.T) {
	svc, _, _ := newTestService()
	p, err := svc.Add(context.Background(), authed("user-a"), CreateInput{Name: "Rex", Type: TypeDog})
	require.NoError(t, err)

	owner, err := svc.OwnerOf(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-a", owner)

	_, err = svc.OwnerOf(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
