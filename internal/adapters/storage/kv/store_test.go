package kv

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"pet-adoption-platform/internal/config"
	"pet-adoption-platform/internal/domain/adoptions"
	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/domain/shop"
	"pet-adoption-platform/internal/domain/users"
	"pet-adoption-platform/internal/platform/apperrors"
	"pet-adoption-platform/internal/session"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCmdable struct {
	data      map[string]string
	msetCalls int
	failMSet  bool
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = asString(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) MSet(ctx context.Context, values ...any) *redis.StatusCmd {
	m.msetCalls++
	if m.failMSet {
		return redis.NewStatusResult("", errors.New("connection reset"))
	}
	for i := 0; i+1 < len(values); i += 2 {
		m.data[asString(values[i])] = asString(values[i+1])
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func asString(v any) string {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprint(v)
}

func TestOptionsFromConfig(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:secret@cache:6380/2", Timeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, time.Second, opts.ReadTimeout)

	opts, err = optionsFromConfig(config.RedisConfig{Address: "localhost:6379", DB: 1})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 1, opts.DB)

	_, err = optionsFromConfig(config.RedisConfig{})
	assert.Error(t, err)
}

func TestStore_NamespacedKeys(t *testing.T) {
	mock := newMockCmdable()
	s := newStore(mock, "petadopt")
	ctx := context.Background()

	require.NoError(t, s.Pets().Create(ctx, pets.Pet{ID: "rex", Name: "Rex"}))
	require.NoError(t, s.Sessions().Save(ctx, session.Session{ID: "s1", State: session.StateLoaded}))

	assert.Contains(t, mock.data, "petadopt:pets")
	assert.Contains(t, mock.data, "petadopt:currentUser:s1")
}

func TestStore_MissingKeysReadEmpty(t *testing.T) {
	s := newStore(newMockCmdable(), "ns")
	ctx := context.Background()

	all, err := s.Pets().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = s.Pets().GetByID(ctx, "nope")
	assert.ErrorIs(t, err, pets.ErrNotFound)

	_, err = s.Sessions().Load(ctx, "nope")
	assert.True(t, apperrors.IsNotFound(err))

	lines, err := s.Carts().Load(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestAdoptions_CommitWritesBothKeysOnce(t *testing.T) {
	mock := newMockCmdable()
	s := newStore(mock, "ns")
	ctx := context.Background()
	require.NoError(t, s.Pets().Create(ctx, pets.Pet{ID: "rex", Status: pets.StatusAvailable}))

	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	req := adoptions.Request{ID: "r1", PetID: "rex", Status: adoptions.StatusPending, Applicant: adoptions.Applicant{UserID: "u2"}}

	before := mock.msetCalls
	require.NoError(t, s.Adoptions().Commit(ctx, adoptions.Commit{Request: req, Insert: true, PetID: "rex", PetStatus: pets.StatusPending, At: at}))
	assert.Equal(t, before+1, mock.msetCalls)

	p, err := s.Pets().GetByID(ctx, "rex")
	require.NoError(t, err)
	assert.Equal(t, pets.StatusPending, p.Status)
	assert.True(t, at.Equal(p.UpdatedAt))

	mine, err := s.Adoptions().ListByApplicant(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	err = s.Adoptions().Commit(ctx, adoptions.Commit{Request: req, Insert: true, PetID: "rex", PetStatus: pets.StatusPending, At: at})
	assert.ErrorIs(t, err, ErrExists)

	err = s.Adoptions().Commit(ctx, adoptions.Commit{Request: adoptions.Request{ID: "r2"}, Insert: true, PetID: "ghost"})
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestAdoptions_CommitRejectsStaleStatus(t *testing.T) {
	mock := newMockCmdable()
	s := newStore(mock, "ns")
	ctx := context.Background()
	require.NoError(t, s.Pets().Create(ctx, pets.Pet{ID: "rex", Status: pets.StatusPending}))
	req := adoptions.Request{ID: "r1", PetID: "rex", Status: adoptions.StatusPending}
	require.NoError(t, s.Adoptions().Commit(ctx, adoptions.Commit{Request: req, Insert: true, PetID: "rex", PetStatus: pets.StatusPending}))

	rejected := req
	rejected.Status = adoptions.StatusRejected
	before := mock.msetCalls
	err := s.Adoptions().Commit(ctx, adoptions.Commit{Request: rejected, FromStatus: adoptions.StatusPending, PetID: "rex", PetStatus: pets.StatusAvailable, FromPetStatus: pets.StatusAdopted})
	assert.ErrorIs(t, err, adoptions.ErrStale)
	assert.Equal(t, before, mock.msetCalls)

	got, err := s.Adoptions().GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, adoptions.StatusPending, got.Status)
}

func TestAdoptions_CommitFailureLeavesNothing(t *testing.T) {
	mock := newMockCmdable()
	s := newStore(mock, "ns")
	ctx := context.Background()
	require.NoError(t, s.Pets().Create(ctx, pets.Pet{ID: "rex", Status: pets.StatusAvailable}))

	mock.failMSet = true
	err := s.Adoptions().Commit(ctx, adoptions.Commit{Request: adoptions.Request{ID: "r1", PetID: "rex"}, Insert: true, PetID: "rex", PetStatus: pets.StatusPending})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDependency, apperrors.CodeOf(err))

	mock.failMSet = false
	p, _ := s.Pets().GetByID(ctx, "rex")
	assert.Equal(t, pets.StatusAvailable, p.Status)
	_, err = s.Adoptions().GetByID(ctx, "r1")
	assert.ErrorIs(t, err, adoptions.ErrNotFound)
}

func TestPets_DeleteCascades(t *testing.T) {
	s := newStore(newMockCmdable(), "ns")
	ctx := context.Background()
	require.NoError(t, s.Pets().Create(ctx, pets.Pet{ID: "rex"}))
	require.NoError(t, s.Pets().Create(ctx, pets.Pet{ID: "luna"}))
	for i, petID := range []string{"rex", "rex", "luna"} {
		req := adoptions.Request{ID: fmt.Sprintf("r%d", i), PetID: petID, Applicant: adoptions.Applicant{UserID: "u"}}
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
	repo := newStore(newMockCmdable(), "ns").Users()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, users.User{ID: "a", Email: "a@x.io", PasswordHash: "h"}))
	require.NoError(t, repo.Create(ctx, users.User{ID: "b", Email: "b@x.io"}))

	assert.ErrorIs(t, repo.Create(ctx, users.User{ID: "c", Email: "a@x.io"}), users.ErrDuplicateEmail)
	assert.ErrorIs(t, repo.Update(ctx, users.User{ID: "b", Email: "a@x.io"}), users.ErrDuplicateEmail)
	assert.ErrorIs(t, repo.Update(ctx, users.User{ID: "z", Email: "z@x.io"}), users.ErrNotFound)

	u, err := repo.GetByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, "h", u.PasswordHash)
}

func TestSessions_DeleteDropsCart(t *testing.T) {
	mock := newMockCmdable()
	s := newStore(mock, "ns")
	ctx := context.Background()

	sess := session.Session{ID: "s1", State: session.StateAuthenticated, Principal: &session.Principal{UserID: "u1", Name: "Ana"}}
	require.NoError(t, s.Sessions().Save(ctx, sess))
	require.NoError(t, s.Carts().Save(ctx, "s1", []shop.Line{{ProductID: "prod1", Quantity: 2}}))

	got, err := s.Sessions().Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.IsAuthenticated())
	assert.Equal(t, "Ana", got.Principal.Name)

	require.NoError(t, s.Sessions().Delete(ctx, "s1"))
	assert.NotContains(t, mock.data, "ns:cart:s1")
	assert.NotContains(t, mock.data, "ns:currentUser:s1")
}

func TestCarts_SaveEmptyDeletesKey(t *testing.T) {
	mock := newMockCmdable()
	carts := newStore(mock, "ns").Carts()
	ctx := context.Background()

	require.NoError(t, carts.Save(ctx, "c", []shop.Line{{ProductID: "p1", Quantity: 2}}))
	lines, err := carts.Load(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, []shop.Line{{ProductID: "p1", Quantity: 2}}, lines)

	require.NoError(t, carts.Save(ctx, "c", nil))
	assert.NotContains(t, mock.data, "ns:cart:c")
}

func TestProducts_DecimalRoundTrip(t *testing.T) {
	repo := newStore(newMockCmdable(), "ns").Products()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, shop.Product{ID: "prod1", Price: decimal.RequireFromString("59.99"), Tags: []string{"premium"}}))
	assert.ErrorIs(t, repo.Create(ctx, shop.Product{ID: "prod1"}), ErrExists)

	p, err := repo.GetByID(ctx, "prod1")
	require.NoError(t, err)
	assert.Equal(t, "59.99", p.Price.StringFixed(2))
	assert.True(t, p.HasTag("premium"))
}
