package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"foodie-storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStorage stands in for the sqlite-backed storage
type memStorage struct {
	mu      sync.Mutex
	data    map[string]string
	failSet bool
}

func newMemStorage() *memStorage {
	return &memStorage{data: map[string]string{}}
}

func (m *memStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func TestLogin_PasswordLength(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		email    string
		password string
		want     bool
	}{
		{"five characters fails", "jane@example.com", "12345", false},
		{"six characters succeeds", "jane@example.com", "123456", true},
		{"empty email fails", "", "123456", false},
		{"blank email fails", "   ", "123456", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newMemStorage()
			store := NewStore(storage, Delays{})

			ok, err := store.Login(ctx, tt.email, tt.password).Wait(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.want, store.Present())

			_, persisted := storage.data[StorageKey]
			assert.Equal(t, tt.want, persisted)
		})
	}
}

func TestLogin_NameFromEmail(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	store := NewStore(storage, Delays{})

	ok, err := store.Login(ctx, "jane.doe@example.com", "secret1").Wait(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	user, present := store.Current()
	require.True(t, present)
	assert.Equal(t, "jane.doe", user.Name)
	assert.Equal(t, "jane.doe@example.com", user.Email)
	assert.NotEmpty(t, user.ID)

	var saved models.User
	require.NoError(t, json.Unmarshal([]byte(storage.data[StorageKey]), &saved))
	assert.Equal(t, user, saved)
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemStorage(), Delays{})

	ok, err := store.Signup(ctx, "", "jane@example.com", "secret1").Wait(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, store.Present())

	ok, err = store.Signup(ctx, "Jane", "jane@example.com", "short").Wait(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Signup(ctx, "Jane", "jane@example.com", "secret1").Wait(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	user, _ := store.Current()
	assert.Equal(t, "Jane", user.Name)
}

func TestFailedLogin_KeepsExistingSession(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemStorage(), Delays{})

	ok, _ := store.Login(ctx, "first@example.com", "secret1").Wait(ctx)
	require.True(t, ok)
	before, _ := store.Current()

	ok, _ = store.Login(ctx, "second@example.com", "123").Wait(ctx)
	assert.False(t, ok)
	after, _ := store.Current()
	assert.Equal(t, before, after)
}

func TestLogin_StorageFailure(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	storage.failSet = true
	store := NewStore(storage, Delays{})

	ok, err := store.Login(ctx, "jane@example.com", "secret1").Wait(ctx)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.False(t, store.Present())
}

func TestLoad_RestoresAndDropsCorrupt(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	storage.data[StorageKey] = `{"id":"1","name":"jane","email":"jane@example.com"}`

	store := NewStore(storage, Delays{})
	require.NoError(t, store.Load(ctx))
	user, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "jane", user.Name)

	storage.data[StorageKey] = `not json`
	fresh := NewStore(storage, Delays{})
	require.NoError(t, fresh.Load(ctx))
	assert.False(t, fresh.Present())
	_, still := storage.data[StorageKey]
	assert.False(t, still)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	store := NewStore(storage, Delays{})

	ok, _ := store.Login(ctx, "jane@example.com", "secret1").Wait(ctx)
	require.True(t, ok)

	require.NoError(t, store.Logout(ctx))
	assert.False(t, store.Present())
	assert.Empty(t, storage.data)

	assert.NoError(t, store.Logout(ctx))
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	store := NewStore(storage, Delays{})

	_, err := store.UpdateProfile(ctx, ProfileUpdate{Name: "Jane"})
	assert.ErrorIs(t, err, ErrNoSession)

	ok, _ := store.Login(ctx, "jane@example.com", "secret1").Wait(ctx)
	require.True(t, ok)

	_, err = store.UpdateProfile(ctx, ProfileUpdate{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidProfile)

	user, err := store.UpdateProfile(ctx, ProfileUpdate{Name: "Jane Doe", Phone: "+1 555", Address: "1 Main St"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", user.Name)
	assert.Equal(t, "1 Main St", user.Address)

	var saved models.User
	require.NoError(t, json.Unmarshal([]byte(storage.data[StorageKey]), &saved))
	assert.Equal(t, user, saved)
}

func TestUserID_StablePerEmail(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemStorage(), Delays{})

	ok, _ := store.Login(ctx, "Jane@Example.com", "secret1").Wait(ctx)
	require.True(t, ok)
	first, _ := store.Current()
	require.NoError(t, store.Logout(ctx))

	ok, _ = store.Signup(ctx, "Jane", " jane@example.com ", "secret1").Wait(ctx)
	require.True(t, ok)
	second, _ := store.Current()

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, UserID("jane@example.com"), second.ID)
	assert.NotEqual(t, UserID("john@example.com"), second.ID)
}
