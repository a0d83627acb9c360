package session_test

import (
	"context"
	"testing"

	"github.com/haiquanvn/aquamon/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func stores(t *testing.T) map[string]session.Store {
	t.Helper()
	fileStore, err := session.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return map[string]session.Store{
		"FileStore": fileStore,
		"MemStore":  session.NewMemStore(),
	}
}

func TestStoreTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			token, err := store.Token(ctx)
			require.NoError(t, err)
			assert.Empty(t, token, "fresh store should have no token")

			require.NoError(t, store.SetToken(ctx, "abc.def.ghi"))
			token, err = store.Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, "abc.def.ghi", token)
		})
	}
}

func TestStoreProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			profile, err := store.Profile(ctx)
			require.NoError(t, err)
			assert.Nil(t, profile, "fresh store should have no profile")

			want := &session.Profile{
				ID:       7,
				Username: "ngocanh",
				Email:    "ngocanh@example.com",
				Role:     "manager",
				Province: "Quang Ninh",
				District: strptr("Van Don"),
			}
			require.NoError(t, store.SetProfile(ctx, want))

			profile, err = store.Profile(ctx)
			require.NoError(t, err)
			require.NotNil(t, profile)
			assert.Equal(t, want, profile)
		})
	}
}

// Logout must clear both keys so a later Profile() sees nothing.
func TestStoreClearRemovesTokenAndProfile(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.SetToken(ctx, "tok"))
			require.NoError(t, store.SetProfile(ctx, &session.Profile{ID: 1, Role: "admin"}))

			require.NoError(t, store.Clear(ctx))

			token, err := store.Token(ctx)
			require.NoError(t, err)
			assert.Empty(t, token)

			profile, err := store.Profile(ctx)
			require.NoError(t, err)
			assert.Nil(t, profile)

			// Clearing an already-empty store is fine
			require.NoError(t, store.Clear(ctx))
		})
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := session.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.SetToken(ctx, "persisted"))
	require.NoError(t, first.SetProfile(ctx, &session.Profile{ID: 3, Role: "expert"}))

	second, err := session.NewFileStore(dir)
	require.NoError(t, err)

	token, err := second.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)

	profile, err := second.Profile(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, int64(3), profile.ID)
}

func TestIsProvincialManager(t *testing.T) {
	tests := []struct {
		name    string
		profile *session.Profile
		want    bool
	}{
		{"ManagerNilDistrict", &session.Profile{Role: "manager"}, true},
		{"ManagerWithDistrict", &session.Profile{Role: "manager", District: strptr("Van Don")}, false},
		{"Admin", &session.Profile{Role: "admin"}, false},
		{"NilProfile", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.IsProvincialManager())
		})
	}
}
