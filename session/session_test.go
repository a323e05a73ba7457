package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amodkhurasiya/tribal-crafts-server/session"
	"github.com/amodkhurasiya/tribal-crafts-server/storage"
	"github.com/amodkhurasiya/tribal-crafts-server/storage/memstore"
)

const device = "device-1"

func testUser() session.User {
	return session.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: "user"}
}

func TestEstablishAndRestore(t *testing.T) {
	store := session.NewStore(memstore.New())
	ctx := context.Background()

	require.NoError(t, store.Establish(ctx, device, session.Session{User: testUser(), Token: "tok-1"}))

	sess, ok := store.Restore(ctx, device)
	require.True(t, ok)
	require.Equal(t, "tok-1", sess.Token)
	require.Equal(t, "asha@example.com", sess.User.Email)
}

func TestRestoreWithoutPersistedSession(t *testing.T) {
	store := session.NewStore(memstore.New())

	_, ok := store.Restore(context.Background(), device)
	require.False(t, ok)
}

func TestRestoreWithCorruptUserClearsSession(t *testing.T) {
	repo := memstore.New()
	store := session.NewStore(repo)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, device, storage.KeyToken, "tok-1"))
	require.NoError(t, repo.Set(ctx, device, storage.KeyUser, "{broken"))

	_, ok := store.Restore(ctx, device)
	require.False(t, ok, "corrupt persisted data means no session, not an error")

	// The broken remnants must not survive.
	_, present, err := repo.Get(ctx, device, storage.KeyToken)
	require.NoError(t, err)
	require.False(t, present)
}

func TestRestoreRequiresBothHalves(t *testing.T) {
	repo := memstore.New()
	store := session.NewStore(repo)
	ctx := context.Background()

	require.NoError(t, storage.SetJSON(ctx, repo, device, storage.KeyUser, testUser()))

	_, ok := store.Restore(ctx, device)
	require.False(t, ok, "user without token is not a session")
}

func TestInvalidate(t *testing.T) {
	store := session.NewStore(memstore.New())
	ctx := context.Background()

	require.NoError(t, store.Establish(ctx, device, session.Session{User: testUser(), Token: "tok-1"}))
	store.Invalidate(ctx, device)

	_, ok := store.Restore(ctx, device)
	require.False(t, ok)
}

func TestUserDecodeAcceptsMongoID(t *testing.T) {
	var u session.User
	require.NoError(t, u.UnmarshalJSON([]byte(`{"_id":"abc","name":"Asha","email":"a@b.c","role":"admin"}`)))
	require.Equal(t, "abc", u.ID)
	require.True(t, u.IsAdmin())
}
