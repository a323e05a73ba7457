package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/amodkhurasiya/tribal-crafts-server/session"
	"github.com/amodkhurasiya/tribal-crafts-server/storage/memstore"
)

type fakeBackend struct {
	lock   sync.Mutex
	tokens []string
	fail   bool
	calls  int
}

func (f *fakeBackend) RefreshToken(_ context.Context, token string) (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.calls++
	if f.fail {
		return "", errors.New("refresh rejected")
	}
	next := token + "+"
	f.tokens = append(f.tokens, next)
	return next, nil
}

func (f *fakeBackend) callCount() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.calls
}

func TestRefresherReplacesToken(t *testing.T) {
	store := session.NewStore(memstore.New())
	ctx := context.Background()
	require.NoError(t, store.Establish(ctx, device, session.Session{User: testUser(), Token: "tok"}))

	backend := &fakeBackend{}
	r := session.NewRefresher(store, backend, 10*time.Millisecond, zerolog.Nop())
	defer r.StopAll()

	r.Track(device)
	require.Eventually(t, func() bool {
		sess, ok := store.Restore(ctx, device)
		return ok && sess.Token != "tok"
	}, time.Second, 5*time.Millisecond)
}

func TestRefresherInvalidatesOnFailure(t *testing.T) {
	store := session.NewStore(memstore.New())
	ctx := context.Background()
	require.NoError(t, store.Establish(ctx, device, session.Session{User: testUser(), Token: "tok"}))

	backend := &fakeBackend{fail: true}
	r := session.NewRefresher(store, backend, 10*time.Millisecond, zerolog.Nop())
	defer r.StopAll()

	r.Track(device)
	require.Eventually(t, func() bool {
		_, ok := store.Restore(ctx, device)
		return !ok
	}, time.Second, 5*time.Millisecond)

	// The loop stops after the failure; no further calls pile up.
	settled := backend.callCount()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, settled, backend.callCount())
}

func TestRefresherStopsWhenSessionGone(t *testing.T) {
	store := session.NewStore(memstore.New())
	ctx := context.Background()
	require.NoError(t, store.Establish(ctx, device, session.Session{User: testUser(), Token: "tok"}))

	backend := &fakeBackend{}
	r := session.NewRefresher(store, backend, 10*time.Millisecond, zerolog.Nop())
	defer r.StopAll()

	r.Track(device)
	store.Invalidate(ctx, device)

	time.Sleep(50 * time.Millisecond)
	calls := backend.callCount()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, calls, backend.callCount(), "loop winds down once the session is gone")
}

func TestTrackIsIdempotent(t *testing.T) {
	store := session.NewStore(memstore.New())
	backend := &fakeBackend{}
	r := session.NewRefresher(store, backend, time.Hour, zerolog.Nop())
	defer r.StopAll()

	r.Track(device)
	r.Track(device)
	r.Stop(device)
	r.Stop(device)
}
