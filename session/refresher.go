package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// TokenRefresher exchanges a still-valid token for a fresh one.
type TokenRefresher interface {
	RefreshToken(ctx context.Context, token string) (string, error)
}

// Refresher keeps authenticated sessions alive by refreshing their tokens on
// a fixed interval. Each tracked device runs as an explicitly cancellable
// task tied to the session's lifetime: logout or a failed refresh stops it,
// and StopAll tears everything down on shutdown.
type Refresher struct {
	store    *Store
	backend  TokenRefresher
	interval time.Duration
	log      zerolog.Logger

	lock    sync.Mutex
	cancels map[string]context.CancelFunc
}

func NewRefresher(store *Store, backend TokenRefresher, interval time.Duration, log zerolog.Logger) *Refresher {
	return &Refresher{
		store:    store,
		backend:  backend,
		interval: interval,
		log:      log.With().Str("component", "session-refresher").Logger(),
		cancels:  make(map[string]context.CancelFunc),
	}
}

// Track starts the refresh loop for a device. Tracking an already-tracked
// device is a no-op.
func (r *Refresher) Track(deviceID string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, running := r.cancels[deviceID]; running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancels[deviceID] = cancel
	go r.run(ctx, deviceID)
}

// Stop cancels the refresh loop for a device.
func (r *Refresher) Stop(deviceID string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if cancel, ok := r.cancels[deviceID]; ok {
		cancel()
		delete(r.cancels, deviceID)
	}
}

// StopAll cancels every refresh loop.
func (r *Refresher) StopAll() {
	r.lock.Lock()
	defer r.lock.Unlock()

	for deviceID, cancel := range r.cancels {
		cancel()
		delete(r.cancels, deviceID)
	}
}

func (r *Refresher) run(ctx context.Context, deviceID string) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !r.refresh(ctx, deviceID) {
				r.Stop(deviceID)
				return
			}
		}
	}
}

// refresh performs one refresh attempt and reports whether the loop should
// keep running.
func (r *Refresher) refresh(ctx context.Context, deviceID string) bool {
	sess, ok := r.store.Restore(ctx, deviceID)
	if !ok {
		// Session is gone (logged out elsewhere); nothing left to keep alive.
		return false
	}

	if exp, known := tokenExpiry(sess.Token); known {
		r.log.Debug().Str("device", deviceID).Time("expires", exp).Msg("refreshing token")
	}

	token, err := r.backend.RefreshToken(ctx, sess.Token)
	if err != nil {
		r.log.Warn().Err(err).Str("device", deviceID).Msg("token refresh failed, invalidating session")
		r.store.Invalidate(ctx, deviceID)
		return false
	}

	if err := r.store.UpdateToken(ctx, deviceID, token); err != nil {
		r.log.Error().Err(err).Str("device", deviceID).Msg("failed to persist refreshed token")
	}
	return true
}

// tokenExpiry reads the exp claim without verifying the signature; the
// backend is the verifier, this is only for observability.
func tokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
