// Package session reconciles in-memory authentication state with the
// persisted copy in device storage, and keeps it valid with a periodic
// refresh against the backend.
package session

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/amodkhurasiya/tribal-crafts-server/storage"
)

// User is the authenticated profile as the backend reports it.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Phone string `json:"phone,omitempty"`
}

// UnmarshalJSON accepts the backend's `_id` spelling alongside `id`.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Role    string `json:"role"`
		Phone   string `json:"phone"`
	}

	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	id := a.MongoID
	if id == "" {
		id = a.ID
	}
	*u = User{ID: id, Name: a.Name, Email: a.Email, Role: a.Role, Phone: a.Phone}
	return nil
}

func (u User) IsAdmin() bool {
	return u.Role == "admin"
}

// Session is the authenticated user plus the bearer token proving it.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Store owns session state for all devices, mirrored into device storage so
// a session survives a full restart.
type Store struct {
	repo storage.Repo
}

func NewStore(repo storage.Repo) *Store {
	return &Store{repo: repo}
}

// Establish records a fresh login or registration.
func (s *Store) Establish(ctx context.Context, deviceID string, sess Session) error {
	if err := s.repo.Set(ctx, deviceID, storage.KeyToken, sess.Token); err != nil {
		return errors.Wrap(err, "[Store.Establish] persist token")
	}
	if err := storage.SetJSON(ctx, s.repo, deviceID, storage.KeyUser, sess.User); err != nil {
		return errors.Wrap(err, "[Store.Establish] persist user")
	}
	return nil
}

// Restore rebuilds a session from persisted data. This is structural only:
// both token and user must be present and parseable, but the token is not
// verified against the backend here. Corrupt data counts as no session and
// is cleared so it cannot keep failing on every restore.
func (s *Store) Restore(ctx context.Context, deviceID string) (Session, bool) {
	token, ok, err := s.repo.Get(ctx, deviceID, storage.KeyToken)
	if err != nil || !ok || token == "" {
		return Session{}, false
	}

	var user User
	ok, err = storage.GetJSON(ctx, s.repo, deviceID, storage.KeyUser, &user)
	if err != nil || !ok || user.Email == "" {
		s.Invalidate(ctx, deviceID)
		return Session{}, false
	}

	return Session{User: user, Token: token}, true
}

// UpdateToken swaps in a refreshed token, in store and persisted copy alike.
func (s *Store) UpdateToken(ctx context.Context, deviceID, token string) error {
	if err := s.repo.Set(ctx, deviceID, storage.KeyToken, token); err != nil {
		return errors.Wrap(err, "[Store.UpdateToken] persist token")
	}
	return nil
}

// UpdateUser persists a changed profile.
func (s *Store) UpdateUser(ctx context.Context, deviceID string, user User) error {
	if err := storage.SetJSON(ctx, s.repo, deviceID, storage.KeyUser, user); err != nil {
		return errors.Wrap(err, "[Store.UpdateUser] persist user")
	}
	return nil
}

// Invalidate clears the session everywhere. Used for logout, failed refresh
// and any 401/403 seen from the backend.
func (s *Store) Invalidate(ctx context.Context, deviceID string) {
	_ = s.repo.Delete(ctx, deviceID, storage.KeyToken)
	_ = s.repo.Delete(ctx, deviceID, storage.KeyUser)
}
