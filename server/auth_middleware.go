package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/amodkhurasiya/tribal-crafts-server/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyDeviceID stores the caller's device identity
	ContextKeyDeviceID ContextKey = "device_id"
	// ContextKeySession stores the restored session
	ContextKeySession ContextKey = "session"
)

const deviceCookieName = "device_id"

func withDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, ContextKeyDeviceID, deviceID)
}

// DeviceIDFromContext returns the device identity assigned by the device
// middleware. The empty string means the request never went through it.
func DeviceIDFromContext(ctx context.Context) string {
	deviceID, _ := ctx.Value(ContextKeyDeviceID).(string)
	return deviceID
}

func sessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(ContextKeySession).(session.Session)
	return sess, ok
}

// RequireSession restores the device's persisted session and injects it into
// the request context. Requests without a restorable session get a 401; the
// client reacts to that exactly as it does to a backend 401.
func (s *Server) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceID := DeviceIDFromContext(r.Context())
		sess, ok := s.sessions.Restore(r.Context(), deviceID)
		if !ok {
			respondAuthFailure(w, r, http.StatusUnauthorized, "authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeySession, sess)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin must be chained after RequireSession.
func (s *Server) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessionFromContext(r.Context())
		if !ok || !sess.User.IsAdmin() {
			respondAuthFailure(w, r, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	}
}

// respondAuthFailure includes the login page the client should send the user
// to. Back-office routes point at the admin login, everything else at the
// regular one.
func respondAuthFailure(w http.ResponseWriter, r *http.Request, status int, message string) {
	redirect := "/login"
	if strings.HasPrefix(r.URL.Path, "/api/admin") {
		redirect = "/admin/login"
	}
	respondJSON(w, status, map[string]string{"message": message, "redirect": redirect})
}
