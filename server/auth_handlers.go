package server

import (
	"net/http"

	"github.com/amodkhurasiya/tribal-crafts-server/backend"
	"github.com/amodkhurasiya/tribal-crafts-server/session"
)

// sessionResponse is what the client gets back after any successful
// authentication. The token stays server-side; only the profile goes out.
type sessionResponse struct {
	User session.User `json:"user"`
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return s.authenticate(func(r *http.Request, creds backend.Credentials) (session.Session, error) {
		return s.backend.Login(r.Context(), creds)
	})
}

func (s *Server) AdminLoginHandler() http.HandlerFunc {
	return s.authenticate(func(r *http.Request, creds backend.Credentials) (session.Session, error) {
		return s.backend.AdminLogin(r.Context(), creds)
	})
}

func (s *Server) authenticate(login func(*http.Request, backend.Credentials) (session.Session, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds backend.Credentials
		if !decodeBody(w, r, &creds) {
			return
		}

		sess, err := login(r, creds)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		deviceID := DeviceIDFromContext(r.Context())
		if err := s.sessions.Establish(r.Context(), deviceID, sess); err != nil {
			s.respondError(w, r, err)
			return
		}
		s.refresher.Track(deviceID)

		respondJSON(w, http.StatusOK, sessionResponse{User: sess.User})
	}
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reg backend.Registration
		if !decodeBody(w, r, &reg) {
			return
		}

		sess, err := s.backend.Register(r.Context(), reg)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		deviceID := DeviceIDFromContext(r.Context())
		if err := s.sessions.Establish(r.Context(), deviceID, sess); err != nil {
			s.respondError(w, r, err)
			return
		}
		s.refresher.Track(deviceID)

		respondJSON(w, http.StatusCreated, sessionResponse{User: sess.User})
	}
}

// LogoutHandler clears the session. It succeeds even when there was no
// session to clear.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceID := DeviceIDFromContext(r.Context())
		s.refresher.Stop(deviceID)
		s.sessions.Invalidate(r.Context(), deviceID)
		respondJSON(w, http.StatusNoContent, nil)
	}
}

// SessionHandler reports the restored session, if any. This is the restart
// path: a device that was logged in before the server bounced finds out here
// that it still is, and the refresher picks the session back up.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceID := DeviceIDFromContext(r.Context())
		sess, ok := s.sessions.Restore(r.Context(), deviceID)
		if !ok {
			respondJSON(w, http.StatusOK, map[string]any{"authenticated": false})
			return
		}

		s.refresher.Track(deviceID)
		respondJSON(w, http.StatusOK, map[string]any{"authenticated": true, "user": sess.User})
	}
}

func (s *Server) ForgotPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email string `json:"email"`
		}
		if !decodeBody(w, r, &body) {
			return
		}

		if err := s.backend.ForgotPassword(r.Context(), body.Email); err != nil {
			s.respondError(w, r, err)
			return
		}
		respondMessage(w, http.StatusOK, "password reset email sent")
	}
}

func (s *Server) ResetPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if !decodeBody(w, r, &body) {
			return
		}

		if err := s.backend.ResetPassword(r.Context(), r.PathValue("token"), body.Email, body.Password); err != nil {
			s.respondError(w, r, err)
			return
		}
		respondMessage(w, http.StatusOK, "password reset")
	}
}
