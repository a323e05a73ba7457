package server

import (
	"net/http"

	"github.com/amodkhurasiya/tribal-crafts-server/backend"
)

func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		user, err := s.backend.Profile(r.Context(), sess.Token)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}

// UpdateProfileHandler pushes a profile change to the backend and keeps the
// persisted session copy in step with what the backend accepted.
func (s *Server) UpdateProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		var update backend.ProfileUpdate
		if !decodeBody(w, r, &update) {
			return
		}

		user, err := s.backend.UpdateProfile(r.Context(), sess.Token, update)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		deviceID := DeviceIDFromContext(r.Context())
		if err := s.sessions.UpdateUser(r.Context(), deviceID, user); err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}

func (s *Server) ChangePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		var body struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if !decodeBody(w, r, &body) {
			return
		}

		if err := s.backend.ChangePassword(r.Context(), sess.Token, body.CurrentPassword, body.NewPassword); err != nil {
			s.respondError(w, r, err)
			return
		}
		respondMessage(w, http.StatusOK, "password changed")
	}
}

// DeleteAccountHandler deletes the account on the backend and then tears
// down everything local: session, refresh loop, cart, wishlist.
func (s *Server) DeleteAccountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())
		deviceID := DeviceIDFromContext(r.Context())

		if err := s.backend.DeleteAccount(r.Context(), sess.Token); err != nil {
			s.respondError(w, r, err)
			return
		}

		s.refresher.Stop(deviceID)
		s.sessions.Invalidate(r.Context(), deviceID)
		if _, err := s.carts.Clear(r.Context(), deviceID); err != nil {
			s.log.Error().Err(err).Str("device", deviceID).Msg("cart not cleared after account deletion")
		}
		if err := s.wishlists.Clear(r.Context(), deviceID); err != nil {
			s.log.Error().Err(err).Str("device", deviceID).Msg("wishlist not cleared after account deletion")
		}

		respondJSON(w, http.StatusNoContent, nil)
	}
}
