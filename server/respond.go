package server

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/amodkhurasiya/tribal-crafts-server/backend"
	"github.com/amodkhurasiya/tribal-crafts-server/cart"
	"github.com/amodkhurasiya/tribal-crafts-server/pricing"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError translates domain and backend errors to HTTP statuses. A
// backend APIError keeps its original status so the client sees what the
// backend said; everything unrecognized is a 500.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		respondMessage(w, apiErr.StatusCode, apiErr.Message)
	case errors.Is(err, pricing.ErrInvalidCoupon):
		respondMessage(w, http.StatusUnprocessableEntity, "invalid coupon code")
	case errors.Is(err, pricing.ErrUnknownPaymentMethod):
		respondMessage(w, http.StatusBadRequest, "unknown payment method")
	case errors.Is(err, pricing.ErrCODCeilingExceeded):
		respondMessage(w, http.StatusUnprocessableEntity, "cash on delivery is not available for this order total")
	case errors.Is(err, cart.ErrMissingIdentity), errors.Is(err, backend.ErrOrderItemWithoutIdentity):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, backend.ErrAdminRequired):
		respondMessage(w, http.StatusForbidden, "admin privileges required")
	default:
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		if s.env == "DEV" {
			logError(r.Method, r.URL.Path, err.Error())
		}
		respondMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		respondMessage(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}
