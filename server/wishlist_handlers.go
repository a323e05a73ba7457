package server

import (
	"net/http"

	"github.com/amodkhurasiya/tribal-crafts-server/wishlist"
)

func (s *Server) WishlistHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := s.wishlists.Items(r.Context(), DeviceIDFromContext(r.Context()))
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"items": items})
	}
}

func (s *Server) ToggleWishlistHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item wishlist.Item
		if !decodeBody(w, r, &item) {
			return
		}
		if item.ID == "" {
			respondMessage(w, http.StatusBadRequest, "item has no identity")
			return
		}

		if product, ok := s.catalog.Get(item.ID); ok {
			item.Name = product.Name
			item.Price = product.Price
			item.Image = s.images.Resolve(product.Image)
		}

		added, items, err := s.wishlists.Toggle(r.Context(), DeviceIDFromContext(r.Context()), item)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"added": added, "items": items})
	}
}

func (s *Server) ClearWishlistHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.wishlists.Clear(r.Context(), DeviceIDFromContext(r.Context())); err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}
