package server

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/amodkhurasiya/tribal-crafts-server/cart"
	"github.com/amodkhurasiya/tribal-crafts-server/storage"
)

func (s *Server) CartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := s.carts.Get(r.Context(), DeviceIDFromContext(r.Context()))
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// AddCartItemHandler adds a product to the cart. When the product exists in
// the cached catalog, the authoritative name, price and stock come from
// there; otherwise the payload is trusted as sent.
func (s *Server) AddCartItemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var line cart.Line
		if !decodeBody(w, r, &line) {
			return
		}

		if product, ok := s.catalog.Get(line.ID); ok {
			line.Name = product.Name
			line.UnitPrice = product.Price
			line.Image = s.images.Resolve(product.Image)
			line.Tribe = product.Tribe
			line.StockLimit = product.Stock
		}

		deviceID := DeviceIDFromContext(r.Context())
		if line.StockLimit > 0 {
			current, err := s.carts.Get(r.Context(), deviceID)
			if err != nil {
				s.respondError(w, r, err)
				return
			}
			for _, existing := range current.Items {
				if existing.ID == line.ID && existing.Quantity >= line.StockLimit {
					respondMessage(w, http.StatusConflict, "no more stock available for this item")
					return
				}
			}
		}

		c, err := s.carts.Add(r.Context(), deviceID, line)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

func (s *Server) RemoveCartItemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := s.carts.Remove(r.Context(), DeviceIDFromContext(r.Context()), r.PathValue("id"))
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

func (s *Server) DecreaseCartItemHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := s.carts.Decrease(r.Context(), DeviceIDFromContext(r.Context()), r.PathValue("id"))
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

func (s *Server) ClearCartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceID := DeviceIDFromContext(r.Context())
		c, err := s.carts.Clear(r.Context(), deviceID)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		// An empty cart cannot carry a coupon.
		_ = s.devices.Delete(r.Context(), deviceID, storage.KeyCartDiscount)
		respondJSON(w, http.StatusOK, c)
	}
}

// ApplyCouponHandler validates a coupon against the current cart total and
// remembers it for checkout. An unknown code is rejected inline and leaves
// any previously applied coupon in place.
func (s *Server) ApplyCouponHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Code string `json:"code"`
		}
		if !decodeBody(w, r, &body) {
			return
		}

		deviceID := DeviceIDFromContext(r.Context())
		c, err := s.carts.Get(r.Context(), deviceID)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		discount, err := s.rules.CouponDiscount(body.Code, c.TotalAmount)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		if err := s.devices.Set(r.Context(), deviceID, storage.KeyCartDiscount, body.Code); err != nil {
			s.respondError(w, r, errors.Wrap(err, "[ApplyCouponHandler] persist coupon"))
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"code": body.Code, "discount": discount})
	}
}

func (s *Server) RemoveCouponHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceID := DeviceIDFromContext(r.Context())
		if err := s.devices.Delete(r.Context(), deviceID, storage.KeyCartDiscount); err != nil {
			s.respondError(w, r, errors.Wrap(err, "[RemoveCouponHandler] delete coupon"))
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}

// QuoteHandler recomputes the checkout breakdown from the cart and the
// applied coupon. Nothing is cached: the quote is always derived fresh.
func (s *Server) QuoteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deviceID := DeviceIDFromContext(r.Context())

		c, err := s.carts.Get(r.Context(), deviceID)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		code, _, err := s.devices.Get(r.Context(), deviceID, storage.KeyCartDiscount)
		if err != nil {
			s.respondError(w, r, errors.Wrap(err, "[QuoteHandler] load coupon"))
			return
		}

		quote, err := s.rules.NewQuote(c.TotalAmount, code)
		if err != nil {
			// A coupon that no longer validates is dropped, not fatal.
			_ = s.devices.Delete(r.Context(), deviceID, storage.KeyCartDiscount)
			code = ""
			quote, _ = s.rules.NewQuote(c.TotalAmount, "")
		}

		respondJSON(w, http.StatusOK, map[string]any{"quote": quote, "coupon": code})
	}
}
