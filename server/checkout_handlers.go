package server

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/amodkhurasiya/tribal-crafts-server/backend"
	"github.com/amodkhurasiya/tribal-crafts-server/storage"
)

type checkoutRequest struct {
	ShippingAddress backend.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
	PaymentDetails  map[string]any          `json:"paymentDetails"`
}

// CheckoutHandler turns the device's cart into a backend order. The quote is
// recomputed server-side from the cart and the applied coupon; nothing the
// client sends about money is trusted. On success the cart and the coupon
// are cleared.
func (s *Server) CheckoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())
		deviceID := DeviceIDFromContext(r.Context())

		var req checkoutRequest
		if !decodeBody(w, r, &req) {
			return
		}

		c, err := s.carts.Get(r.Context(), deviceID)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		if len(c.Items) == 0 {
			respondMessage(w, http.StatusBadRequest, "cart is empty")
			return
		}

		code, _, err := s.devices.Get(r.Context(), deviceID, storage.KeyCartDiscount)
		if err != nil {
			s.respondError(w, r, errors.Wrap(err, "[CheckoutHandler] load coupon"))
			return
		}
		quote, err := s.rules.NewQuote(c.TotalAmount, code)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		if err := s.rules.CheckPaymentConstraints(req.PaymentMethod, quote.Total); err != nil {
			s.respondError(w, r, err)
			return
		}

		orderReq, err := backend.BuildOrder(c.Items, quote, req.ShippingAddress, req.PaymentMethod, req.PaymentDetails)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		order, err := s.backend.CreateOrder(r.Context(), sess.Token, orderReq)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		// The order is placed; local purchase state is spent.
		if _, err := s.carts.Clear(r.Context(), deviceID); err != nil {
			s.log.Error().Err(err).Str("device", deviceID).Msg("cart not cleared after order")
		}
		_ = s.devices.Delete(r.Context(), deviceID, storage.KeyCartDiscount)

		respondJSON(w, http.StatusCreated, order)
	}
}

func (s *Server) OrdersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		orders, err := s.backend.MyOrders(r.Context(), sess.Token)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		if orders == nil {
			orders = []backend.Order{}
		}
		respondJSON(w, http.StatusOK, map[string]any{"orders": orders})
	}
}

func (s *Server) OrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		order, err := s.backend.Order(r.Context(), sess.Token, r.PathValue("id"))
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, order)
	}
}
