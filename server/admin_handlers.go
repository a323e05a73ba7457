package server

import (
	"net/http"

	"github.com/amodkhurasiya/tribal-crafts-server/backend"
	"github.com/amodkhurasiya/tribal-crafts-server/session"
)

// Admin handlers proxy the back-office straight through to the backend with
// the admin's own token. The gateway adds nothing but the role check in the
// middleware chain; the backend stays the authority on every admin action.

func (s *Server) AdminProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		products, err := s.backend.AdminProducts(r.Context(), sess.Token)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"products": s.resolveImages(products)})
	}
}

func (s *Server) AdminCreateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		var input backend.ProductInput
		if !decodeBody(w, r, &input) {
			return
		}

		product, err := s.backend.AdminCreateProduct(r.Context(), sess.Token, input)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusCreated, product)
	}
}

func (s *Server) AdminUpdateProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		var input backend.ProductInput
		if !decodeBody(w, r, &input) {
			return
		}

		product, err := s.backend.AdminUpdateProduct(r.Context(), sess.Token, r.PathValue("id"), input)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, product)
	}
}

func (s *Server) AdminDeleteProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		if err := s.backend.AdminDeleteProduct(r.Context(), sess.Token, r.PathValue("id")); err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}

func (s *Server) AdminOrdersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		orders, err := s.backend.AdminOrders(r.Context(), sess.Token)
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

func (s *Server) AdminOrderStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		var body struct {
			Status string `json:"status"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		if body.Status == "" {
			respondMessage(w, http.StatusBadRequest, "status is required")
			return
		}

		order, err := s.backend.AdminUpdateOrderStatus(r.Context(), sess.Token, r.PathValue("id"), body.Status)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, order)
	}
}

func (s *Server) AdminUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		users, err := s.backend.AdminUsers(r.Context(), sess.Token)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		if users == nil {
			users = []session.User{}
		}
		respondJSON(w, http.StatusOK, map[string]any{"users": users})
	}
}

func (s *Server) AdminUpdateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		var update map[string]any
		if !decodeBody(w, r, &update) {
			return
		}

		user, err := s.backend.AdminUpdateUser(r.Context(), sess.Token, r.PathValue("id"), update)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, user)
	}
}

func (s *Server) AdminDeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessionFromContext(r.Context())

		if err := s.backend.AdminDeleteUser(r.Context(), sess.Token, r.PathValue("id")); err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusNoContent, nil)
	}
}
