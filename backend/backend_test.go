package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/amodkhurasiya/tribal-crafts-server/backend"
	"github.com/amodkhurasiya/tribal-crafts-server/cart"
	"github.com/amodkhurasiya/tribal-crafts-server/pricing"
)

func newTestClient(t *testing.T, handler http.Handler, options ...backend.ClientOption) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL, time.Second, zerolog.Nop(), options...)
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]backend.Order{})
	}))

	_, err := client.MyOrders(context.Background(), "secret-token")
	require.NoError(t, err)
	require.Equal(t, "Bearer secret-token", gotAuth)
}

func TestUnauthorizedFiresHookAndClassifies(t *testing.T) {
	hookFired := false
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}), backend.WithUnauthorizedHook(func(context.Context) { hookFired = true }))

	_, err := client.MyOrders(context.Background(), "stale")
	require.Error(t, err)
	require.True(t, backend.IsUnauthorized(err))
	require.True(t, hookFired)
	require.Contains(t, err.Error(), "token expired")
}

func TestErrorMessageFromErrorField(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid payload"})
	}))

	_, err := client.Product(context.Background(), "p1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid payload")

	var apiErr *backend.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestProductsAcceptsBareArray(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"p1","name":"Dokra Horse","price":1200}]`))
	}))

	products, err := client.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "p1", products[0].ID)
}

func TestProductsAcceptsWrapper(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[{"id":"p2","name":"Warli Painting","price":800}]}`))
	}))

	products, err := client.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "p2", products[0].ID)
}

func TestUserRatingNotFoundMeansUnrated(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, rated, err := client.UserRating(context.Background(), "tok", "p1")
	require.NoError(t, err)
	require.False(t, rated)
}

func TestAdminLoginRejectsNonAdmin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"_id":"u1","name":"Asha","email":"a@b.c","role":"user"},"token":"tok"}`))
	}))

	_, err := client.AdminLogin(context.Background(), backend.Credentials{Email: "a@b.c", Password: "pw"})
	require.ErrorIs(t, err, backend.ErrAdminRequired)
}

func TestBuildOrder(t *testing.T) {
	lines := []cart.Line{
		{ID: "p1", Name: "Dokra Horse", UnitPrice: 1200, Quantity: 2, Image: "/images/horse.jpg"},
	}
	quote := pricing.Quote{Subtotal: 1800, Shipping: 150, Discount: 360, Total: 1590}
	addr := backend.ShippingAddress{FullName: "Asha", City: "Bhopal"}

	req, err := backend.BuildOrder(lines, quote, addr, "credit-card", nil)
	require.NoError(t, err)
	require.Len(t, req.Items, 1)
	require.Equal(t, "p1", req.Items[0].Product)
	require.Equal(t, 2, req.Items[0].Quantity)
	require.Equal(t, "credit_card", req.PaymentMethod)
	require.Equal(t, 1590.0, req.TotalAmount)
	// originalAmount is the bare subtotal; shipping never leaks into it.
	require.Equal(t, 1800.0, req.OriginalAmount)
	require.Equal(t, 360.0, req.Discount)
}

func TestBuildOrderRejectsMissingIdentity(t *testing.T) {
	lines := []cart.Line{{Name: "Nameless Basket", UnitPrice: 300, Quantity: 1}}

	_, err := backend.BuildOrder(lines, pricing.Quote{}, backend.ShippingAddress{}, "upi", nil)
	require.ErrorIs(t, err, backend.ErrOrderItemWithoutIdentity)
	require.Contains(t, err.Error(), "Nameless Basket")
}

func TestBuildOrderRejectsUnknownPaymentMethod(t *testing.T) {
	lines := []cart.Line{{ID: "p1", Name: "Basket", UnitPrice: 300, Quantity: 1}}

	_, err := backend.BuildOrder(lines, pricing.Quote{}, backend.ShippingAddress{}, "barter", nil)
	require.ErrorIs(t, err, pricing.ErrUnknownPaymentMethod)
}

func TestAccountEndpointContracts(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{}`))
	}))

	require.NoError(t, client.ChangePassword(context.Background(), "tok", "old", "new"))
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/users/change-password", gotPath)

	require.NoError(t, client.DeleteAccount(context.Background(), "tok"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/users/delete-account", gotPath)
}

func TestRefreshTokenRequiresToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	_, err := client.RefreshToken(context.Background(), "old")
	require.Error(t, err)
}
