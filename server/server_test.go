package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/amodkhurasiya/tribal-crafts-server/backend"
	"github.com/amodkhurasiya/tribal-crafts-server/cart"
	"github.com/amodkhurasiya/tribal-crafts-server/catalog"
	"github.com/amodkhurasiya/tribal-crafts-server/internal/config"
	"github.com/amodkhurasiya/tribal-crafts-server/server"
	"github.com/amodkhurasiya/tribal-crafts-server/session"
	"github.com/amodkhurasiya/tribal-crafts-server/storage/memstore"
	"github.com/amodkhurasiya/tribal-crafts-server/wishlist"
)

const testDevice = "test-device"

type fixture struct {
	server   *server.Server
	sessions *session.Store
}

// newFixture wires a full server against a scripted backend.
func newFixture(t *testing.T, backendHandler http.Handler) *fixture {
	t.Helper()

	if backendHandler == nil {
		backendHandler = http.NotFoundHandler()
	}
	backendSrv := httptest.NewServer(backendHandler)
	t.Cleanup(backendSrv.Close)

	repo := memstore.New()
	sessions := session.NewStore(repo)
	client := backend.NewClient(backendSrv.URL, time.Second, zerolog.Nop())
	refresher := session.NewRefresher(sessions, client, time.Hour, zerolog.Nop())
	t.Cleanup(refresher.StopAll)

	catalogStore := catalog.NewStore()
	seq := catalogStore.BeginLoad()
	catalogStore.CompleteLoad(seq, []catalog.Product{
		{ID: "p1", Name: "Dokra Horse", Price: 1200, Category: "metalwork", Stock: 2, Tribe: "Dhokra"},
		{ID: "p2", Name: "Warli Painting", Price: 800, Category: "painting", Stock: 10},
	})

	srv := server.New(config.New(), zerolog.Nop(), server.Deps{
		Backend:   client,
		Catalog:   catalogStore,
		Carts:     cart.NewService(repo),
		Wishlists: wishlist.NewService(repo),
		Sessions:  sessions,
		Refresher: refresher,
		Devices:   repo,
	})

	return &fixture{server: srv, sessions: sessions}
}

func (f *fixture) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-Device-ID", testDevice)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCartFlow(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.request(t, http.MethodPost, "/api/cart/items", `{"id":"p1","price":1,"quantity":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	c := decode[cart.Cart](t, rec)
	require.Len(t, c.Items, 1)
	// Catalog, not payload, is the price authority.
	require.Equal(t, 1200.0, c.Items[0].UnitPrice)
	require.Equal(t, 3, c.Items[0].Quantity)

	rec = f.request(t, http.MethodPost, "/api/cart/items/p1/decrease", "")
	c = decode[cart.Cart](t, rec)
	require.Equal(t, 2, c.TotalQuantity)

	rec = f.request(t, http.MethodDelete, "/api/cart/items/p1", "")
	c = decode[cart.Cart](t, rec)
	require.Empty(t, c.Items)
	require.Zero(t, c.TotalAmount)
}

func TestAddCartItemStockCeiling(t *testing.T) {
	f := newFixture(t, nil)

	// p1 carries stock 2; the first add lands at quantity 2.
	rec := f.request(t, http.MethodPost, "/api/cart/items", `{"id":"p1","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodPost, "/api/cart/items", `{"id":"p1"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCouponAndQuote(t *testing.T) {
	f := newFixture(t, nil)

	f.request(t, http.MethodPost, "/api/cart/items", `{"id":"p2"}`)

	rec := f.request(t, http.MethodPost, "/api/cart/coupon", `{"code":"bogus"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.request(t, http.MethodPost, "/api/cart/coupon", `{"code":"tribal20"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/cart/quote", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Quote  struct{ Subtotal, Shipping, Discount, Total float64 } `json:"quote"`
		Coupon string                                                `json:"coupon"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 800.0, body.Quote.Subtotal)
	require.Equal(t, 150.0, body.Quote.Shipping)
	require.Equal(t, 160.0, body.Quote.Discount)
	require.Equal(t, 790.0, body.Quote.Total)
	require.Equal(t, "tribal20", body.Coupon)
}

func TestProductsFilterQuery(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.request(t, http.MethodGet, "/api/products?category=painting", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Products []catalog.Product `json:"products"`
		Total    int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Total)
	require.Equal(t, "p2", body.Products[0].ID)
}

func TestSessionRequired(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.request(t, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRequiresAdminRole(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.sessions.Establish(t.Context(), testDevice, session.Session{
		User:  session.User{ID: "u1", Name: "Asha", Email: "a@b.c", Role: "user"},
		Token: "tok",
	}))

	rec := f.request(t, http.MethodGet, "/api/admin/orders", "")
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoginEstablishesSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"_id":"u1","name":"Asha","email":"a@b.c","role":"user"},"token":"tok-1"}`))
	})
	f := newFixture(t, mux)

	rec := f.request(t, http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "tok-1", "token never leaves the server")

	rec = f.request(t, http.MethodGet, "/api/auth/session", "")
	var body struct {
		Authenticated bool         `json:"authenticated"`
		User          session.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Authenticated)
	require.Equal(t, "u1", body.User.ID)
}

func TestCheckoutClearsCartAndCoupon(t *testing.T) {
	var gotOrder backend.OrderRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotOrder))
		w.Write([]byte(`{"_id":"o1","status":"pending"}`))
	})
	f := newFixture(t, mux)
	require.NoError(t, f.sessions.Establish(t.Context(), testDevice, session.Session{
		User:  session.User{ID: "u1", Name: "Asha", Email: "a@b.c", Role: "user"},
		Token: "tok",
	}))

	f.request(t, http.MethodPost, "/api/cart/items", `{"id":"p1"}`)
	f.request(t, http.MethodPost, "/api/cart/coupon", `{"code":"WELCOME10"}`)

	rec := f.request(t, http.MethodPost, "/api/checkout", `{"shippingAddress":{"fullName":"Asha","city":"Bhopal"},"paymentMethod":"upi"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Server-side quote: 1200 + 150 shipping - 120 discount.
	require.Equal(t, "upi", gotOrder.PaymentMethod)
	require.Equal(t, 1230.0, gotOrder.TotalAmount)
	require.Equal(t, 1200.0, gotOrder.OriginalAmount)
	require.Equal(t, 120.0, gotOrder.Discount)

	rec = f.request(t, http.MethodGet, "/api/cart", "")
	c := decode[cart.Cart](t, rec)
	require.Empty(t, c.Items)

	rec = f.request(t, http.MethodGet, "/api/cart/quote", "")
	require.NotContains(t, rec.Body.String(), "WELCOME10")
}

func TestCheckoutRejectsCODOverCeiling(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.sessions.Establish(t.Context(), testDevice, session.Session{
		User:  session.User{ID: "u1", Name: "Asha", Email: "a@b.c", Role: "user"},
		Token: "tok",
	}))

	// Five horses at 1200 push the total past the cash-on-delivery ceiling.
	f.request(t, http.MethodPost, "/api/cart/items", `{"id":"p1","quantity":5}`)

	rec := f.request(t, http.MethodPost, "/api/checkout", `{"shippingAddress":{},"paymentMethod":"cod"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.sessions.Establish(t.Context(), testDevice, session.Session{
		User:  session.User{ID: "u1", Name: "Asha", Email: "a@b.c", Role: "user"},
		Token: "tok",
	}))

	rec := f.request(t, http.MethodPost, "/api/checkout", `{"shippingAddress":{},"paymentMethod":"upi"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeviceCookieIssued(t *testing.T) {
	f := newFixture(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, "device_id", cookies[0].Name)
	require.NotEmpty(t, cookies[0].Value)
}

func TestWishlistToggle(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.request(t, http.MethodPost, "/api/wishlist/toggle", `{"id":"p2"}`)
	var body struct {
		Added bool            `json:"added"`
		Items []wishlist.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Added)
	require.Equal(t, "Warli Painting", body.Items[0].Name)

	rec = f.request(t, http.MethodPost, "/api/wishlist/toggle", `{"id":"p2"}`)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.False(t, body.Added)
	require.Empty(t, body.Items)
}
