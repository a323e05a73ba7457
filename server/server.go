package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/amodkhurasiya/tribal-crafts-server/backend"
	"github.com/amodkhurasiya/tribal-crafts-server/cart"
	"github.com/amodkhurasiya/tribal-crafts-server/catalog"
	"github.com/amodkhurasiya/tribal-crafts-server/imageurl"
	"github.com/amodkhurasiya/tribal-crafts-server/internal/config"
	"github.com/amodkhurasiya/tribal-crafts-server/pricing"
	"github.com/amodkhurasiya/tribal-crafts-server/session"
	"github.com/amodkhurasiya/tribal-crafts-server/storage"
	"github.com/amodkhurasiya/tribal-crafts-server/wishlist"
)

// Deps are the wired-up services the server routes requests into.
type Deps struct {
	Backend   *backend.Client
	Catalog   *catalog.Store
	Carts     *cart.Service
	Wishlists *wishlist.Service
	Sessions  *session.Store
	Refresher *session.Refresher
	Devices   storage.Repo
}

type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config
	log    zerolog.Logger

	backend   *backend.Client
	catalog   *catalog.Store
	carts     *cart.Service
	wishlists *wishlist.Service
	sessions  *session.Store
	refresher *session.Refresher
	devices   storage.Repo
	rules     pricing.Rules
	images    *imageurl.Resolver
}

func New(cfg config.Config, log zerolog.Logger, deps Deps) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		log:       log.With().Str("component", "server").Logger(),
		backend:   deps.Backend,
		catalog:   deps.Catalog,
		carts:     deps.Carts,
		wishlists: deps.Wishlists,
		sessions:  deps.Sessions,
		refresher: deps.Refresher,
		devices:   deps.Devices,
		rules: pricing.Rules{
			FreeShippingOver: cfg.GetFreeShippingOver(),
			ShippingFee:      cfg.GetShippingFee(),
			CODCeiling:       cfg.GetCODCeiling(),
			Coupons:          cfg.GetCoupons(),
		},
		images: imageurl.NewResolver(cfg.GetBackendOrigin(), cfg.GetSiteOrigin()),
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
