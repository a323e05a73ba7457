package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/amodkhurasiya/tribal-crafts-server/backend"
	"github.com/amodkhurasiya/tribal-crafts-server/cart"
	"github.com/amodkhurasiya/tribal-crafts-server/catalog"
	"github.com/amodkhurasiya/tribal-crafts-server/internal/config"
	"github.com/amodkhurasiya/tribal-crafts-server/server"
	"github.com/amodkhurasiya/tribal-crafts-server/session"
	"github.com/amodkhurasiya/tribal-crafts-server/storage"
	"github.com/amodkhurasiya/tribal-crafts-server/storage/memstore"
	"github.com/amodkhurasiya/tribal-crafts-server/storage/redisstore"
	"github.com/amodkhurasiya/tribal-crafts-server/wishlist"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	logger := newLogger(c)

	devices, err := newDeviceStorage(c, logger)
	if err != nil {
		return fmt.Errorf("device storage: %w", err)
	}

	sessions := session.NewStore(devices)
	refresher := &refresherHolder{}

	client := backend.NewClient(
		c.GetBackendBaseURL(),
		c.GetBackendTimeout(),
		logger,
		backend.WithUnauthorizedHook(func(ctx context.Context) {
			deviceID := server.DeviceIDFromContext(ctx)
			if deviceID == "" {
				return
			}
			refresher.Stop(deviceID)
			sessions.Invalidate(ctx, deviceID)
		}),
	)
	refresher.Refresher = session.NewRefresher(sessions, client, c.GetRefreshInterval(), logger)
	defer refresher.StopAll()

	catalogStore := catalog.NewStore()
	loadCatalog(client, catalogStore, logger)

	srv := server.New(c, logger, server.Deps{
		Backend:   client,
		Catalog:   catalogStore,
		Carts:     cart.NewService(devices),
		Wishlists: wishlist.NewService(devices),
		Sessions:  sessions,
		Refresher: refresher.Refresher,
		Devices:   devices,
	})

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// refresherHolder breaks the construction cycle between the backend client
// (whose unauthorized hook stops refresh loops) and the refresher (which
// calls the backend client).
type refresherHolder struct {
	*session.Refresher
}

func (h *refresherHolder) Stop(deviceID string) {
	if h.Refresher != nil {
		h.Refresher.Stop(deviceID)
	}
}

func (h *refresherHolder) StopAll() {
	if h.Refresher != nil {
		h.Refresher.StopAll()
	}
}

func newLogger(c config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if c.GetEnv() == "DEV" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger
}

func newDeviceStorage(c config.Config, logger zerolog.Logger) (storage.Repo, error) {
	addr := c.GetRedisAddr()
	if addr == "" {
		logger.Info().Msg("device storage: in-memory")
		return memstore.New(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store, err := redisstore.Connect(ctx, addr, c.GetRedisPassword(), c.GetRedisDB())
	if err != nil {
		return nil, err
	}
	logger.Info().Str("addr", addr).Msg("device storage: redis")
	return store, nil
}

// loadCatalog does the initial product fetch. A backend that is down at
// start is not fatal: the catalog stays empty until a refresh succeeds.
func loadCatalog(client *backend.Client, store *catalog.Store, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	token := store.BeginLoad()
	products, err := client.Products(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("initial catalog load failed, starting empty")
		return
	}
	if store.CompleteLoad(token, products) {
		categories := map[string]struct{}{}
		var list []string
		for _, p := range products {
			if p.Category == "" {
				continue
			}
			if _, seen := categories[p.Category]; !seen {
				categories[p.Category] = struct{}{}
				list = append(list, p.Category)
			}
		}
		store.SetCategories(list)
		logger.Info().Int("products", len(products)).Msg("catalog loaded")
	}
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
