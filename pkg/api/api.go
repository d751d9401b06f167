package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Felipebasilio/ReactiveBeerBack/internal/router"
	"github.com/Felipebasilio/ReactiveBeerBack/internal/store"
	"github.com/Felipebasilio/ReactiveBeerBack/pkg/config"
	"github.com/Felipebasilio/ReactiveBeerBack/pkg/logging"
)

// API serves the catalog and stock/price HTTP surface.
type API struct {
	cfg        *config.Config
	store      *store.Store
	log        *slog.Logger
	httpServer *http.Server
	startTime  time.Time
}

// Option is a functional option for configuring an API.
type Option func(*API)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.log = log
		}
	}
}

// New builds the API around an opened store. The route table is built once
// here and is immutable afterwards.
func New(cfg *config.Config, st *store.Store, opts ...Option) *API {
	a := &API{
		cfg:       cfg,
		store:     st,
		log:       logging.Nop(),
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}

	table := router.NewTable()
	a.registerRoutes(table)

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.withMiddleware(table),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return a
}

// registerRoutes installs the static route list. Resolution is
// first-match-wins, so order matters; the literal resource prefixes here
// are disjoint and cannot shadow each other.
func (a *API) registerRoutes(t *router.Table) {
	t.MustHandle(http.MethodGet, "/health", a.handleHealth)

	t.MustHandle(http.MethodGet, "/products", a.handleListProducts)
	t.MustHandle(http.MethodPost, "/products", a.handleCreateProduct)
	t.MustHandle(http.MethodPut, "/products/:id", a.handleUpdateProduct)
	t.MustHandle(http.MethodDelete, "/products/:id", a.handleDeleteProduct)

	t.MustHandle(http.MethodGet, "/stock-price/:sku", a.handleGetStockPrice)
	t.MustHandle(http.MethodPost, "/stock-price", a.handleCreateStockPrice)
	t.MustHandle(http.MethodPut, "/stock-price/:sku", a.handleUpdateStockPrice)
	t.MustHandle(http.MethodDelete, "/stock-price/:sku", a.handleDeleteStockPrice)

	t.MustHandle(http.MethodGet, "/products-with-skus", a.handleListProductsWithSkus)
}

// Handler returns the fully wrapped handler. Exposed for tests.
func (a *API) Handler() http.Handler {
	return a.httpServer.Handler
}

// Start begins serving and blocks until the listener fails or Shutdown is
// called. A clean shutdown returns nil.
func (a *API) Start() error {
	a.log.Info("server listening", "addr", a.httpServer.Addr)
	err := a.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the listener.
func (a *API) Shutdown(ctx context.Context) error {
	a.log.Info("server shutting down")
	return a.httpServer.Shutdown(ctx)
}

// Uptime returns whole seconds since the API was constructed.
func (a *API) Uptime() int64 {
	return int64(time.Since(a.startTime).Seconds())
}
