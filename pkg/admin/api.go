package admin

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/getmockd/mockswitch/pkg/controller"
	"github.com/getmockd/mockswitch/pkg/logging"
	"github.com/getmockd/mockswitch/pkg/metrics"
)

// DefaultAddr is the admin API listen address when none is configured.
const DefaultAddr = "localhost:4290"

// Server timeouts.
const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// API exposes the controller over HTTP.
type API struct {
	ctrl       *controller.Controller
	metrics    *metrics.Metrics
	log        *slog.Logger
	corsConfig CORSConfig
	version    string
	startTime  time.Time
	handler    http.Handler
}

// New creates an API for ctrl.
func New(ctrl *controller.Controller, opts ...Option) *API {
	a := &API{
		ctrl:       ctrl,
		log:        logging.Nop(),
		corsConfig: DefaultCORSConfig(),
		startTime:  time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}

	r := mux.NewRouter()
	a.registerRoutes(r)
	a.handler = a.withMiddleware(r)
	return a
}

// Handler returns the API's root handler including middleware.
func (a *API) Handler() http.Handler {
	return a.handler
}

// Run serves the API on addr until ctx is done, then shuts down gracefully.
// A clean shutdown returns nil.
func (a *API) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

// Serve serves the API on ln until ctx is done.
func (a *API) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      a.handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	a.log.Info("admin API listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	a.log.Info("admin API stopped")
	return nil
}

// Uptime returns the API uptime in seconds.
func (a *API) Uptime() int {
	return int(time.Since(a.startTime).Seconds())
}
