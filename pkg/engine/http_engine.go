package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	stdhttputil "net/http/httputil"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/getmockd/mockswitch/pkg/httputil"
	"github.com/getmockd/mockswitch/pkg/logging"
	"github.com/getmockd/mockswitch/pkg/metrics"
	"github.com/getmockd/mockswitch/pkg/mock"
)

// HTTPEngine serves mock routes on a plain HTTP listener.
type HTTPEngine struct {
	cfg      Config
	upstream *url.URL
	log      *slog.Logger
	metrics  *metrics.Metrics
}

// Option configures an HTTPEngine.
type Option func(*HTTPEngine)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *HTTPEngine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithMetrics records request metrics for every worker.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *HTTPEngine) { e.metrics = m }
}

// NewHTTPEngine creates an engine. It fails only if cfg.Passthrough is set
// and is not an absolute http(s) URL.
func NewHTTPEngine(cfg Config, opts ...Option) (*HTTPEngine, error) {
	e := &HTTPEngine{
		cfg: cfg.withDefaults(),
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if cfg.Passthrough != "" {
		u, err := url.Parse(cfg.Passthrough)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPassthrough, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("%w: %q must be an absolute http(s) URL", ErrInvalidPassthrough, cfg.Passthrough)
		}
		e.upstream = u
	}
	return e, nil
}

// Config returns the effective configuration.
func (e *HTTPEngine) Config() Config {
	return e.cfg
}

// Start implements Engine. The listener is bound before Start returns, so
// an address already in use is reported here rather than in the background.
func (e *HTTPEngine) Start(ctx context.Context, routes []mock.Route) (Instance, error) {
	router, err := e.router(routes)
	if err != nil {
		return nil, err
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", e.cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", e.cfg.Addr, err)
	}

	w := &Worker{
		id:      uuid.NewString(),
		routes:  len(routes),
		addr:    ln.Addr().String(),
		timeout: e.cfg.ShutdownTimeout,
		done:    make(chan struct{}),
	}
	w.log = e.log.With("worker", w.id)
	w.srv = &http.Server{
		Handler:           router,
		ReadTimeout:       e.cfg.ReadTimeout,
		ReadHeaderTimeout: e.cfg.ReadTimeout,
		WriteTimeout:      e.cfg.WriteTimeout,
	}

	w.log.Info("starting mock worker", "addr", w.addr, "routes", w.routes)
	go func() {
		defer close(w.done)
		if err := w.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			w.log.Error("mock worker error", "error", err)
		}
	}()
	return w, nil
}

// router builds the mux for one worker. Routes keep their given order, so
// the first matching route wins.
func (e *HTTPEngine) router(routes []mock.Route) (*mux.Router, error) {
	r := mux.NewRouter()
	for _, rt := range routes {
		if rt.Handler == nil {
			return nil, fmt.Errorf("%w: %s has no handler", ErrInvalidRoute, rt)
		}
		route := r.Handle(rt.Path, e.instrument(rt.Name, rt.Handler))
		if rt.Method != "" {
			route.Methods(rt.Method)
		}
		if err := route.GetError(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoute, rt, err)
		}
	}

	fallback := e.instrument("", e.fallback())
	r.NotFoundHandler = fallback
	// A path served for another method is still unhandled for this one.
	r.MethodNotAllowedHandler = fallback
	return r, nil
}

// fallback handles requests no enabled route matched.
func (e *HTTPEngine) fallback() http.Handler {
	if e.upstream == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httputil.WriteNotFound(w, "no_handler",
				fmt.Sprintf("no enabled mock handler for %s %s", r.Method, r.URL.Path))
		})
	}

	proxy := stdhttputil.NewSingleHostReverseProxy(e.upstream)
	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = e.upstream.Host
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		e.log.Warn("passthrough failed", "method", r.Method, "path", r.URL.Path, "error", err)
		httputil.WriteBadGateway(w, "passthrough_failed", err.Error())
	}
	return proxy
}

// instrument records metrics and a debug log line for each request.
func (e *HTTPEngine) instrument(name string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := newStatusWriter(w)
		next.ServeHTTP(sw, r)

		d := time.Since(start)
		e.metrics.ObserveRequest(r.Method, name, sw.status, d)
		e.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"handler", name,
			"status", sw.status,
			"duration", d,
		)
	})
}

// Worker is an Instance served by HTTPEngine.
type Worker struct {
	id      string
	routes  int
	addr    string
	timeout time.Duration
	srv     *http.Server
	done    chan struct{}
	log     *slog.Logger

	stopOnce sync.Once
	stopErr  error
}

// ID implements Instance.
func (w *Worker) ID() string { return w.id }

// Routes implements Instance.
func (w *Worker) Routes() int { return w.routes }

// Addr returns the bound listen address, useful when Config.Addr used port 0.
func (w *Worker) Addr() string { return w.addr }

// URL returns the base URL of the worker.
func (w *Worker) URL() string { return "http://" + w.addr }

// Stop implements Instance. In-flight requests get up to the configured
// shutdown timeout (or until ctx is done) before connections are closed.
func (w *Worker) Stop(ctx context.Context) error {
	w.stopOnce.Do(func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, w.timeout)
		defer cancel()

		if err := w.srv.Shutdown(shutdownCtx); err != nil {
			_ = w.srv.Close()
			w.stopErr = fmt.Errorf("shutdown worker %s: %w", w.id, err)
		}
		<-w.done
		w.log.Info("mock worker stopped")
	})
	return w.stopErr
}

var (
	_ Engine   = (*HTTPEngine)(nil)
	_ Instance = (*Worker)(nil)
)
