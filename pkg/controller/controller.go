package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/looplab/fsm"

	"github.com/getmockd/mockswitch/pkg/engine"
	"github.com/getmockd/mockswitch/pkg/logging"
	"github.com/getmockd/mockswitch/pkg/messages"
	"github.com/getmockd/mockswitch/pkg/metrics"
	"github.com/getmockd/mockswitch/pkg/mock"
	"github.com/getmockd/mockswitch/pkg/store"
)

// DefaultStorageKey is the key the state map is persisted under.
const DefaultStorageKey = "mockswitch:handler-config"

// Construction errors.
var (
	ErrNoEngine = errors.New("controller: engine is required")
	ErrNoStore  = errors.New("controller: store is required")
)

// Config is supplied once at construction and never changes.
type Config struct {
	// Enabled turns the controller on. A disabled controller accepts every
	// call and does nothing.
	Enabled bool
	// Groups is the handler catalog in declaration order.
	Groups []mock.Group
	// Locale selects the message catalog and listing collation.
	Locale messages.Locale
	// StorageKey overrides DefaultStorageKey.
	StorageKey string
}

// HandlerInfo describes one handler for listings.
type HandlerInfo struct {
	GroupName   string `json:"groupName"`
	ID          string `json:"id"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// Controller tracks handler state and drives the worker lifecycle.
type Controller struct {
	enabled  bool
	registry *mock.Registry
	initial  map[string]bool
	engine   engine.Engine
	store    store.KV
	key      string
	locale   messages.Locale

	reporter *logging.Reporter
	log      *slog.Logger
	metrics  *metrics.Metrics

	// opMu serializes mutating operations.
	opMu sync.Mutex

	// mu guards the fields below for readers.
	mu          sync.RWMutex
	runtime     map[string]bool
	initialized bool
	instance    engine.Instance

	lifecycle *fsm.FSM

	subMu   sync.Mutex
	subs    []*Subscription
	nextSub uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for operational logs. Unless WithReporter is
// also given, user-visible messages go to the same logger in Config.Locale.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithReporter sets the sink for user-visible messages.
func WithReporter(r *logging.Reporter) Option {
	return func(c *Controller) { c.reporter = r }
}

// WithMetrics records lifecycle metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// New builds the registry, computes the initial states and, when enabled,
// initializes the runtime state from kv.
func New(ctx context.Context, cfg Config, eng engine.Engine, kv store.KV, opts ...Option) (*Controller, error) {
	if cfg.Enabled && eng == nil {
		return nil, ErrNoEngine
	}
	if cfg.Enabled && kv == nil {
		return nil, ErrNoStore
	}

	reg, err := mock.NewRegistry(cfg.Groups)
	if err != nil {
		return nil, err
	}

	locale := cfg.Locale
	if locale == "" {
		locale = messages.DefaultLocale
	}
	key := cfg.StorageKey
	if key == "" {
		key = DefaultStorageKey
	}

	c := &Controller{
		enabled:  cfg.Enabled,
		registry: reg,
		initial:  make(map[string]bool, reg.Len()),
		engine:   eng,
		store:    kv,
		key:      key,
		locale:   locale,
		log:      logging.Nop(),
		runtime:  make(map[string]bool, reg.Len()),
	}
	for _, id := range reg.IDs() {
		c.initial[id] = true
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.reporter == nil {
		c.reporter = logging.NewReporter(c.log, locale)
	}

	initial := StateStopped
	if !c.enabled {
		initial = StateDisabled
	}
	c.lifecycle = newLifecycle(initial, c.onStateChange)

	if c.enabled {
		if err := c.InitializeRuntimeConfig(ctx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Controller) onStateChange(_ context.Context, from, to State) {
	c.log.Debug("worker state changed", "from", from, "to", to)
	c.metrics.SetWorkerRunning(to == StateRunning)
}

// report sends m to the message sink.
func (c *Controller) report(ctx context.Context, m messages.Message) {
	c.reporter.Report(ctx, m)
}

// Enabled reports whether the controller is globally enabled.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// Registry returns the handler registry.
func (c *Controller) Registry() *mock.Registry {
	return c.registry
}

// Reporter returns the message sink.
func (c *Controller) Reporter() *logging.Reporter {
	return c.reporter
}

// Locale returns the message locale.
func (c *Controller) Locale() messages.Locale {
	return c.locale
}

// State returns the worker lifecycle state.
func (c *Controller) State() State {
	return State(c.lifecycle.Current())
}

// IsWorkerRunning reports whether a worker instance is serving.
func (c *Controller) IsWorkerRunning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.instance != nil
}

// WorkerID returns the running instance ID, or "" when none is running.
func (c *Controller) WorkerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.instance == nil {
		return ""
	}
	return c.instance.ID()
}
