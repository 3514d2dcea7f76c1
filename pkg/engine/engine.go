package engine

import (
	"context"
	"errors"
	"time"

	"github.com/getmockd/mockswitch/pkg/mock"
)

// Engine errors.
var (
	ErrInvalidPassthrough = errors.New("invalid passthrough URL")
	ErrInvalidRoute       = errors.New("invalid route")
)

// Engine starts workers.
type Engine interface {
	// Start begins serving exactly routes and returns the running instance.
	// An error means nothing is serving.
	Start(ctx context.Context, routes []mock.Route) (Instance, error)
}

// Instance is a running worker.
type Instance interface {
	// ID uniquely identifies this instance.
	ID() string
	// Routes is the number of routes being served.
	Routes() int
	// Stop shuts the instance down. Calling Stop more than once is safe.
	Stop(ctx context.Context) error
}

// Default settings.
const (
	DefaultAddr            = ":4280"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// Config configures an HTTPEngine.
type Config struct {
	// Addr is the listen address of the worker.
	Addr string
	// Passthrough is the upstream base URL unmatched requests are proxied
	// to. Empty answers them with 404.
	Passthrough string
	// ReadTimeout and WriteTimeout bound each request.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// ShutdownTimeout bounds graceful shutdown in Stop.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Addr:            DefaultAddr,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	return c
}
