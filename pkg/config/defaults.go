package config

import (
	"github.com/getmockd/mockswitch/pkg/controller"
	"github.com/getmockd/mockswitch/pkg/engine"
	"github.com/getmockd/mockswitch/pkg/messages"
	"github.com/getmockd/mockswitch/pkg/store"
)

// DefaultAdminAddr is the admin API listen address when none is configured.
const DefaultAdminAddr = "localhost:4290"

// Default returns a configuration with every default applied and no groups.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Locale == "" {
		c.Locale = string(messages.DefaultLocale)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = store.BackendFile
	}
	if c.Storage.Key == "" {
		c.Storage.Key = controller.DefaultStorageKey
	}

	if c.Worker.Addr == "" {
		c.Worker.Addr = engine.DefaultAddr
	}
	if c.Worker.ReadTimeout == 0 {
		c.Worker.ReadTimeout = Duration(engine.DefaultReadTimeout)
	}
	if c.Worker.WriteTimeout == 0 {
		c.Worker.WriteTimeout = Duration(engine.DefaultWriteTimeout)
	}
	if c.Worker.ShutdownTimeout == 0 {
		c.Worker.ShutdownTimeout = Duration(engine.DefaultShutdownTimeout)
	}

	if c.Admin.Addr == "" {
		c.Admin.Addr = DefaultAdminAddr
	}
}
