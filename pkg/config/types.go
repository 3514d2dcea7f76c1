package config

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/mockswitch/pkg/store"
)

// Config is the root of a mockswitch configuration file.
type Config struct {
	// Enabled switches the controller on. Nil means true.
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Locale selects the message catalog: "ko", "en" or "silent".
	Locale string `json:"locale,omitempty" yaml:"locale,omitempty"`

	Log     LogConfig     `json:"log,omitempty" yaml:"log,omitempty"`
	Storage StorageConfig `json:"storage,omitempty" yaml:"storage,omitempty"`
	Worker  WorkerConfig  `json:"worker,omitempty" yaml:"worker,omitempty"`
	Admin   AdminConfig   `json:"admin,omitempty" yaml:"admin,omitempty"`

	// HandlerFiles are glob patterns (** supported) of handler files,
	// relative to the configuration file.
	HandlerFiles []string `json:"handlerFiles,omitempty" yaml:"handlerFiles,omitempty"`

	// Groups are the inline handler groups.
	Groups []GroupConfig `json:"groups,omitempty" yaml:"groups,omitempty"`

	// path is the file the configuration was loaded from, if any.
	path string
}

// LogConfig configures operational logging.
type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// StorageConfig selects where handler state is persisted.
type StorageConfig struct {
	// Backend is "file", "memory" or "redis".
	Backend store.Backend `json:"backend,omitempty" yaml:"backend,omitempty"`

	// Dir is the file backend's directory. Empty uses the XDG data directory.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// File is the file backend's file name inside Dir.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Key is the storage key the handler state map is written under.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	// ReadOnly refuses writes. Only the file backend honours it.
	ReadOnly bool `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`

	Redis RedisConfig `json:"redis,omitempty" yaml:"redis,omitempty"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db,omitempty" yaml:"db,omitempty"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// WorkerConfig configures the HTTP worker that serves enabled handlers.
type WorkerConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// Passthrough is the upstream URL unmatched requests are forwarded to.
	Passthrough string `json:"passthrough,omitempty" yaml:"passthrough,omitempty"`

	ReadTimeout     Duration `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`
	WriteTimeout    Duration `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`
	ShutdownTimeout Duration `json:"shutdownTimeout,omitempty" yaml:"shutdownTimeout,omitempty"`
}

// AdminConfig configures the admin API.
type AdminConfig struct {
	Addr     string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// GroupConfig is a named set of handlers toggled together.
type GroupConfig struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Handlers    []HandlerConfig `json:"handlers" yaml:"handlers"`
}

// HandlerConfig declares one mock handler.
type HandlerConfig struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Method is empty to match any method.
	Method   string         `json:"method,omitempty" yaml:"method,omitempty"`
	Path     string         `json:"path" yaml:"path"`
	Response ResponseConfig `json:"response,omitempty" yaml:"response,omitempty"`
}

// ResponseConfig is the static response a handler writes.
type ResponseConfig struct {
	// Status defaults to 200.
	Status  int               `json:"status,omitempty" yaml:"status,omitempty"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	// Body is written verbatim. Mutually exclusive with JSON.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`
	// JSON is encoded as the body with an application/json content type.
	JSON  any      `json:"json,omitempty" yaml:"json,omitempty"`
	Delay Duration `json:"delay,omitempty" yaml:"delay,omitempty"`
}

// Path returns the file the configuration was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// IsEnabled reports whether the controller is switched on.
func (c *Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Duration is a time.Duration that marshals/unmarshals as a string.
type Duration time.Duration

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// MarshalJSON marshals the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON unmarshals a duration string or an integer of milliseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var ms int64
		if err := json.Unmarshal(data, &ms); err != nil {
			return fmt.Errorf("duration must be a string like \"250ms\" or milliseconds: %w", err)
		}
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	return d.parse(s)
}

// MarshalYAML marshals the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML unmarshals a duration string or an integer of milliseconds.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!int" {
		var ms int64
		if err := node.Decode(&ms); err != nil {
			return err
		}
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}
