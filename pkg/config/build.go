package config

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/getmockd/mockswitch/pkg/controller"
	"github.com/getmockd/mockswitch/pkg/engine"
	"github.com/getmockd/mockswitch/pkg/logging"
	"github.com/getmockd/mockswitch/pkg/messages"
	"github.com/getmockd/mockswitch/pkg/mock"
)

// BuildGroups converts the configured groups into registry groups with a
// static responder per handler.
func (c *Config) BuildGroups() ([]mock.Group, error) {
	groups := make([]mock.Group, 0, len(c.Groups))
	for _, g := range c.Groups {
		group := mock.Group{
			Name:        g.Name,
			Description: g.Description,
			Handlers:    make([]mock.Descriptor, 0, len(g.Handlers)),
		}
		for _, h := range g.Handlers {
			responder, err := h.Response.Responder()
			if err != nil {
				return nil, fmt.Errorf("handler %q: %w", h.ID, err)
			}
			description := h.Description
			if description == "" {
				description = strings.TrimSpace(strings.ToUpper(h.Method) + " " + h.Path)
			}
			group.Handlers = append(group.Handlers, mock.Descriptor{
				ID:          h.ID,
				Description: description,
				Route: mock.Route{
					Name:    h.ID,
					Method:  strings.ToUpper(h.Method),
					Path:    h.Path,
					Handler: responder,
				},
			})
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// Responder builds the static responder for r.
func (r ResponseConfig) Responder() (*mock.Responder, error) {
	resp := &mock.Responder{
		Status: r.Status,
		Delay:  r.Delay.Duration(),
	}
	if len(r.Headers) > 0 {
		resp.Headers = make(map[string]string, len(r.Headers))
		for k, v := range r.Headers {
			resp.Headers[k] = v
		}
	}

	switch {
	case r.JSON != nil:
		body, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode json response: %w", err)
		}
		resp.Body = body
		if !hasHeader(resp.Headers, "Content-Type") {
			if resp.Headers == nil {
				resp.Headers = make(map[string]string, 1)
			}
			resp.Headers["Content-Type"] = "application/json"
		}
	case r.Body != "":
		resp.Body = []byte(r.Body)
	}
	return resp, nil
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

// ControllerConfig returns the controller settings described by c.
func (c *Config) ControllerConfig() (controller.Config, error) {
	groups, err := c.BuildGroups()
	if err != nil {
		return controller.Config{}, err
	}
	return controller.Config{
		Enabled:    c.IsEnabled(),
		Groups:     groups,
		Locale:     messages.ParseLocale(c.Locale),
		StorageKey: c.Storage.Key,
	}, nil
}

// EngineConfig returns the worker settings described by c.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		Addr:            c.Worker.Addr,
		Passthrough:     c.Worker.Passthrough,
		ReadTimeout:     c.Worker.ReadTimeout.Duration(),
		WriteTimeout:    c.Worker.WriteTimeout.Duration(),
		ShutdownTimeout: c.Worker.ShutdownTimeout.Duration(),
	}
}

// LoggingConfig returns the logger settings described by c, writing to out.
func (c *Config) LoggingConfig(out io.Writer) logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.Log.Level)
	cfg.Format = logging.ParseFormat(c.Log.Format)
	if out != nil {
		cfg.Output = out
	}
	return cfg
}
