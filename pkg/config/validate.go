package config

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/getmockd/mockswitch/pkg/messages"
	"github.com/getmockd/mockswitch/pkg/store"
)

// ValidationError is a single configuration problem.
type ValidationError struct {
	Path    string // Config path, e.g. "groups[0].handlers[1].path"
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

var validMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
	http.MethodConnect: true,
	http.MethodTrace:   true,
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate reports every problem in c joined into one error, or nil.
// Each joined error is a *ValidationError.
func (c *Config) Validate() error {
	var errs []error
	add := func(path, format string, args ...any) {
		errs = append(errs, &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if !knownLocale(c.Locale) {
		add("locale", "unsupported locale %q (use ko, en or silent)", c.Locale)
	}
	if c.Log.Level != "" && !validLogLevels[strings.ToLower(c.Log.Level)] {
		add("log.level", "unknown level %q", c.Log.Level)
	}
	if f := strings.ToLower(c.Log.Format); f != "" && f != "text" && f != "json" {
		add("log.format", "unknown format %q (use text or json)", c.Log.Format)
	}

	if c.Storage.Backend != "" && !c.Storage.Backend.Valid() {
		add("storage.backend", "unknown backend %q (use file, memory or redis)", c.Storage.Backend)
	}
	if c.Storage.Backend == store.BackendRedis && c.Storage.Redis.Addr == "" {
		add("storage.redis.addr", "required for the redis backend")
	}
	if c.Storage.Redis.DB < 0 {
		add("storage.redis.db", "must not be negative")
	}

	if c.Worker.Passthrough != "" {
		u, err := url.Parse(c.Worker.Passthrough)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			add("worker.passthrough", "must be an absolute http(s) URL, got %q", c.Worker.Passthrough)
		}
	}
	for _, d := range []struct {
		path  string
		value Duration
	}{
		{"worker.readTimeout", c.Worker.ReadTimeout},
		{"worker.writeTimeout", c.Worker.WriteTimeout},
		{"worker.shutdownTimeout", c.Worker.ShutdownTimeout},
	} {
		if d.value < 0 {
			add(d.path, "must not be negative")
		}
	}
	if !c.Admin.Disabled && c.Admin.Addr != "" && c.Admin.Addr == c.Worker.Addr && !ephemeralPort(c.Admin.Addr) {
		add("admin.addr", "conflicts with worker.addr %q", c.Worker.Addr)
	}

	groups := make(map[string]bool)
	ids := make(map[string]string)
	for gi, g := range c.Groups {
		gpath := fmt.Sprintf("groups[%d]", gi)
		switch {
		case strings.TrimSpace(g.Name) == "":
			add(gpath+".name", "is required")
		case groups[g.Name]:
			add(gpath+".name", "duplicate group %q", g.Name)
		default:
			groups[g.Name] = true
		}

		for hi, h := range g.Handlers {
			hpath := fmt.Sprintf("%s.handlers[%d]", gpath, hi)
			switch {
			case strings.TrimSpace(h.ID) == "":
				add(hpath+".id", "is required")
			case ids[h.ID] != "":
				add(hpath+".id", "duplicate handler id %q (first declared in group %q)", h.ID, ids[h.ID])
			default:
				ids[h.ID] = g.Name
			}
			validateHandler(hpath, h, add)
		}
	}

	return errors.Join(errs...)
}

func validateHandler(path string, h HandlerConfig, add func(path, format string, args ...any)) {
	if h.Method != "" && !validMethods[strings.ToUpper(h.Method)] {
		add(path+".method", "unknown HTTP method %q", h.Method)
	}
	switch {
	case h.Path == "":
		add(path+".path", "is required")
	case !strings.HasPrefix(h.Path, "/"):
		add(path+".path", "must start with /, got %q", h.Path)
	case strings.Count(h.Path, "{") != strings.Count(h.Path, "}"):
		add(path+".path", "unbalanced braces in %q", h.Path)
	}

	r := h.Response
	if r.Status != 0 && (r.Status < 100 || r.Status > 599) {
		add(path+".response.status", "must be between 100 and 599, got %d", r.Status)
	}
	if r.Body != "" && r.JSON != nil {
		add(path+".response", "body and json are mutually exclusive")
	}
	if r.Delay < 0 {
		add(path+".response.delay", "must not be negative")
	}
}

// knownLocale reports whether s selects a catalog on purpose rather than
// falling back to the default.
func knownLocale(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || strings.HasPrefix(s, "ko") {
		return true
	}
	return messages.ParseLocale(s) != messages.DefaultLocale
}

// ephemeralPort reports whether addr asks the kernel to pick a port.
func ephemeralPort(addr string) bool {
	_, port, err := net.SplitHostPort(addr)
	return err == nil && port == "0"
}
