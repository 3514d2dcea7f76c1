// Option functions for configuring API.

package admin

import (
	"log/slog"

	"github.com/getmockd/mockswitch/pkg/logging"
	"github.com/getmockd/mockswitch/pkg/metrics"
)

// Option configures an API.
type Option func(*API)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log == nil {
			log = logging.Nop()
		}
		a.log = log
	}
}

// WithMetrics serves m on GET /metrics. Without it the endpoint returns 404.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *API) {
		a.metrics = m
	}
}

// WithCORS configures the CORS settings for the admin API.
// If not set, all origins are allowed.
func WithCORS(config CORSConfig) Option {
	return func(a *API) {
		a.corsConfig = config
	}
}

// WithVersion sets the version reported by GET /health.
func WithVersion(v string) Option {
	return func(a *API) {
		a.version = v
	}
}
