package admin

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a list of origins that are allowed to make cross-origin requests.
	// If empty or contains "*", all origins are allowed. An origin without a
	// port matches that scheme and host on any port.
	AllowedOrigins []string

	// AllowedMethods is a list of HTTP methods allowed for cross-origin requests.
	// Default: GET, POST, PUT, OPTIONS
	AllowedMethods []string

	// AllowedHeaders is a list of headers that are allowed in cross-origin requests.
	// Default: Content-Type
	AllowedHeaders []string

	// MaxAge indicates how long (in seconds) the results of a preflight request
	// can be cached. Default: 86400 (24 hours)
	MaxAge int
}

// DefaultCORSConfig allows pages served from the local machine on any port.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"http://localhost", "http://127.0.0.1", "http://[::1]"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         86400,
	}
}

// getAllowOriginValue returns the Access-Control-Allow-Origin value for
// origin, or "" when the origin is not allowed.
func (c *CORSConfig) getAllowOriginValue(origin string) string {
	if len(c.AllowedOrigins) == 0 {
		return "*"
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" {
			return "*"
		}
	}
	if c.isOriginAllowed(origin) {
		return origin
	}
	return ""
}

// isOriginAllowed reports whether origin matches an entry exactly, or by
// scheme and host when the entry has no port.
func (c *CORSConfig) isOriginAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	o, err := url.Parse(origin)
	if err != nil {
		return false
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == origin {
			return true
		}
		a, err := url.Parse(allowed)
		if err != nil || a.Port() != "" {
			continue
		}
		if a.Scheme == o.Scheme && a.Hostname() != "" && a.Hostname() == o.Hostname() {
			return true
		}
	}
	return false
}

func (c *CORSConfig) getMethods() string {
	if len(c.AllowedMethods) == 0 {
		return "GET, POST, PUT, OPTIONS"
	}
	return strings.Join(c.AllowedMethods, ", ")
}

func (c *CORSConfig) getHeaders() string {
	if len(c.AllowedHeaders) == 0 {
		return "Content-Type"
	}
	return strings.Join(c.AllowedHeaders, ", ")
}

func (c *CORSConfig) getMaxAge() string {
	if c.MaxAge <= 0 {
		return "86400"
	}
	return strconv.Itoa(c.MaxAge)
}

// withMiddleware wraps the router.
// Order (outermost to innermost): Security Headers -> CORS -> Logging -> Handler
func (a *API) withMiddleware(handler http.Handler) http.Handler {
	return SecurityHeadersMiddleware(a.corsMiddleware(a.loggingMiddleware(handler)))
}

func (a *API) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")

		allowOrigin := a.corsConfig.getAllowOriginValue(r.Header.Get("Origin"))
		if allowOrigin == "" {
			// Origin not allowed; the browser blocks the response
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", a.corsConfig.getMethods())
		w.Header().Set("Access-Control-Allow-Headers", a.corsConfig.getHeaders())
		w.Header().Set("Access-Control-Max-Age", a.corsConfig.getMaxAge())

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request at debug level.
func (a *API) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(lrw, r)

		a.log.Debug("admin request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", lrw.statusCode,
			"duration", time.Since(start),
		)
	})
}

// loggingResponseWriter wraps http.ResponseWriter to capture status code.
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code.
func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController support.
func (lrw *loggingResponseWriter) Unwrap() http.ResponseWriter {
	return lrw.ResponseWriter
}

// SecurityHeadersMiddleware adds security headers to all responses.
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("Cache-Control", "no-store")

		next.ServeHTTP(w, r)
	})
}
