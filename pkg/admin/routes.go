// Route registration for the Admin API.

package admin

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/getmockd/mockswitch/pkg/httputil"
)

// registerRoutes sets up all API routes.
func (a *API) registerRoutes(r *mux.Router) {
	// Health check, worker status, and metrics
	r.HandleFunc("/health", a.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/worker", a.handleWorkerStatus).Methods(http.MethodGet)
	r.Handle("/metrics", a.metrics.Handler()).Methods(http.MethodGet)

	// Bulk toggles are registered before the {id} routes
	r.HandleFunc("/handlers/enable-all", a.handleToggleAll(true)).Methods(http.MethodPost)
	r.HandleFunc("/handlers/disable-all", a.handleToggleAll(false)).Methods(http.MethodPost)

	// Handlers
	r.HandleFunc("/handlers", a.handleListHandlers).Methods(http.MethodGet)
	r.HandleFunc("/handlers/{id}", a.handleGetHandler).Methods(http.MethodGet)
	r.HandleFunc("/handlers/{id}/enable", a.handleToggleHandler(true)).Methods(http.MethodPost)
	r.HandleFunc("/handlers/{id}/disable", a.handleToggleHandler(false)).Methods(http.MethodPost)

	// Groups
	r.HandleFunc("/groups/{name}/enable", a.handleToggleGroup(true)).Methods(http.MethodPost)
	r.HandleFunc("/groups/{name}/disable", a.handleToggleGroup(false)).Methods(http.MethodPost)

	// Handler state map
	r.HandleFunc("/config", a.handleGetConfig).Methods(http.MethodGet)
	r.HandleFunc("/config", a.handlePutConfig).Methods(http.MethodPut)
	r.HandleFunc("/config/save", a.handleSaveConfig).Methods(http.MethodPost)
	r.HandleFunc("/config/reload", a.handleReloadConfig).Methods(http.MethodPost)
	r.HandleFunc("/config/reset", a.handleResetConfig).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteNotFound(w, "not_found", ErrMsgNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not allowed on "+r.URL.Path)
	})
}
