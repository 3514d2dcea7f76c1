package admin

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/gorilla/mux"

	"github.com/getmockd/mockswitch/pkg/api/types"
	"github.com/getmockd/mockswitch/pkg/httputil"
)

// handleHealth handles GET /health.
func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	version := a.version
	if version == "" {
		version = "dev"
	}
	httputil.WriteOK(w, types.HealthResponse{
		Status:  "ok",
		Uptime:  a.Uptime(),
		Version: version,
	})
}

// handleWorkerStatus handles GET /worker.
func (a *API) handleWorkerStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, a.workerStatus())
}

func (a *API) workerStatus() types.WorkerStatus {
	handlers := a.ctrl.Handlers()
	active := 0
	for _, h := range handlers {
		if h.Enabled {
			active++
		}
	}
	return types.WorkerStatus{
		Enabled:        a.ctrl.Enabled(),
		Running:        a.ctrl.IsWorkerRunning(),
		State:          a.ctrl.State().String(),
		WorkerID:       a.ctrl.WorkerID(),
		ActiveHandlers: active,
		TotalHandlers:  len(handlers),
	}
}

// handleListHandlers handles GET /handlers.
func (a *API) handleListHandlers(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, a.handlerList())
}

func (a *API) handlerList() types.HandlerListResponse {
	handlers := a.ctrl.Handlers()
	if handlers == nil {
		handlers = []types.Handler{}
	}
	return types.HandlerListResponse{Handlers: handlers, Count: len(handlers)}
}

// handleGetHandler handles GET /handlers/{id}.
func (a *API) handleGetHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h, ok := a.findHandler(id)
	if !ok {
		writeHandlerNotFound(w, id)
		return
	}
	httputil.WriteOK(w, h)
}

// handleToggleHandler handles POST /handlers/{id}/enable and /disable.
func (a *API) handleToggleHandler(enabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.requireEnabled(w) {
			return
		}
		id := mux.Vars(r)["id"]
		if _, ok := a.ctrl.Registry().Resolve(id); !ok {
			writeHandlerNotFound(w, id)
			return
		}

		op, operation := a.ctrl.DisableHandler, "disable handler"
		if enabled {
			op, operation = a.ctrl.EnableHandler, "enable handler"
		}
		if err := op(r.Context(), id); err != nil {
			a.writeOperationError(w, err, operation, "handler", id)
			return
		}

		h, _ := a.findHandler(id)
		httputil.WriteOK(w, h)
	}
}

// handleToggleGroup handles POST /groups/{name}/enable and /disable.
func (a *API) handleToggleGroup(enabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.requireEnabled(w) {
			return
		}
		name := mux.Vars(r)["name"]
		if _, ok := a.ctrl.Registry().Group(name); !ok {
			httputil.WriteNotFound(w, "group_not_found", fmt.Sprintf("group %q is not registered", name))
			return
		}

		op, operation := a.ctrl.DisableGroup, "disable group"
		if enabled {
			op, operation = a.ctrl.EnableGroup, "enable group"
		}
		if err := op(r.Context(), name); err != nil {
			a.writeOperationError(w, err, operation, "group", name)
			return
		}

		resp := types.GroupResponse{Group: name, Handlers: []types.Handler{}}
		for _, h := range a.ctrl.Handlers() {
			if h.GroupName == name {
				resp.Handlers = append(resp.Handlers, h)
			}
		}
		httputil.WriteOK(w, resp)
	}
}

// handleToggleAll handles POST /handlers/enable-all and /disable-all.
func (a *API) handleToggleAll(enabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.requireEnabled(w) {
			return
		}
		op, operation := a.ctrl.DisableAllHandlers, "disable all handlers"
		if enabled {
			op, operation = a.ctrl.EnableAllHandlers, "enable all handlers"
		}
		if err := op(r.Context()); err != nil {
			a.writeOperationError(w, err, operation)
			return
		}
		httputil.WriteOK(w, a.handlerList())
	}
}

// handleGetConfig handles GET /config.
func (a *API) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, a.configResponse())
}

// handlePutConfig handles PUT /config. The body is a partial map of handler
// ID to enabled state; handlers not named keep their state. Unknown IDs
// reject the whole request.
func (a *API) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	if !a.requireEnabled(w) {
		return
	}

	var states map[string]bool
	if err := httputil.DecodeJSON(w, r, &states, 0); err != nil {
		a.writeJSONError(w, err)
		return
	}

	var unknown []string
	for id := range states {
		if _, ok := a.ctrl.Registry().Resolve(id); !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		httputil.WriteErrorWithDetails(w, http.StatusBadRequest, "unknown_handlers",
			"request names handlers that are not registered", unknown)
		return
	}

	if err := a.ctrl.ApplyConfig(r.Context(), states); err != nil {
		a.writeOperationError(w, err, "apply config")
		return
	}
	httputil.WriteOK(w, a.configResponse())
}

// handleSaveConfig handles POST /config/save.
func (a *API) handleSaveConfig(w http.ResponseWriter, r *http.Request) {
	if !a.requireEnabled(w) {
		return
	}
	if err := a.ctrl.SaveConfigToStorage(r.Context()); err != nil {
		a.writeOperationError(w, err, "save config")
		return
	}
	httputil.WriteOK(w, a.configResponse())
}

// handleReloadConfig handles POST /config/reload.
func (a *API) handleReloadConfig(w http.ResponseWriter, r *http.Request) {
	if !a.requireEnabled(w) {
		return
	}
	if err := a.ctrl.LoadConfigFromStorage(r.Context()); err != nil {
		a.writeOperationError(w, err, "reload config")
		return
	}
	httputil.WriteOK(w, a.configResponse())
}

// handleResetConfig handles POST /config/reset.
func (a *API) handleResetConfig(w http.ResponseWriter, r *http.Request) {
	if !a.requireEnabled(w) {
		return
	}
	if err := a.ctrl.ResetToInitialConfig(r.Context()); err != nil {
		a.writeOperationError(w, err, "reset config")
		return
	}
	httputil.WriteOK(w, a.configResponse())
}

func (a *API) configResponse() types.ConfigResponse {
	cfg := a.ctrl.CurrentConfig()
	if cfg == nil {
		cfg = map[string]bool{}
	}
	return types.ConfigResponse{Config: cfg}
}

// findHandler looks id up in the sorted handler list.
func (a *API) findHandler(id string) (types.Handler, bool) {
	for _, h := range a.ctrl.Handlers() {
		if h.ID == id {
			return h, true
		}
	}
	return types.Handler{}, false
}

// requireEnabled writes a 409 and returns false when the controller is
// globally disabled.
func (a *API) requireEnabled(w http.ResponseWriter) bool {
	if a.ctrl.Enabled() {
		return true
	}
	httputil.WriteConflict(w, "controller_disabled", ErrMsgDisabled)
	return false
}

func writeHandlerNotFound(w http.ResponseWriter, id string) {
	httputil.WriteNotFound(w, "handler_not_found", fmt.Sprintf("handler %q is not registered", id))
}
