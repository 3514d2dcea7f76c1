package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockswitch/pkg/api/types"
	"github.com/getmockd/mockswitch/pkg/controller"
	"github.com/getmockd/mockswitch/pkg/engine"
	"github.com/getmockd/mockswitch/pkg/logging"
	"github.com/getmockd/mockswitch/pkg/messages"
	"github.com/getmockd/mockswitch/pkg/metrics"
	"github.com/getmockd/mockswitch/pkg/mock"
	"github.com/getmockd/mockswitch/pkg/store"
	"github.com/getmockd/mockswitch/pkg/store/file"
)

// ============================================================================
// Test helpers
// ============================================================================

type stubEngine struct {
	mu     sync.Mutex
	starts int
}

func (e *stubEngine) Start(_ context.Context, routes []mock.Route) (engine.Instance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.starts++
	return stubInstance{id: fmt.Sprintf("worker-%d", e.starts), n: len(routes)}, nil
}

func (e *stubEngine) startCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.starts
}

type stubInstance struct {
	id string
	n  int
}

func (i stubInstance) ID() string                 { return i.id }
func (i stubInstance) Routes() int                { return i.n }
func (i stubInstance) Stop(context.Context) error { return nil }

func handler(id, description string) mock.Descriptor {
	return mock.Descriptor{
		ID:          id,
		Description: description,
		Route:       mock.Route{Method: http.MethodGet, Path: "/" + id, Handler: &mock.Responder{}},
	}
}

func testGroups() []mock.Group {
	return []mock.Group{
		{Name: "users", Handlers: []mock.Descriptor{
			handler("get-users", "GET /users"),
			handler("create-user", "POST /users"),
		}},
		{Name: "orders", Handlers: []mock.Descriptor{
			handler("get-orders", "GET /orders"),
		}},
	}
}

type testAPI struct {
	api     *API
	ctrl    *controller.Controller
	engine  *stubEngine
	kv      store.KV
	metrics *metrics.Metrics
}

func newTestAPI(t *testing.T, enabled bool, opts ...Option) *testAPI {
	t.Helper()
	return newTestAPIWithStore(t, enabled, store.NewMemory(), opts...)
}

func newTestAPIWithStore(t *testing.T, enabled bool, kv store.KV, opts ...Option) *testAPI {
	t.Helper()

	eng := &stubEngine{}
	m := metrics.New()
	ctrl, err := controller.New(context.Background(),
		controller.Config{Enabled: enabled, Groups: testGroups(), Locale: messages.English},
		eng, kv,
		controller.WithReporter(logging.NopReporter()),
		controller.WithMetrics(m),
	)
	require.NoError(t, err)

	opts = append([]Option{WithMetrics(m), WithVersion("test")}, opts...)
	return &testAPI{api: New(ctrl, opts...), ctrl: ctrl, engine: eng, kv: kv, metrics: m}
}

func (ta *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	ta.api.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// ============================================================================
// Health and worker
// ============================================================================

func TestHealth(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)
	rec := ta.do(t, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[types.HealthResponse](t, rec)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "test", health.Version)
}

func TestWorkerStatus(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)

	status := decode[types.WorkerStatus](t, ta.do(t, http.MethodGet, "/worker", ""))
	assert.True(t, status.Enabled)
	assert.False(t, status.Running)
	assert.Equal(t, "stopped", status.State)
	assert.Equal(t, 3, status.ActiveHandlers)
	assert.Equal(t, 3, status.TotalHandlers)

	require.NoError(t, ta.ctrl.Start(context.Background()))

	status = decode[types.WorkerStatus](t, ta.do(t, http.MethodGet, "/worker", ""))
	assert.True(t, status.Running)
	assert.Equal(t, "running", status.State)
	assert.Equal(t, "worker-1", status.WorkerID)
}

// ============================================================================
// Handlers
// ============================================================================

func TestListHandlers(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)
	rec := ta.do(t, http.MethodGet, "/handlers", "")

	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[types.HandlerListResponse](t, rec)
	require.Equal(t, 3, list.Count)

	ids := make([]string, len(list.Handlers))
	for i, h := range list.Handlers {
		ids[i] = h.ID
	}
	// grouped by group name, then sorted by description
	assert.Equal(t, []string{"get-orders", "get-users", "create-user"}, ids)
}

func TestGetHandler(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)

	rec := ta.do(t, http.MethodGet, "/handlers/get-users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	h := decode[types.Handler](t, rec)
	assert.Equal(t, "users", h.GroupName)
	assert.Equal(t, "GET /users", h.Description)
	assert.True(t, h.Enabled)

	rec = ta.do(t, http.MethodGet, "/handlers/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "handler_not_found", decode[types.ErrorResponse](t, rec).Error)
}

func TestToggleHandler(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)

	rec := ta.do(t, http.MethodPost, "/handlers/get-users/disable", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[types.Handler](t, rec).Enabled)
	assert.False(t, ta.ctrl.IsHandlerEnabled("get-users"))
	assert.True(t, ta.ctrl.IsWorkerRunning(), "toggle restarts the worker")

	rec = ta.do(t, http.MethodPost, "/handlers/get-users/enable", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[types.Handler](t, rec).Enabled)
	assert.Equal(t, 2, ta.engine.startCount())
}

func TestToggleUnknownHandler(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)
	before := ta.ctrl.CurrentConfig()

	rec := ta.do(t, http.MethodPost, "/handlers/ghost/disable", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before, ta.ctrl.CurrentConfig())
	assert.Zero(t, ta.engine.startCount())
}

// ============================================================================
// Groups and bulk toggles
// ============================================================================

func TestToggleGroup(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)

	rec := ta.do(t, http.MethodPost, "/groups/users/disable", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[types.GroupResponse](t, rec)
	assert.Equal(t, "users", resp.Group)
	require.Len(t, resp.Handlers, 2)
	for _, h := range resp.Handlers {
		assert.False(t, h.Enabled, h.ID)
	}
	assert.True(t, ta.ctrl.IsHandlerEnabled("get-orders"))

	rec = ta.do(t, http.MethodPost, "/groups/users/enable", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ta.ctrl.IsHandlerEnabled("create-user"))
}

func TestToggleUnknownGroup(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)
	rec := ta.do(t, http.MethodPost, "/groups/billing/enable", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "group_not_found", decode[types.ErrorResponse](t, rec).Error)
}

func TestToggleAll(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)

	rec := ta.do(t, http.MethodPost, "/handlers/disable-all", "")
	require.Equal(t, http.StatusOK, rec.Code)
	for _, h := range decode[types.HandlerListResponse](t, rec).Handlers {
		assert.False(t, h.Enabled, h.ID)
	}
	assert.False(t, ta.ctrl.IsWorkerRunning(), "nothing enabled, nothing to serve")

	rec = ta.do(t, http.MethodPost, "/handlers/enable-all", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[types.HandlerListResponse](t, rec).Count)
	assert.True(t, ta.ctrl.IsWorkerRunning())
}

// ============================================================================
// Config
// ============================================================================

func TestGetConfig(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)
	rec := ta.do(t, http.MethodGet, "/config", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"get-users": true, "create-user": true, "get-orders": true},
		decode[types.ConfigResponse](t, rec).Config)
}

func TestPutConfig(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)

	rec := ta.do(t, http.MethodPut, "/config", `{"get-users": false, "get-orders": false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"get-users": false, "create-user": true, "get-orders": false},
		decode[types.ConfigResponse](t, rec).Config)
	assert.Equal(t, 1, ta.engine.startCount(), "one restart for the whole batch")
}

func TestPutConfigRejectsUnknownIDs(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)

	rec := ta.do(t, http.MethodPut, "/config", `{"zeta": true, "get-users": false, "alpha": true}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[types.ErrorResponse](t, rec)
	assert.Equal(t, "unknown_handlers", resp.Error)
	assert.Equal(t, []any{"alpha", "zeta"}, resp.Details)
	assert.True(t, ta.ctrl.IsHandlerEnabled("get-users"), "nothing applied")
}

func TestPutConfigRejectsBadJSON(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)

	for _, body := range []string{"", "{", `{"get-users": "off"}`, `["get-users"]`} {
		rec := ta.do(t, http.MethodPut, "/config", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.Equal(t, "invalid_json", decode[types.ErrorResponse](t, rec).Error)
	}
}

func TestSaveReloadReset(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)
	require.Equal(t, http.StatusOK, ta.do(t, http.MethodPost, "/handlers/get-orders/disable", "").Code)

	rec := ta.do(t, http.MethodPost, "/config/save", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[types.ConfigResponse](t, rec).Config["get-orders"])

	rec = ta.do(t, http.MethodPost, "/config/reload", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[types.ConfigResponse](t, rec).Config["get-orders"])

	rec = ta.do(t, http.MethodPost, "/config/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[types.ConfigResponse](t, rec).Config["get-orders"])
	assert.True(t, ta.ctrl.IsHandlerEnabled("get-orders"))
}

func TestReadOnlyStorage(t *testing.T) {
	t.Parallel()

	ta := newTestAPIWithStore(t, true, file.New(t.TempDir(), file.WithReadOnly()))

	rec := ta.do(t, http.MethodPost, "/handlers/get-users/disable", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decode[types.ErrorResponse](t, rec)
	assert.Equal(t, "storage_read_only", resp.Error)
	assert.NotContains(t, resp.Message, "write handler config", "cause stays server-side")

	rec = ta.do(t, http.MethodGet, "/handlers/get-users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[types.Handler](t, rec).Enabled, "a refused write changes nothing")

	rec = ta.do(t, http.MethodPut, "/config", `{"get-orders": false}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.True(t, ta.ctrl.IsHandlerEnabled("get-orders"))
}

// ============================================================================
// Disabled controller
// ============================================================================

func TestDisabledController(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, false)

	list := decode[types.HandlerListResponse](t, ta.do(t, http.MethodGet, "/handlers", ""))
	assert.Empty(t, list.Handlers)
	assert.NotNil(t, list.Handlers)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodPost, "/handlers/get-users/enable", ""},
		{http.MethodPost, "/groups/users/disable", ""},
		{http.MethodPost, "/handlers/enable-all", ""},
		{http.MethodPut, "/config", `{"get-users": true}`},
		{http.MethodPost, "/config/save", ""},
		{http.MethodPost, "/config/reload", ""},
		{http.MethodPost, "/config/reset", ""},
	} {
		rec := ta.do(t, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusConflict, rec.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "controller_disabled", decode[types.ErrorResponse](t, rec).Error)
	}

	status := decode[types.WorkerStatus](t, ta.do(t, http.MethodGet, "/worker", ""))
	assert.False(t, status.Enabled)
	assert.Equal(t, "disabled", status.State)
	assert.Zero(t, ta.engine.startCount())
}

// ============================================================================
// Metrics, routing, middleware
// ============================================================================

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)
	require.NoError(t, ta.ctrl.Start(context.Background()))

	rec := ta.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mockswitch_worker_running 1")
}

func TestMetricsEndpointWithoutMetrics(t *testing.T) {
	t.Parallel()

	ctrl, err := controller.New(context.Background(), controller.Config{}, nil, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	New(ctrl).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)

	rec := ta.do(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[types.ErrorResponse](t, rec).Error)

	rec = ta.do(t, http.MethodDelete, "/config", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)
	rec := ta.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestCORS(t *testing.T) {
	t.Parallel()

	preflight := func(t *testing.T, ta *testAPI, origin string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodOptions, "/config", nil)
		req.Header.Set("Origin", origin)
		rec := httptest.NewRecorder()
		ta.api.Handler().ServeHTTP(rec, req)
		return rec
	}

	t.Run("default allows local origins on any port", func(t *testing.T) {
		t.Parallel()
		ta := newTestAPI(t, true)

		for _, origin := range []string{"http://localhost:3000", "http://127.0.0.1:5173", "http://[::1]:8080", "http://localhost"} {
			rec := preflight(t, ta, origin)
			assert.Equal(t, http.StatusOK, rec.Code, origin)
			assert.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"), origin)
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
		}
	})

	t.Run("default rejects foreign origins", func(t *testing.T) {
		t.Parallel()
		ta := newTestAPI(t, true)

		for _, origin := range []string{"http://evil.example", "http://localhost.evil.example:3000", "https://localhost:3000", "null"} {
			rec := preflight(t, ta, origin)
			assert.Equal(t, http.StatusForbidden, rec.Code, origin)
			assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"), origin)
		}

		// Requests without an Origin, like the CLI's, are unaffected.
		rec := ta.do(t, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("explicit origins", func(t *testing.T) {
		t.Parallel()
		ta := newTestAPI(t, true, WithCORS(CORSConfig{AllowedOrigins: []string{"http://app.local"}}))

		req := httptest.NewRequest(http.MethodOptions, "/config", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		ta.api.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		req = httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://app.local")
		rec = httptest.NewRecorder()
		ta.api.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://app.local", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

// ============================================================================
// Serve
// ============================================================================

func TestServeShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	ta := newTestAPI(t, true)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ta.api.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestRunBindFailure(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	ta := newTestAPI(t, true)
	assert.Error(t, ta.api.Run(context.Background(), ln.Addr().String()))
}
