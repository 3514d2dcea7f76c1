package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// scrape returns the text exposition served by m.Handler.
func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestWorkerMetrics(t *testing.T) {
	m := NewWith(prometheus.NewRegistry())

	m.SetWorkerRunning(true)
	m.WorkerStarted()
	m.WorkerStarted()
	m.WorkerStartFailed()
	m.Reinitialized()
	m.StateChanged()
	m.SetHandlers(2, 5)

	out := scrape(t, m)
	for _, want := range []string{
		"mockswitch_worker_running 1",
		"mockswitch_worker_starts_total 2",
		"mockswitch_worker_start_failures_total 1",
		"mockswitch_reinitializations_total 1",
		"mockswitch_state_changes_total 1",
		"mockswitch_handlers_enabled 2",
		"mockswitch_handlers_registered 5",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}

	m.SetWorkerRunning(false)
	if out := scrape(t, m); !strings.Contains(out, "mockswitch_worker_running 0") {
		t.Errorf("expected worker_running 0 after stop\n%s", out)
	}
}

func TestObserveRequest(t *testing.T) {
	m := NewWith(prometheus.NewRegistry())

	m.ObserveRequest("GET", "get-users", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", "", 404, time.Millisecond)

	out := scrape(t, m)
	for _, want := range []string{
		`mockswitch_requests_total{handler="get-users",method="GET",status="200"} 1`,
		`mockswitch_requests_total{handler="unmatched",method="GET",status="404"} 1`,
		`mockswitch_request_duration_seconds_count{handler="get-users",method="GET"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestNewIncludesRuntimeCollectors(t *testing.T) {
	out := scrape(t, New())
	if !strings.Contains(out, "go_goroutines") {
		t.Error("expected go runtime metrics in output")
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	// None of these may panic.
	m.SetWorkerRunning(true)
	m.SetHandlers(1, 1)
	m.WorkerStarted()
	m.WorkerStartFailed()
	m.Reinitialized()
	m.StateChanged()
	m.ObserveRequest("GET", "h", 200, 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Errorf("expected 404 from nil metrics handler, got %d", rec.Code)
	}
}

func TestConcurrency(t *testing.T) {
	m := NewWith(prometheus.NewRegistry())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.ObserveRequest("POST", "h", 201, time.Millisecond)
			m.StateChanged()
		}()
	}
	wg.Wait()

	if out := scrape(t, m); !strings.Contains(out, "mockswitch_state_changes_total 100") {
		t.Errorf("expected 100 state changes\n%s", out)
	}
}

func TestNewWithDuplicatePanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewWith(reg)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	NewWith(reg)
}
