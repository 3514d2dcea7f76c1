package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mockswitch"

// Label names.
const (
	LabelMethod  = "method"
	LabelHandler = "handler"
	LabelStatus  = "status"
)

// UnmatchedHandler labels worker requests that no enabled handler served.
const UnmatchedHandler = "unmatched"

// Metrics holds every collector the controller and worker update.
type Metrics struct {
	gatherer prometheus.Gatherer

	workerRunning       prometheus.Gauge
	handlersEnabled     prometheus.Gauge
	handlersRegistered  prometheus.Gauge
	workerStarts        prometheus.Counter
	workerStartFailures prometheus.Counter
	reinitializations   prometheus.Counter
	stateChanges        prometheus.Counter
	requests            *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
}

// New creates Metrics on a fresh registry that also carries the Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := NewWith(reg)
	m.gatherer = reg
	return m
}

// NewWith registers the collectors on reg. It panics if any of them is
// already registered there. Handler serves prometheus.DefaultGatherer unless
// reg is also a Gatherer.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		gatherer: prometheus.DefaultGatherer,

		workerRunning: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "worker_running",
			Help:      "Whether the mock worker is currently serving (1) or not (0)",
		}),
		handlersEnabled: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "handlers_enabled",
			Help:      "Number of handlers currently enabled",
		}),
		handlersRegistered: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "handlers_registered",
			Help:      "Number of handlers in the registry",
		}),
		workerStarts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_starts_total",
			Help:      "Total number of successful worker starts",
		}),
		workerStartFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_start_failures_total",
			Help:      "Total number of worker starts that failed",
		}),
		reinitializations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reinitializations_total",
			Help:      "Total number of completed worker reinitializations",
		}),
		stateChanges: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_changes_total",
			Help:      "Total number of state-changed notifications",
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of requests served by the mock worker",
		}, []string{LabelMethod, LabelHandler, LabelStatus}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Mock worker request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{LabelMethod, LabelHandler}),
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// Handler returns the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// SetWorkerRunning records whether a worker is serving.
func (m *Metrics) SetWorkerRunning(running bool) {
	if m == nil {
		return
	}
	if running {
		m.workerRunning.Set(1)
		return
	}
	m.workerRunning.Set(0)
}

// SetHandlers records the enabled and registered handler counts.
func (m *Metrics) SetHandlers(enabled, registered int) {
	if m == nil {
		return
	}
	m.handlersEnabled.Set(float64(enabled))
	m.handlersRegistered.Set(float64(registered))
}

// WorkerStarted counts a successful start.
func (m *Metrics) WorkerStarted() {
	if m == nil {
		return
	}
	m.workerStarts.Inc()
}

// WorkerStartFailed counts a failed start.
func (m *Metrics) WorkerStartFailed() {
	if m == nil {
		return
	}
	m.workerStartFailures.Inc()
}

// Reinitialized counts a completed reinitialization.
func (m *Metrics) Reinitialized() {
	if m == nil {
		return
	}
	m.reinitializations.Inc()
}

// StateChanged counts a state-changed notification.
func (m *Metrics) StateChanged() {
	if m == nil {
		return
	}
	m.stateChanges.Inc()
}

// ObserveRequest records one worker request.
func (m *Metrics) ObserveRequest(method, handler string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if handler == "" {
		handler = UnmatchedHandler
	}
	m.requests.WithLabelValues(method, handler, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, handler).Observe(d.Seconds())
}
