// Package metrics exposes Prometheus metrics for the handler controller and
// the mock worker it manages.
//
// Metrics:
//
//   - mockswitch_worker_running: 1 while a worker is serving, 0 otherwise
//   - mockswitch_handlers_enabled: number of handlers currently enabled
//   - mockswitch_handlers_registered: number of handlers in the registry
//   - mockswitch_worker_starts_total: successful worker starts
//   - mockswitch_worker_start_failures_total: worker starts the engine refused
//   - mockswitch_reinitializations_total: completed stop/start cycles
//   - mockswitch_state_changes_total: state-changed notifications sent
//   - mockswitch_requests_total: requests served by the worker (labels: method, handler, status)
//   - mockswitch_request_duration_seconds: worker request latency (labels: method, handler)
//
// Go runtime and process collectors are registered alongside.
//
// # Usage
//
//	m := metrics.New()
//	http.Handle("/metrics", m.Handler())
//
// A nil *Metrics is valid and records nothing.
package metrics
