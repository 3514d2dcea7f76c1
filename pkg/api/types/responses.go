// Package types provides the request and response bodies shared by the admin
// API and its clients.
package types

import "github.com/getmockd/mockswitch/pkg/controller"

// ErrorResponse is the body of every admin API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// HealthResponse is a simple health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  int    `json:"uptime"`
	Version string `json:"version,omitempty"`
}

// Handler describes one registered mock handler.
type Handler = controller.HandlerInfo

// HandlerListResponse lists handlers with count.
type HandlerListResponse struct {
	Handlers []Handler `json:"handlers"`
	Count    int       `json:"count"`
}

// GroupResponse is returned after a group toggle.
type GroupResponse struct {
	Group    string    `json:"group"`
	Handlers []Handler `json:"handlers"`
}

// WorkerStatus describes the mock worker.
type WorkerStatus struct {
	Enabled        bool   `json:"enabled"`
	Running        bool   `json:"running"`
	State          string `json:"state"`
	WorkerID       string `json:"workerId,omitempty"`
	ActiveHandlers int    `json:"activeHandlers"`
	TotalHandlers  int    `json:"totalHandlers"`
}

// ConfigResponse carries the handler state map.
type ConfigResponse struct {
	Config map[string]bool `json:"config"`
}
