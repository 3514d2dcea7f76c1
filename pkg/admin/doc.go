// Package admin provides a REST API for switching mock handlers at runtime.
//
// Every endpoint drives the same controller the interactive console uses, so
// changes made here are persisted and restart the worker exactly as console
// commands do.
//
// Endpoints:
//
//	GET  /health                    - Server health check
//	GET  /handlers                  - List handlers grouped and sorted
//	GET  /handlers/{id}             - Get a single handler
//	POST /handlers/{id}/enable      - Enable a handler
//	POST /handlers/{id}/disable     - Disable a handler
//	POST /handlers/enable-all       - Enable every handler
//	POST /handlers/disable-all      - Disable every handler
//	POST /groups/{name}/enable      - Enable every handler in a group
//	POST /groups/{name}/disable     - Disable every handler in a group
//	GET  /config                    - Current handler state map
//	PUT  /config                    - Apply a partial handler state map
//	POST /config/save               - Write the state map to storage
//	POST /config/reload             - Reload the state map from storage
//	POST /config/reset              - Reset to the configured defaults
//	GET  /worker                    - Worker status
//	GET  /metrics                   - Prometheus metrics
//
// Usage:
//
//	api := admin.New(ctrl, admin.WithMetrics(m), admin.WithLogger(log))
//	if err := api.Run(ctx, "localhost:4290"); err != nil {
//		return err
//	}
//
// Example curl commands:
//
//	# Disable a handler so requests fall through
//	curl -X POST http://localhost:4290/handlers/get-users/disable
//
//	# Apply several states at once
//	curl -X PUT http://localhost:4290/config -d '{"get-users": true, "create-user": false}'
package admin
