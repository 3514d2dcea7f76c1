// Package engine provides the mock worker: the component that actually
// answers requests for the handlers the controller has enabled.
//
// # Architecture
//
//	┌──────────────────────────────────────────────┐
//	│              Controller                       │
//	│   Start(ctx, active routes) / Stop(ctx)       │
//	└──────────────────────┬───────────────────────┘
//	                       │ Engine
//	                       ▼
//	┌──────────────────────────────────────────────┐
//	│              Worker (:4280)                   │
//	│                                               │
//	│   gorilla/mux router, one route per           │
//	│   enabled handler                             │
//	│        │ no match                             │
//	│        ▼                                      │
//	│   passthrough upstream (reverse proxy)        │
//	│   or 404 JSON                                 │
//	└──────────────────────────────────────────────┘
//
// A Worker is immutable: the set of routes is fixed when it starts. The
// controller replaces the whole worker when handler state changes.
//
// # Usage
//
//	eng, err := engine.NewHTTPEngine(engine.DefaultConfig(), engine.WithLogger(log))
//	inst, err := eng.Start(ctx, routes)
//	defer inst.Stop(ctx)
package engine
