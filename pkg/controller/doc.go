// Package controller owns the enabled/disabled state of every mock handler
// and keeps the mock worker in step with it.
//
// The controller persists the full state map to a store.KV after every
// change, so toggles survive restarts, and replaces the running worker
// (Reinitialize) whenever the set of enabled handlers may have changed.
// A composite operation such as DisableGroup persists all of its changes
// first and then restarts the worker exactly once.
//
// Expected misuse (unknown handler or group, calls before initialization) is
// reported through the Reporter and never returned as an error. Errors are
// returned only for storage failures and, from Stop, for engine shutdown
// failures.
//
// All mutating operations are serialized by an internal lock. Observers
// registered with Subscribe run while that lock is held: they may read
// state but must not call mutating operations synchronously.
package controller
