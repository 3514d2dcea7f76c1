// Package mock defines the handler catalog that mockswitch toggles.
//
// A Descriptor is one mock rule: an ID, a human description and the Route
// the worker serves while the handler is enabled. Descriptors are organised
// into named Groups, and a Registry indexes all of them once at startup.
// The registry is immutable after construction.
//
// Group names and handler IDs must be unique across the registry. NewRegistry
// rejects duplicates rather than letting a later registration silently
// replace an earlier one.
package mock
