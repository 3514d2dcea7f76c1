package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/getmockd/mockswitch/pkg/messages"
	"github.com/getmockd/mockswitch/pkg/mock"
	"github.com/getmockd/mockswitch/pkg/store"
)

// InitializeRuntimeConfig resolves the runtime state map once. Stored values
// are adopted per handler when present and boolean; everything else falls
// back to the initial state. The result is always written back, so storage
// is normalized on first load. Read-only storage is reported and tolerated.
// A second call is a no-op.
func (c *Controller) InitializeRuntimeConfig(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.initialize(ctx)
}

func (c *Controller) initialize(ctx context.Context) error {
	if !c.enabled {
		return nil
	}
	c.mu.RLock()
	done := c.initialized
	c.mu.RUnlock()
	if done {
		return nil
	}

	raw, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		return fmt.Errorf("read handler config: %w", err)
	}

	var states map[string]bool
	if found && raw != "" {
		states, err = c.merge(raw)
		if err != nil {
			c.report(ctx, messages.StorageParseFailed{Err: err})
			states = maps.Clone(c.initial)
		} else {
			c.report(ctx, messages.RuntimeConfigLoaded{States: maps.Clone(states)})
		}
	} else {
		states = maps.Clone(c.initial)
		c.report(ctx, messages.RuntimeConfigFromCode{States: maps.Clone(states)})
	}

	c.mu.Lock()
	c.runtime = states
	c.mu.Unlock()

	if err := c.persist(ctx); err != nil {
		if !errors.Is(err, store.ErrReadOnly) {
			return err
		}
		c.report(ctx, messages.StorageReadOnly{Err: err})
	}

	c.mu.Lock()
	c.initialized = true
	c.mu.Unlock()
	c.observeHandlers()
	return nil
}

// merge overlays a stored document on the initial states. Only registered
// IDs are kept, and only boolean values are adopted.
func (c *Controller) merge(raw string) (map[string]bool, error) {
	var stored map[string]any
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decode stored handler config: %w", err)
	}
	states := make(map[string]bool, len(c.initial))
	for id, def := range c.initial {
		if v, ok := stored[id].(bool); ok {
			states[id] = v
			continue
		}
		states[id] = def
	}
	return states, nil
}

// persist writes the full runtime map under the storage key.
func (c *Controller) persist(ctx context.Context) error {
	c.mu.RLock()
	data, err := json.Marshal(c.runtime)
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode handler config: %w", err)
	}
	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		return fmt.Errorf("write handler config: %w", err)
	}
	return nil
}

// IsHandlerEnabled reports whether id is enabled. Before initialization the
// initial state is used, and unknown IDs count as enabled.
func (c *Controller) IsHandlerEnabled(id string) bool {
	if !c.enabled {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isEnabledLocked(id)
}

func (c *Controller) isEnabledLocked(id string) bool {
	if c.initialized {
		if v, ok := c.runtime[id]; ok {
			return v
		}
	}
	if v, ok := c.initial[id]; ok {
		return v
	}
	return true
}

// SetHandlerEnabled changes one handler and persists the full map. It does
// not restart the worker. Calls before initialization and unknown IDs are
// reported and ignored.
func (c *Controller) SetHandlerEnabled(ctx context.Context, id string, enabled bool) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	_, err := c.setStates(ctx, []string{id}, enabled)
	return err
}

// setStates sets every id in ids to enabled and persists once.
func (c *Controller) setStates(ctx context.Context, ids []string, enabled bool) (int, error) {
	states := make(map[string]bool, len(ids))
	for _, id := range ids {
		states[id] = enabled
	}
	return c.applyStates(ctx, ids, states)
}

// applyStates writes states for the IDs in order and returns how many known
// IDs were written. Unknown IDs are reported and skipped; the map is
// persisted once if anything was written. A failed write restores the
// previous values so memory never runs ahead of storage.
func (c *Controller) applyStates(ctx context.Context, order []string, states map[string]bool) (int, error) {
	if !c.enabled {
		return 0, nil
	}

	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		c.report(ctx, messages.ChangeBeforeInit{})
		return 0, nil
	}
	var unknown []string
	previous := make(map[string]bool, len(order))
	for _, id := range order {
		old, ok := c.runtime[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		if _, seen := previous[id]; !seen {
			previous[id] = old
		}
		c.runtime[id] = states[id]
	}
	c.mu.Unlock()

	for _, id := range unknown {
		c.report(ctx, messages.UnknownHandlerChange{ID: id})
	}
	if len(previous) == 0 {
		return 0, nil
	}
	if err := c.persist(ctx); err != nil {
		c.mu.Lock()
		maps.Copy(c.runtime, previous)
		c.mu.Unlock()
		return 0, err
	}
	c.observeHandlers()
	return len(previous), nil
}

// ActiveHandlers returns the routes of every enabled handler in registry
// order. Before initialization it reports and returns nothing.
func (c *Controller) ActiveHandlers() []mock.Route {
	return c.activeHandlers(context.Background())
}

func (c *Controller) activeHandlers(ctx context.Context) []mock.Route {
	if !c.enabled {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.initialized {
		c.report(ctx, messages.HandlersBeforeInit{})
		return nil
	}

	var routes []mock.Route
	for _, e := range c.registry.Handlers() {
		if c.isEnabledLocked(e.Descriptor.ID) {
			routes = append(routes, e.Descriptor.Route)
		}
	}
	return routes
}

// observeHandlers publishes the enabled count.
func (c *Controller) observeHandlers() {
	if c.metrics == nil {
		return
	}
	c.mu.RLock()
	n := 0
	for _, v := range c.runtime {
		if v {
			n++
		}
	}
	c.mu.RUnlock()
	c.metrics.SetHandlers(n, c.registry.Len())
}
