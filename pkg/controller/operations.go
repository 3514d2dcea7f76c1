package controller

import (
	"context"
	"maps"
	"slices"

	"github.com/getmockd/mockswitch/pkg/messages"
)

// EnableHandler enables one handler and restarts the worker.
func (c *Controller) EnableHandler(ctx context.Context, id string) error {
	return c.toggleHandler(ctx, id, true)
}

// DisableHandler disables one handler and restarts the worker.
func (c *Controller) DisableHandler(ctx context.Context, id string) error {
	return c.toggleHandler(ctx, id, false)
}

func (c *Controller) toggleHandler(ctx context.Context, id string, enabled bool) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	if !c.enabled {
		return nil
	}

	entry, ok := c.registry.Resolve(id)
	if !ok {
		c.report(ctx, messages.HandlerNotFound{ID: id})
		return nil
	}
	if _, err := c.setStates(ctx, []string{id}, enabled); err != nil {
		return err
	}

	desc := entry.Descriptor.Description
	if enabled {
		c.report(ctx, messages.HandlerEnabled{ID: id, Description: desc})
	} else {
		c.report(ctx, messages.HandlerDisabled{ID: id, Description: desc})
	}
	if err := c.reinitialize(ctx); err != nil {
		return err
	}
	c.report(ctx, messages.ReinitComplete{})
	return nil
}

// EnableGroup enables every handler of a group and restarts the worker once.
func (c *Controller) EnableGroup(ctx context.Context, name string) error {
	return c.toggleGroup(ctx, name, true)
}

// DisableGroup disables every handler of a group and restarts the worker
// once. Other groups are untouched.
func (c *Controller) DisableGroup(ctx context.Context, name string) error {
	return c.toggleGroup(ctx, name, false)
}

func (c *Controller) toggleGroup(ctx context.Context, name string, enabled bool) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	if !c.enabled {
		return nil
	}

	group, ok := c.registry.Group(name)
	if !ok {
		c.report(ctx, messages.GroupNotFound{Group: name})
		return nil
	}
	if enabled {
		c.report(ctx, messages.EnablingGroup{Group: name})
	} else {
		c.report(ctx, messages.DisablingGroup{Group: name})
	}

	ids := make([]string, len(group.Handlers))
	for i, d := range group.Handlers {
		ids[i] = d.ID
	}
	if _, err := c.setStates(ctx, ids, enabled); err != nil {
		return err
	}
	if err := c.reinitialize(ctx); err != nil {
		return err
	}

	if enabled {
		c.report(ctx, messages.GroupEnabled{Group: name})
	} else {
		c.report(ctx, messages.GroupDisabled{Group: name})
	}
	return nil
}

// EnableAllHandlers enables every handler and restarts the worker once.
func (c *Controller) EnableAllHandlers(ctx context.Context) error {
	return c.toggleAll(ctx, true)
}

// DisableAllHandlers disables every handler and stops the worker. The
// worker stays stopped until something is enabled again.
func (c *Controller) DisableAllHandlers(ctx context.Context) error {
	return c.toggleAll(ctx, false)
}

func (c *Controller) toggleAll(ctx context.Context, enabled bool) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	if !c.enabled {
		return nil
	}

	if enabled {
		c.report(ctx, messages.EnablingAll{})
	} else {
		c.report(ctx, messages.DisablingAll{})
	}
	if _, err := c.setStates(ctx, c.registry.IDs(), enabled); err != nil {
		return err
	}
	if err := c.reinitialize(ctx); err != nil {
		return err
	}
	if enabled {
		c.report(ctx, messages.AllEnabled{})
	} else {
		c.report(ctx, messages.AllDisabled{})
	}
	return nil
}

// ApplyConfig sets many handlers at once and restarts the worker once.
// Unknown IDs are reported and skipped. When no known ID is named the worker
// is left alone.
func (c *Controller) ApplyConfig(ctx context.Context, states map[string]bool) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	if !c.enabled {
		return nil
	}

	c.report(ctx, messages.ApplyingConfig{Count: len(states)})
	ids := slices.Sorted(maps.Keys(states))
	n, err := c.applyStates(ctx, ids, states)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if err := c.reinitialize(ctx); err != nil {
		return err
	}
	c.report(ctx, messages.ConfigApplied{})
	return nil
}

// LoadConfigFromStorage discards the in-memory state, re-reads it from
// storage and restarts the worker.
func (c *Controller) LoadConfigFromStorage(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	if !c.enabled {
		return nil
	}

	c.report(ctx, messages.LoadingConfig{})
	c.mu.Lock()
	c.initialized = false
	c.mu.Unlock()
	if err := c.initialize(ctx); err != nil {
		return err
	}
	c.report(ctx, messages.ConfigLoaded{})
	return c.reinitialize(ctx)
}

// ResetToInitialConfig replaces the runtime state with the initial states,
// persists it and restarts the worker.
func (c *Controller) ResetToInitialConfig(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	if !c.enabled {
		return nil
	}

	c.report(ctx, messages.ResettingConfig{})
	states := maps.Clone(c.initial)
	c.mu.Lock()
	previous, wasInitialized := c.runtime, c.initialized
	c.runtime = states
	c.mu.Unlock()
	if err := c.persist(ctx); err != nil {
		c.mu.Lock()
		c.runtime, c.initialized = previous, wasInitialized
		c.mu.Unlock()
		return err
	}
	c.mu.Lock()
	c.initialized = true
	c.mu.Unlock()
	c.observeHandlers()

	c.report(ctx, messages.ConfigReset{States: maps.Clone(states)})
	return c.reinitialize(ctx)
}

// SaveConfigToStorage writes the current state to storage without touching
// the worker.
func (c *Controller) SaveConfigToStorage(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	if !c.enabled {
		return nil
	}

	c.mu.RLock()
	initialized := c.initialized
	c.mu.RUnlock()
	if !initialized {
		c.report(ctx, messages.ChangeBeforeInit{})
		return nil
	}
	if err := c.persist(ctx); err != nil {
		return err
	}
	c.report(ctx, messages.ConfigSaved{States: c.CurrentConfig()})
	return nil
}
