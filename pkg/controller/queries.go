package controller

import (
	"maps"
	"slices"
)

// CurrentConfig returns a copy of the runtime state map.
func (c *Controller) CurrentConfig() map[string]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.runtime)
}

// HandlerEnabled reports the state of id. ok is false for unknown IDs.
func (c *Controller) HandlerEnabled(id string) (enabled, ok bool) {
	if _, found := c.registry.Resolve(id); !found {
		return false, false
	}
	return c.IsHandlerEnabled(id), true
}

// Handlers lists every handler with its state, sorted by group name and then
// description in the controller's locale. A disabled controller lists
// nothing.
func (c *Controller) Handlers() []HandlerInfo {
	if !c.enabled {
		return nil
	}

	entries := c.registry.Handlers()
	out := make([]HandlerInfo, 0, len(entries))
	c.mu.RLock()
	for _, e := range entries {
		out = append(out, HandlerInfo{
			GroupName:   e.Group,
			ID:          e.Descriptor.ID,
			Description: e.Descriptor.Description,
			Enabled:     c.isEnabledLocked(e.Descriptor.ID),
		})
	}
	c.mu.RUnlock()

	coll := c.locale.Collator()
	slices.SortStableFunc(out, func(a, b HandlerInfo) int {
		if a.GroupName != b.GroupName {
			return coll.CompareString(a.GroupName, b.GroupName)
		}
		return coll.CompareString(a.Description, b.Description)
	})
	return out
}
