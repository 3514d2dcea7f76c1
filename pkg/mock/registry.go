package mock

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Registry construction errors.
var (
	ErrInvalidGroup     = errors.New("invalid group")
	ErrInvalidHandler   = errors.New("invalid handler")
	ErrDuplicateGroup   = errors.New("duplicate group name")
	ErrDuplicateHandler = errors.New("duplicate handler id")
)

// Route is what the worker serves for an enabled handler.
type Route struct {
	// Name identifies the route in logs and metrics. NewRegistry defaults it
	// to the handler ID.
	Name string
	// Method restricts the route to one HTTP method. Empty matches any method.
	Method string
	// Path is a gorilla/mux path template, e.g. "/users/{id}".
	Path string
	// Handler writes the mocked response.
	Handler http.Handler
}

// String renders the route as "METHOD /path".
func (r Route) String() string {
	method := r.Method
	if method == "" {
		method = "*"
	}
	return method + " " + r.Path
}

// Descriptor is a single registered mock handler.
type Descriptor struct {
	ID          string
	Description string
	Route       Route
}

// Group is a named collection of handlers toggled together.
type Group struct {
	Name        string
	Description string
	Handlers    []Descriptor
}

// Entry is a descriptor together with the group that owns it.
type Entry struct {
	Group      string
	Descriptor Descriptor
}

// Registry is the immutable index of all groups and handlers.
type Registry struct {
	groups  []Group
	byName  map[string]int
	entries []Entry
	byID    map[string]int
}

// NewRegistry validates groups and builds the index. Declaration order is
// preserved: Groups and Handlers return items in the order they were given.
func NewRegistry(groups []Group) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]int, len(groups)),
		byID:   make(map[string]int),
	}

	for gi, g := range groups {
		if strings.TrimSpace(g.Name) == "" {
			return nil, fmt.Errorf("%w: group #%d has no name", ErrInvalidGroup, gi+1)
		}
		if _, dup := r.byName[g.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateGroup, g.Name)
		}

		handlers := make([]Descriptor, len(g.Handlers))
		copy(handlers, g.Handlers)

		for i := range handlers {
			if handlers[i].Route.Name == "" {
				handlers[i].Route.Name = handlers[i].ID
			}
			d := handlers[i]
			if err := validateDescriptor(g.Name, d); err != nil {
				return nil, err
			}
			if prev, dup := r.byID[d.ID]; dup {
				return nil, fmt.Errorf("%w: %q in group %q already registered by group %q",
					ErrDuplicateHandler, d.ID, g.Name, r.entries[prev].Group)
			}
			r.byID[d.ID] = len(r.entries)
			r.entries = append(r.entries, Entry{Group: g.Name, Descriptor: d})
		}

		r.byName[g.Name] = len(r.groups)
		r.groups = append(r.groups, Group{
			Name:        g.Name,
			Description: g.Description,
			Handlers:    handlers,
		})
	}

	return r, nil
}

func validateDescriptor(group string, d Descriptor) error {
	switch {
	case strings.TrimSpace(d.ID) == "":
		return fmt.Errorf("%w: handler in group %q has no id", ErrInvalidHandler, group)
	case d.Route.Handler == nil:
		return fmt.Errorf("%w: %q has no handler implementation", ErrInvalidHandler, d.ID)
	case !strings.HasPrefix(d.Route.Path, "/"):
		return fmt.Errorf("%w: %q path %q must start with /", ErrInvalidHandler, d.ID, d.Route.Path)
	}
	return nil
}

// Groups returns all groups in declaration order.
func (r *Registry) Groups() []Group {
	out := make([]Group, len(r.groups))
	for i, g := range r.groups {
		out[i] = g.clone()
	}
	return out
}

// Group looks up a group by name.
func (r *Registry) Group(name string) (Group, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Group{}, false
	}
	return r.groups[i].clone(), true
}

func (g Group) clone() Group {
	g.Handlers = slices.Clone(g.Handlers)
	return g
}

// Resolve looks up a handler by ID.
func (r *Registry) Resolve(id string) (Entry, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Handlers returns every handler with its group, in registry order.
func (r *Registry) Handlers() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// IDs returns every handler ID in registry order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.Descriptor.ID
	}
	return ids
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	return len(r.entries)
}
