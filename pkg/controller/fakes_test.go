package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getmockd/mockswitch/pkg/engine"
	"github.com/getmockd/mockswitch/pkg/mock"
	"github.com/getmockd/mockswitch/pkg/store"
)

// fakeEngine records every start and hands out fakeInstances.
type fakeEngine struct {
	mu       sync.Mutex
	starts   [][]mock.Route
	failNext int
	nilNext  int
	stopErr  error
	seq      int
	live     map[string]bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{live: make(map[string]bool)}
}

func (e *fakeEngine) Start(_ context.Context, routes []mock.Route) (engine.Instance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.starts = append(e.starts, routes)
	if e.failNext > 0 {
		e.failNext--
		return nil, errors.New("address already in use")
	}
	if e.nilNext > 0 {
		e.nilNext--
		return nil, nil
	}
	e.seq++
	inst := &fakeInstance{id: fmt.Sprintf("worker-%d", e.seq), routes: routes, engine: e}
	e.live[inst.id] = true
	return inst, nil
}

func (e *fakeEngine) startCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.starts)
}

func (e *fakeEngine) lastRoutes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.starts) == 0 {
		return nil
	}
	var names []string
	for _, r := range e.starts[len(e.starts)-1] {
		names = append(names, r.Name)
	}
	return names
}

func (e *fakeEngine) liveCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.live)
}

type fakeInstance struct {
	id     string
	routes []mock.Route
	engine *fakeEngine
}

func (i *fakeInstance) ID() string  { return i.id }
func (i *fakeInstance) Routes() int { return len(i.routes) }

func (i *fakeInstance) Stop(context.Context) error {
	i.engine.mu.Lock()
	defer i.engine.mu.Unlock()
	delete(i.engine.live, i.id)
	return i.engine.stopErr
}

// failingStore wraps a KV and fails reads or writes on demand.
type failingStore struct {
	store.KV
	mu       sync.Mutex
	failGet  bool
	failSet  bool
	setCalls int
}

var errDisk = errors.New("disk unavailable")

func (s *failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	fail := s.failGet
	s.mu.Unlock()
	if fail {
		return "", false, errDisk
	}
	return s.KV.Get(ctx, key)
}

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.setCalls++
	fail := s.failSet
	s.mu.Unlock()
	if fail {
		return errDisk
	}
	return s.KV.Set(ctx, key, value)
}

func (s *failingStore) sets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCalls
}

func descriptor(id, method, path string) mock.Descriptor {
	return mock.Descriptor{
		ID:          id,
		Description: method + " " + path,
		Route: mock.Route{
			Method:  method,
			Path:    path,
			Handler: &mock.Responder{Status: http.StatusOK, Body: []byte(id)},
		},
	}
}

// usersGroups is the registry used throughout: one group, two handlers.
func usersGroups() []mock.Group {
	return []mock.Group{{
		Name:        "users",
		Description: "User endpoints",
		Handlers: []mock.Descriptor{
			descriptor("h1", "GET", "/users"),
			descriptor("h2", "POST", "/users"),
		},
	}}
}

// twoGroups adds an orders group next to users.
func twoGroups() []mock.Group {
	return append(usersGroups(), mock.Group{
		Name: "orders",
		Handlers: []mock.Descriptor{
			descriptor("o1", "GET", "/orders"),
			descriptor("o2", "DELETE", "/orders/{id}"),
		},
	})
}
