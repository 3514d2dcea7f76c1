package controller

import (
	"context"

	"github.com/getmockd/mockswitch/pkg/messages"
)

// Event is delivered to observers after the worker may have changed.
type Event struct {
	Running  bool   `json:"running"`
	WorkerID string `json:"workerId,omitempty"`
	// Active is the number of routes the worker serves.
	Active int `json:"active"`
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	c       *Controller
	id      uint64
	fn      func(Event)
	removed bool
}

// Subscribe registers fn to be called after every Reinitialize and after a
// successful Start. Observers are called synchronously in subscription order.
func (c *Controller) Subscribe(fn func(Event)) *Subscription {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	c.nextSub++
	s := &Subscription{c: c, id: c.nextSub, fn: fn}
	c.subs = append(c.subs, s)
	return s
}

// Unsubscribe removes the observer. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	c := s.c
	c.subMu.Lock()
	defer c.subMu.Unlock()
	if s.removed {
		return
	}
	s.removed = true
	for i, sub := range c.subs {
		if sub.id == s.id {
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			break
		}
	}
}

// notify fans the current worker state out to every observer.
func (c *Controller) notify(ctx context.Context) {
	c.subMu.Lock()
	subs := make([]*Subscription, len(c.subs))
	copy(subs, c.subs)
	c.subMu.Unlock()

	ev := Event{}
	c.mu.RLock()
	if c.instance != nil {
		ev = Event{Running: true, WorkerID: c.instance.ID(), Active: c.instance.Routes()}
	}
	c.mu.RUnlock()

	c.report(ctx, messages.StateChangeBroadcast{Subscribers: len(subs)})
	c.metrics.StateChanged()
	for _, s := range subs {
		if s.fn != nil {
			s.fn(ev)
		}
	}
}
