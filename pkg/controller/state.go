package controller

import (
	"context"
	"errors"

	"github.com/looplab/fsm"
)

// State is the worker lifecycle state.
type State string

// Worker lifecycle states.
const (
	// StateDisabled is entered when the controller is globally disabled and
	// is never left.
	StateDisabled State = "disabled"
	StateStopped  State = "stopped"
	StateStarting State = "starting"
	StateRunning  State = "running"
	// StateStartFailed is entered when the engine refuses to start. A later
	// Start is allowed.
	StateStartFailed State = "start_failed"
)

// String implements fmt.Stringer.
func (s State) String() string { return string(s) }

// Lifecycle events.
const (
	eventStart   = "start"
	eventStarted = "started"
	eventFailed  = "failed"
	eventStop    = "stop"
)

func newLifecycle(initial State, onEnter func(ctx context.Context, from, to State)) *fsm.FSM {
	return fsm.NewFSM(
		string(initial),
		fsm.Events{
			{Name: eventStart, Src: []string{string(StateStopped), string(StateStartFailed)}, Dst: string(StateStarting)},
			{Name: eventStarted, Src: []string{string(StateStarting)}, Dst: string(StateRunning)},
			{Name: eventFailed, Src: []string{string(StateStarting)}, Dst: string(StateStartFailed)},
			{Name: eventStop, Src: []string{string(StateRunning), string(StateStartFailed)}, Dst: string(StateStopped)},
		},
		fsm.Callbacks{
			"enter_state": func(ctx context.Context, e *fsm.Event) {
				onEnter(ctx, State(e.Src), State(e.Dst))
			},
		},
	)
}

// transition fires event if the current state allows it. Events that do not
// apply are ignored so callers can fire them unconditionally.
func (c *Controller) transition(ctx context.Context, event string) {
	if !c.lifecycle.Can(event) {
		return
	}
	if err := c.lifecycle.Event(ctx, event); err != nil {
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			c.log.Warn("lifecycle transition failed", "event", event, "error", err)
		}
	}
}
