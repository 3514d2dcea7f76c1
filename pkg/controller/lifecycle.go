package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/getmockd/mockswitch/pkg/messages"
)

// errNoInstance stands in for an engine that reports success without a worker.
var errNoInstance = errors.New("engine returned no worker")

// Start runs a worker with the currently enabled handlers.
//
// Start is a no-op when a worker is already running or the controller is
// disabled. With no enabled handlers it reports a hint and leaves the worker
// stopped. An engine failure is reported, leaves StateStartFailed and is not
// retried; Start still returns nil. Only storage errors are returned.
// Observers are notified after a successful start.
func (c *Controller) Start(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.start(ctx, true)
}

func (c *Controller) start(ctx context.Context, notify bool) error {
	if c.IsWorkerRunning() {
		c.report(ctx, messages.WorkerAlreadyStarted{})
		return nil
	}
	if !c.enabled {
		return nil
	}
	if err := c.initialize(ctx); err != nil {
		return err
	}

	routes := c.activeHandlers(ctx)
	if len(routes) == 0 {
		c.report(ctx, messages.NoActiveHandlers{})
		c.report(ctx, messages.EnableHandlersHint{})
		c.transition(ctx, eventStop)
		return nil
	}

	c.transition(ctx, eventStart)
	inst, err := c.engine.Start(ctx, routes)
	if err == nil && inst == nil {
		err = errNoInstance
	}
	if err != nil {
		c.transition(ctx, eventFailed)
		c.metrics.WorkerStartFailed()
		c.report(ctx, messages.WorkerStartFailed{Err: err})
		return nil
	}

	c.mu.Lock()
	c.instance = inst
	c.mu.Unlock()
	c.transition(ctx, eventStarted)
	c.metrics.WorkerStarted()
	c.report(ctx, messages.WorkerStarted{Count: len(routes), WorkerID: inst.ID()})

	if notify {
		c.notify(ctx)
	}
	return nil
}

// Stop shuts the running worker down. It is a no-op when nothing runs. The
// worker reference is released even if the engine reports an error, which
// is returned.
func (c *Controller) Stop(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.stop(ctx)
}

func (c *Controller) stop(ctx context.Context) error {
	c.mu.Lock()
	inst := c.instance
	c.instance = nil
	c.mu.Unlock()

	if inst == nil {
		// Leave start_failed so the next state reflects an idle worker.
		c.transition(ctx, eventStop)
		return nil
	}

	err := inst.Stop(ctx)
	c.transition(ctx, eventStop)
	if err != nil {
		c.report(ctx, messages.WorkerStopFailed{Err: err})
		return fmt.Errorf("stop worker %s: %w", inst.ID(), err)
	}
	c.report(ctx, messages.WorkerStopped{WorkerID: inst.ID()})
	return nil
}

// Reinitialize stops the worker and starts a new one with the current
// enabled set, then notifies observers once whatever the outcome.
func (c *Controller) Reinitialize(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.reinitialize(ctx)
}

func (c *Controller) reinitialize(ctx context.Context) error {
	if !c.enabled {
		return nil
	}
	c.report(ctx, messages.WorkerReinitializing{})

	stopErr := c.stop(ctx)
	startErr := c.start(ctx, false)

	if c.IsWorkerRunning() {
		c.report(ctx, messages.WorkerReinitialized{})
	} else {
		c.report(ctx, messages.WorkerNotStartedAfterReinit{})
	}
	c.metrics.Reinitialized()
	c.notify(ctx)

	return errors.Join(stopErr, startErr)
}
