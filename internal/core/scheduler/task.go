// Package scheduler runs periodic background work whose lifetime is bound to an owner.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"storefront-gateway/internal/core/logger"

	"github.com/juju/clock"
	"go.uber.org/zap"
)

// RunFunc is one execution of a periodic task. ctx is cancelled when the task stops.
type RunFunc func(ctx context.Context)

// Task is a handle on a periodic job. A run is started immediately and then once per
// interval. Ticks that fire while a previous run is still in flight are dropped, so at
// most one run is active at any time.
type Task struct {
	name     string
	clock    clock.Clock
	interval time.Duration
	run      RunFunc

	cancel   context.CancelFunc
	loopDone chan struct{}
	inFlight sync.WaitGroup
	running  atomic.Bool
	runs     atomic.Int64
	skipped  atomic.Int64
	stopOnce sync.Once
}

// Start launches a task. The task stops when parent is cancelled or Stop is called.
func Start(parent context.Context, clk clock.Clock, name string, interval time.Duration, run RunFunc) *Task {
	ctx, cancel := context.WithCancel(parent)
	t := &Task{
		name:     name,
		clock:    clk,
		interval: interval,
		run:      run,
		cancel:   cancel,
		loopDone: make(chan struct{}),
	}

	t.trigger(ctx)
	go t.loop(ctx)

	return t
}

func (t *Task) loop(ctx context.Context) {
	defer close(t.loopDone)

	timer := t.clock.NewTimer(t.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.Chan():
			t.trigger(ctx)
			timer.Reset(t.interval)
		}
	}
}

func (t *Task) trigger(ctx context.Context) {
	if !t.running.CompareAndSwap(false, true) {
		t.skipped.Add(1)
		logger.Named("scheduler").Debug("Skipping overlapping run", zap.String("task", t.name))
		return
	}

	t.runs.Add(1)
	t.inFlight.Add(1)
	go func() {
		defer t.inFlight.Done()
		defer t.running.Store(false)
		t.run(ctx)
	}()
}

// Stop cancels the task and waits for the loop and any in-flight run to return.
func (t *Task) Stop() {
	t.stopOnce.Do(func() {
		t.cancel()
		<-t.loopDone
		t.inFlight.Wait()
	})
}

// Runs reports how many runs were started.
func (t *Task) Runs() int64 {
	return t.runs.Load()
}

// Skipped reports how many ticks were dropped because a run was in flight.
func (t *Task) Skipped() int64 {
	return t.skipped.Load()
}
