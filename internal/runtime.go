package internal

import (
	"sync"
)

// Runtime is one reactive graph's thread of control: tracker, batcher and
// scheduler for every node created through it. Runtimes are goroutine-local
// (see GetRuntime), so all graph mutation, enqueueing included, happens on
// the owning goroutine; the mutex only serializes the flush bookkeeping
// (the flushing flag, dequeueing, the settled list).
type Runtime struct {
	mu sync.Mutex

	tracker   *Tracker
	batcher   *Batcher
	scheduler *Scheduler
}

func NewRuntime() *Runtime {
	return &Runtime{
		tracker:   NewTracker(),
		batcher:   NewBatcher(),
		scheduler: NewScheduler(),
	}
}

// Schedule flushes the reaction queue unless something defers it: an open
// batch, an active flush, or an evaluation on the stack. In each of those
// cases the queue drains when the deferring construct completes, so one
// external trigger settles in one coherent flush.
func (r *Runtime) Schedule() {
	r.mu.Lock()
	shouldFlush := !r.batcher.IsBatching() && !r.scheduler.flushing && !r.tracker.evaluating()
	r.mu.Unlock()

	if shouldFlush {
		r.Flush()
	}
}

// Flush drains the reaction queue: disposed and no-longer-stale reactions
// are skipped, the rest re-run. Reactions enqueued mid-drain (by writes
// from bodies that allow them) extend the same drain. Settled callbacks run
// once the queue is empty.
func (r *Runtime) Flush() {
	r.mu.Lock()
	if r.scheduler.flushing || r.batcher.IsBatching() {
		r.mu.Unlock()
		return
	}
	r.scheduler.flushing = true
	r.mu.Unlock()

	r.drain()

	r.mu.Lock()
	settled := r.scheduler.takeSettled()
	r.mu.Unlock()

	for _, fn := range settled {
		fn()
	}
}

func (r *Runtime) drain() {
	var unhandled any
	caught := false

	defer func() {
		r.mu.Lock()
		r.scheduler.flushing = false
		r.mu.Unlock()
	}()

	for {
		r.mu.Lock()
		rx, ok := r.scheduler.dequeue()
		r.mu.Unlock()

		if !ok {
			break
		}

		if err, failed := r.process(rx); failed && !caught {
			unhandled = err
			caught = true
		}
	}

	// An unhandled panic surfaces only once the queue is empty: one failing
	// reaction never starves the others queued in the same flush.
	if caught {
		panic(unhandled)
	}
}

// process runs one queued reaction, converting a panic escaping its body
// (or its dependencies' recomputation) into a call to the nearest scope
// error handler. A panic no handler consumes is reported to the drain loop
// rather than raised here.
func (r *Runtime) process(rx *Reaction) (unhandled any, failed bool) {
	defer func() {
		if err := recover(); err != nil {
			if rx.scope == nil || !rx.scope.handleError(err) {
				unhandled = err
				failed = true
			}
		}
	}()

	if rx.disposed || !rx.pending {
		return nil, false
	}

	// Cleared before the staleness check: if settling a dependency panics,
	// the reaction must stay receptive to future notifications.
	rx.pending = false

	if rx.stale(r) {
		rx.run(r)
	}

	return nil, false
}

// Untrack runs fn with tracking suppressed. Only the dynamic extent of fn
// is untracked: a derived recomputation triggered inside resumes tracking
// for its own frame.
func (r *Runtime) Untrack(fn func()) {
	r.tracker.pushUntracked()
	defer r.tracker.pop()

	fn()
}

// OnSettled registers fn to run once the pending flush fully settles,
// including reactions enqueued by other reactions. With no flush active,
// no batch open and nothing queued, the graph is already settled and fn
// runs immediately.
func (r *Runtime) OnSettled(fn func()) {
	r.mu.Lock()
	idle := !r.scheduler.flushing && !r.batcher.IsBatching() && len(r.scheduler.queue) == 0
	if !idle {
		r.scheduler.onSettled(fn)
	}
	r.mu.Unlock()

	if idle {
		fn()
	}
}
