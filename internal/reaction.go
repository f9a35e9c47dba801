package internal

// ReactionOptions configures a reaction at creation.
type ReactionOptions struct {
	// AllowWrites permits cell writes inside the body. The notifications of
	// such writes extend the current flush instead of recursing into a new
	// one.
	AllowWrites bool

	// Deferred skips the eager first run; the reaction first runs on the
	// next flush.
	Deferred bool

	// Scope overrides the ambient owner scope.
	Scope *Scope
}

// Reaction is a scheduled side effect subscribed to the nodes its body
// reads. Reactions are terminal: nothing reads them, they are only enqueued
// by change notifications and run by the scheduler.
type Reaction struct {
	rid  uint64
	body func(registerCleanup func(func()))

	// cleanup is the function registered during the most recent run, if
	// any. It runs untracked, strictly before the next run and before
	// disposal.
	cleanup func()

	deps  []dependency
	scope *Scope

	// runScope owns the reactions and scopes created during one run of the
	// body; it is disposed before the next run, so nested reactions never
	// outlive the run that created them.
	runScope *Scope

	allowWrites bool
	pending     bool
	hasRun      bool
	disposed    bool
}

func (r *Runtime) NewReaction(body func(registerCleanup func(func())), opts ReactionOptions) *Reaction {
	scope := opts.Scope
	if scope == nil {
		scope = r.tracker.currentScope()
	}
	if scope != nil && scope.disposed {
		panic(ErrUseAfterDispose)
	}

	rx := &Reaction{
		rid:         nextID(),
		body:        body,
		scope:       scope,
		allowWrites: opts.AllowWrites,
	}

	if scope != nil {
		scope.addReaction(rx)
	}

	if opts.Deferred {
		rx.pending = true
		r.scheduler.enqueue(rx)
		return rx
	}

	rx.run(r)
	r.Schedule()

	return rx
}

func (rx *Reaction) id() uint64 {
	return rx.rid
}

// markStale enqueues the reaction for the next flush. The pending flag
// deduplicates: however many dependencies change within one batch, the
// reaction is queued at most once.
func (rx *Reaction) markStale(r *Runtime) {
	if rx.disposed || rx.pending {
		return
	}

	rx.pending = true
	r.scheduler.enqueue(rx)
}

// stale reports whether any dependency actually changed since the last run.
// Dependencies are settled first, so a queued reaction whose derived
// dependency recomputed to an equal value is recognized as a false alarm
// and skipped.
func (rx *Reaction) stale(r *Runtime) bool {
	if !rx.hasRun {
		return true
	}

	for _, dep := range rx.deps {
		dep.src.refresh(r)

		if dep.src.version() != dep.seen {
			return true
		}
	}

	return false
}

func (rx *Reaction) run(r *Runtime) {
	if rx.disposed {
		return
	}

	rx.pending = false

	if rx.runScope != nil {
		rx.runScope.Dispose()
	}
	rx.runCleanup(r)

	prev := rx.deps
	rx.clearDeps()

	// Not registered with the parent: the reaction itself disposes it on
	// the next run or at disposal. The parent link keeps error routing
	// intact for nested reactions.
	rx.runScope = &Scope{parent: rx.scope}

	var registered func()
	registerCleanup := func(fn func()) {
		registered = fn
	}

	f := r.tracker.push(rx)
	r.tracker.pushScope(rx.runScope)
	r.tracker.pushWriteGuard(rx.allowWrites)

	completed := false
	defer func() {
		r.tracker.popWriteGuard()
		r.tracker.popScope()
		r.tracker.pop()

		deps := f.deps
		if !completed {
			// A panicked run keeps its previous subscriptions too, so the
			// reaction still re-runs when any of them changes.
			deps = mergeDeps(deps, prev)
		}
		rx.installDeps(deps)
		rx.cleanup = registered
		rx.hasRun = true
	}()

	rx.body(registerCleanup)
	completed = true
}

func (rx *Reaction) runCleanup(r *Runtime) {
	if rx.cleanup == nil {
		return
	}

	fn := rx.cleanup
	rx.cleanup = nil

	r.tracker.pushUntracked()
	defer r.tracker.pop()

	fn()
}

// Dispose runs the pending cleanup, detaches the reaction from every
// subscriber set and guarantees it never runs again. Idempotent. A queued
// reaction becomes a no-op in the flush loop.
func (rx *Reaction) Dispose() {
	if rx.disposed {
		return
	}
	rx.disposed = true
	rx.pending = false

	// Detach from the owner so a long-lived scope with reaction churn does
	// not accumulate dead entries. During the owner's own disposal the slice
	// is being drained there instead.
	if rx.scope != nil && !rx.scope.disposed {
		rx.scope.removeReaction(rx)
	}

	r := GetRuntime()

	if rx.runScope != nil {
		rx.runScope.Dispose()
		rx.runScope = nil
	}

	rx.runCleanup(r)
	rx.clearDeps()
}

func (rx *Reaction) clearDeps() {
	for _, dep := range rx.deps {
		dep.src.removeSubscriber(rx)
	}
	rx.deps = nil
}

func (rx *Reaction) installDeps(deps []dependency) {
	rx.deps = deps
	for _, dep := range deps {
		dep.src.addSubscriber(rx)
	}
}
