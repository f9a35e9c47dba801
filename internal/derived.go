package internal

// Derived is a lazily evaluated, memoized computation over other nodes. It
// is never computed at creation: the first Read runs compute, records
// exactly the sources read, and caches the result. A change notification
// only flips the state; recomputation is deferred to the next Read.
type Derived struct {
	nodeBase

	compute func() any
	equal   func(a, b any) bool

	value       any
	state       nodeState
	initialized bool
	computing   bool

	// deps is the set of sources read during the last successful
	// evaluation, replaced wholesale on every recomputation.
	deps []dependency
}

func (r *Runtime) NewDerived(compute func() any, equal func(a, b any) bool) *Derived {
	if equal == nil {
		equal = defaultEqual
	}

	return &Derived{
		nodeBase: r.newNodeBase(),
		compute:  compute,
		equal:    equal,
		state:    stateDirty,
	}
}

// Read settles the node if stale and returns the cached value, registering
// it as a dependency of the evaluation in progress, if any. Registration
// happens after settling so the recorded version is current.
func (d *Derived) Read() any {
	d.checkAlive()

	r := GetRuntime()
	d.refresh(r)
	r.tracker.record(d)

	return d.value
}

// Peek settles and returns the value without registering a dependency.
func (d *Derived) Peek() any {
	d.checkAlive()

	d.refresh(GetRuntime())

	return d.value
}

// markStale flips a clean node to check and cascades to its own
// subscribers. A check node has cascaded before, so marking stops there;
// together with the reaction queue's pending flag this is what coalesces
// diamond-shaped notifications. A dirty node cascades again: it is dirty
// because its last recomputation panicked, and its subscribers have since
// consumed the earlier notification, so a fresh change must reach them for
// the retry to be scheduled.
func (d *Derived) markStale(r *Runtime) {
	if d.state == stateCheck {
		return
	}

	if d.state == stateClean {
		d.state = stateCheck
	}

	d.notify(r)
}

// refresh brings the cached value up to date. A check node first polls its
// dependencies: each is settled in turn and its current version compared to
// the version observed during the last run. Only an actual version change
// forces a recomputation, so an upstream run that produced an equal value
// never cascades down here.
func (d *Derived) refresh(r *Runtime) {
	switch d.state {
	case stateClean:
		return

	case stateCheck:
		if d.depsChanged(r) {
			d.recompute(r)
		} else {
			d.state = stateClean
		}

	case stateDirty:
		d.recompute(r)
	}
}

func (d *Derived) depsChanged(r *Runtime) bool {
	for _, dep := range d.deps {
		dep.src.refresh(r)

		if dep.src.version() != dep.seen {
			return true
		}
	}

	return false
}

// recompute runs the computation with a fresh tracking frame, then swaps in
// the dependency set observed on this run. Old edges are dropped first: a
// branch not taken this time is not a dependency. If compute panics the
// node stays dirty, the previous subscriptions are kept alongside whatever
// the failed run read, and the panic propagates to the reader; a later
// change to any of those sources schedules the retry.
func (d *Derived) recompute(r *Runtime) {
	if d.computing {
		panic(ErrCircularDependency)
	}
	d.computing = true
	d.state = stateDirty

	prev := d.deps
	d.clearDeps()
	f := r.tracker.push(d)

	completed := false
	defer func() {
		r.tracker.pop()
		d.computing = false

		deps := f.deps
		if !completed {
			deps = mergeDeps(deps, prev)
		}
		d.installDeps(deps)
	}()

	value := d.compute()
	completed = true

	changed := !d.initialized || !d.equal(d.value, value)
	d.value = value
	d.initialized = true
	d.state = stateClean

	if changed {
		d.vers++
	}
}

func (d *Derived) clearDeps() {
	for _, dep := range d.deps {
		dep.src.removeSubscriber(d)
	}
	d.deps = nil
}

func (d *Derived) installDeps(deps []dependency) {
	d.deps = deps
	for _, dep := range deps {
		dep.src.addSubscriber(d)
	}
}
