package internal

// frame is one evaluation on the tracking stack. A tracking frame belongs to
// the derived node or reaction whose body is currently running and collects
// the sources it reads. An untracked frame (sub == nil) shields the frames
// below it: reads inside record nothing, but a nested tracked evaluation
// pushes its own frame and resumes normal tracking.
type frame struct {
	sub      subscriber
	tracking bool
	deps     []dependency
}

// record registers a source read, deduplicated by node identity. The
// source's version is captured at read time so staleness can later be
// decided by comparison.
func (f *frame) record(src source) {
	sid := src.id()
	for _, dep := range f.deps {
		if dep.src.id() == sid {
			return
		}
	}

	f.deps = append(f.deps, dependency{src: src, seen: src.version()})
}

// writeGuard is pushed for the duration of a reaction body and decides
// whether cell writes are permitted inside it.
type writeGuard struct {
	allow bool
}

// Tracker holds the evaluation state of one runtime: the stack of tracking
// frames, the stack of active owner scopes, and the stack of write guards.
// All three are dynamic scopes, pushed and popped around one evaluation.
type Tracker struct {
	frames []*frame
	scopes []*Scope
	guards []writeGuard
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) push(sub subscriber) *frame {
	f := &frame{sub: sub, tracking: true}
	t.frames = append(t.frames, f)
	return f
}

func (t *Tracker) pushUntracked() {
	t.frames = append(t.frames, &frame{})
}

func (t *Tracker) pop() {
	t.frames = t.frames[:len(t.frames)-1]
}

// record attaches a source read to the innermost frame, if that frame is
// tracking. Reads outside any evaluation attach to nothing.
func (t *Tracker) record(src source) {
	if len(t.frames) == 0 {
		return
	}

	top := t.frames[len(t.frames)-1]
	if top.tracking {
		top.record(src)
	}
}

// evaluating reports whether a derived computation or reaction body is
// anywhere on the stack. Flushes are deferred while it holds.
func (t *Tracker) evaluating() bool {
	for _, f := range t.frames {
		if f.sub != nil {
			return true
		}
	}

	return false
}

func (t *Tracker) pushScope(s *Scope) {
	t.scopes = append(t.scopes, s)
}

func (t *Tracker) popScope() {
	t.scopes = t.scopes[:len(t.scopes)-1]
}

func (t *Tracker) currentScope() *Scope {
	if len(t.scopes) == 0 {
		return nil
	}

	return t.scopes[len(t.scopes)-1]
}

func (t *Tracker) pushWriteGuard(allow bool) {
	t.guards = append(t.guards, writeGuard{allow: allow})
}

func (t *Tracker) popWriteGuard() {
	t.guards = t.guards[:len(t.guards)-1]
}

func (t *Tracker) inReactionBody() bool {
	return len(t.guards) > 0
}

func (t *Tracker) writesAllowed() bool {
	return t.guards[len(t.guards)-1].allow
}
