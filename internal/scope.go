package internal

// Scope is a disposal boundary. Every reaction created while a scope is
// active belongs to it, as do nested scopes; disposing the scope disposes
// them all, depth-first and exactly once. Scopes also carry the error
// handlers that catch panics escaping reaction bodies.
type Scope struct {
	parent    *Scope
	children  []*Scope
	reactions []*Reaction

	cleanups []func()
	catchers []func(any)

	disposed bool
}

// NewScope creates a scope owned by the currently active one, or a root
// scope when none is active.
func (r *Runtime) NewScope() *Scope {
	parent := r.tracker.currentScope()
	if parent != nil && parent.disposed {
		panic(ErrUseAfterDispose)
	}

	s := &Scope{parent: parent}
	if parent != nil {
		parent.children = append(parent.children, s)
	}

	return s
}

// Run executes fn with this scope active: reactions, cells and nested
// scopes created inside belong to it. A panic escaping fn is routed to the
// nearest error handler up the scope chain and re-raised if there is none.
func (s *Scope) Run(fn func() error) error {
	if s.disposed {
		panic(ErrUseAfterDispose)
	}

	r := GetRuntime()

	defer func() {
		if err := recover(); err != nil {
			if !s.handleError(err) {
				panic(err)
			}
		}
	}()

	r.tracker.pushScope(s)
	defer r.tracker.popScope()

	return fn()
}

// Dispose tears the scope down: nested scopes first, newest first, then
// owned reactions (each running its pending cleanup), then the scope's own
// cleanup functions. Disposing twice is a no-op.
func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	for i := len(s.children) - 1; i >= 0; i-- {
		s.children[i].Dispose()
	}
	s.children = nil

	for i := len(s.reactions) - 1; i >= 0; i-- {
		s.reactions[i].Dispose()
	}
	s.reactions = nil

	for _, fn := range s.cleanups {
		fn()
	}
	s.cleanups = nil
}

func (s *Scope) Disposed() bool {
	return s.disposed
}

// OnCleanup registers fn to run once when the scope is disposed. On an
// already disposed scope fn runs immediately.
func (s *Scope) OnCleanup(fn func()) {
	if s.disposed {
		fn()
		return
	}

	s.cleanups = append(s.cleanups, fn)
}

// OnError registers a handler for panics escaping reaction bodies owned by
// this scope. Without any handler up the chain the panic propagates to the
// caller that triggered the flush.
func (s *Scope) OnError(fn func(any)) {
	s.catchers = append(s.catchers, fn)
}

func (s *Scope) addReaction(rx *Reaction) {
	s.reactions = append(s.reactions, rx)
}

func (s *Scope) removeReaction(rx *Reaction) {
	for i, owned := range s.reactions {
		if owned == rx {
			last := len(s.reactions) - 1
			s.reactions[i] = s.reactions[last]
			s.reactions[last] = nil
			s.reactions = s.reactions[:last]
			return
		}
	}
}

// handleError walks the scope chain towards the root looking for error
// handlers. The nearest scope with handlers consumes the error.
func (s *Scope) handleError(err any) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if len(sc.catchers) == 0 {
			continue
		}

		for _, catch := range sc.catchers {
			catch(err)
		}

		return true
	}

	return false
}
