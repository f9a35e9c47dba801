// Package recell is a reactive dependency-tracking engine: writable cells,
// lazily memoized derived values and scheduled reactions, with dynamic
// dependency tracking and glitch-free, coalesced change propagation.
package recell

import "github.com/recell-dev/recell/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

type Cell[T any] struct {
	cell *internal.Cell
}

// NewCell creates a writable reactive value holder.
func NewCell[T any](initial T, opts ...Option[T]) *Cell[T] {
	cfg := applyOptions(opts)

	return &Cell[T]{
		internal.GetRuntime().NewCell(initial, wrapEqual(cfg.equal)),
	}
}

// Read returns the current value, registering the cell as a dependency of
// the derived computation or reaction body currently evaluating.
func (c *Cell[T]) Read() T {
	return as[T](c.cell.Read())
}

// Peek returns the current value without registering a dependency.
func (c *Cell[T]) Peek() T {
	return as[T](c.cell.Peek())
}

// Set assigns a new value, notifying subscribers. A value equal to the
// current one under the configured equality is a no-op.
func (c *Cell[T]) Set(v T) {
	c.cell.Write(v)
}

// Update sets the result of fn applied to the current value. The read does
// not create a dependency on the cell itself.
func (c *Cell[T]) Update(fn func(T) T) {
	c.cell.Update(func(v any) any {
		return fn(as[T](v))
	})
}

type Derived[T any] struct {
	derived *internal.Derived
}

// NewDerived creates a memoized computation over other reactive nodes. It
// evaluates lazily: fn does not run until the first Read, and again only
// when a dependency of the latest run has actually changed.
func NewDerived[T any](fn func() T, opts ...Option[T]) *Derived[T] {
	cfg := applyOptions(opts)

	return &Derived[T]{
		internal.GetRuntime().NewDerived(func() any {
			return fn()
		}, wrapEqual(cfg.equal)),
	}
}

// Read returns the derived value, recomputing it first if stale, and
// registers the node as a dependency of the evaluation in progress.
func (d *Derived[T]) Read() T {
	return as[T](d.derived.Read())
}

// Peek returns the derived value (recomputing if stale) without registering
// a dependency.
func (d *Derived[T]) Peek() T {
	return as[T](d.derived.Peek())
}

type Reaction struct {
	reaction *internal.Reaction
}

// NewReaction creates a side effect subscribed to the nodes its body reads.
// The body runs once eagerly (unless Deferred) and re-runs after any of the
// dependencies of its latest run change, at most once per flush. The body
// may register a cleanup through its argument; only the last registration
// of a run is kept, and it is invoked before the next run and on disposal.
func NewReaction(fn func(registerCleanup func(func())), opts ...ReactionOption) *Reaction {
	cfg := reactionConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	iopts := internal.ReactionOptions{
		AllowWrites: cfg.allowWrites,
		Deferred:    cfg.deferred,
	}
	if cfg.scope != nil {
		iopts.Scope = cfg.scope.scope
	}

	return &Reaction{internal.GetRuntime().NewReaction(fn, iopts)}
}

// Dispose runs the pending cleanup and permanently stops the reaction.
// Idempotent.
func (r *Reaction) Dispose() {
	r.reaction.Dispose()
}

// Untracked runs fn without recording reads as dependencies of the
// enclosing evaluation. Tracked evaluations started inside fn (a derived
// recomputing, a reaction created) still track normally.
func Untracked[T any](fn func() T) T {
	var result T
	internal.GetRuntime().Untrack(func() { result = fn() })
	return result
}

// Batch runs fn deferring all flushes until it returns, then flushes once.
// Reactions whose dependencies changed several times inside the batch still
// run a single time.
func Batch(fn func()) {
	internal.GetRuntime().Batch(fn)
}

// OnSettled registers fn to run once the pending flush fully settles,
// including reactions enqueued by other reactions mid-flush. When nothing
// is pending the graph is already settled and fn runs immediately.
func OnSettled(fn func()) {
	internal.GetRuntime().OnSettled(fn)
}

type Scope struct {
	scope *internal.Scope
}

// NewScope creates an owner scope. Reactions and nested scopes created
// while it is active (inside Run) are disposed with it.
func NewScope() *Scope {
	return &Scope{internal.GetRuntime().NewScope()}
}

// Run executes fn with this scope active.
func (s *Scope) Run(fn func() error) error {
	return s.scope.Run(fn)
}

// Dispose disposes every owned reaction and nested scope, depth-first,
// running pending cleanups first. Disposing twice is a no-op.
func (s *Scope) Dispose() {
	s.scope.Dispose()
}

// OnCleanup registers fn to run once when the scope is disposed.
func (s *Scope) OnCleanup(fn func()) {
	s.scope.OnCleanup(fn)
}

// OnError registers a handler for panics escaping reaction bodies owned by
// this scope. Without a handler anywhere up the scope chain the panic
// propagates as usual.
func (s *Scope) OnError(fn func(any)) {
	s.scope.OnError(fn)
}
