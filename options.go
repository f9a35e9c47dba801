package recell

type config[T any] struct {
	equal func(a, b T) bool
}

// Option configures a Cell or Derived at creation.
type Option[T any] func(*config[T])

// Equals sets the equality used to decide whether a new value counts as a
// change. The default is value equality for primitives and identity for
// everything else.
func Equals[T any](fn func(a, b T) bool) Option[T] {
	return func(c *config[T]) {
		c.equal = fn
	}
}

func applyOptions[T any](opts []Option[T]) config[T] {
	var cfg config[T]
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// wrapEqual adapts a typed equality to the type-erased engine. A nil fn
// keeps the engine's default.
func wrapEqual[T any](fn func(a, b T) bool) func(a, b any) bool {
	if fn == nil {
		return nil
	}

	return func(a, b any) bool {
		return fn(as[T](a), as[T](b))
	}
}

type reactionConfig struct {
	allowWrites bool
	deferred    bool
	scope       *Scope
}

// ReactionOption configures a Reaction at creation.
type ReactionOption func(*reactionConfig)

// AllowWrites permits cell writes inside the reaction body. Their
// notifications extend the current flush instead of recursing into a nested
// one. Without this option a write from a body panics with
// ErrDisallowedWrite.
func AllowWrites() ReactionOption {
	return func(c *reactionConfig) {
		c.allowWrites = true
	}
}

// Deferred skips the eager first run; the reaction first runs during the
// next flush.
func Deferred() ReactionOption {
	return func(c *reactionConfig) {
		c.deferred = true
	}
}

// WithScope attaches the reaction to an explicit owner scope instead of the
// ambient one.
func WithScope(s *Scope) ReactionOption {
	return func(c *reactionConfig) {
		c.scope = s
	}
}
