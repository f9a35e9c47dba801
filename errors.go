package recell

import "github.com/recell-dev/recell/internal"

// Structural misuse is surfaced by panicking with these values; compare
// with == or errors.Is after recovering.
var (
	// ErrUseAfterDispose: a node was read or written, or a reaction
	// created, after its owner scope was disposed.
	ErrUseAfterDispose = internal.ErrUseAfterDispose

	// ErrDisallowedWrite: a cell was written from inside a reaction body
	// created without AllowWrites.
	ErrDisallowedWrite = internal.ErrDisallowedWrite

	// ErrCircularDependency: a derived computation read itself, directly or
	// transitively.
	ErrCircularDependency = internal.ErrCircularDependency
)
