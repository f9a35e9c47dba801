package internal

import "errors"

var (
	// ErrUseAfterDispose is raised when a node is read or written, or a
	// reaction is created, after its owner scope was disposed.
	ErrUseAfterDispose = errors.New("recell: use of node owned by a disposed scope")

	// ErrDisallowedWrite is raised when a cell is written from inside a
	// reaction body that was not created with AllowWrites.
	ErrDisallowedWrite = errors.New("recell: cell write inside a reaction body")

	// ErrCircularDependency is raised when a derived node reads itself,
	// directly or through other nodes, during its own computation.
	ErrCircularDependency = errors.New("recell: circular dependency between derived nodes")
)
