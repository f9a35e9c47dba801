//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// One runtime per goroutine: each goroutine gets its own propagation thread
// of control, which is the serialization model the engine assumes.
var runtimes sync.Map

func GetRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}
