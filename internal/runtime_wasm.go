//go:build wasm

package internal

import "sync"

// Wasm is single-threaded: one global runtime serves the whole program.

var once sync.Once
var globalRuntime *Runtime

func GetRuntime() *Runtime {
	once.Do(func() {
		globalRuntime = NewRuntime()
	})

	return globalRuntime
}
