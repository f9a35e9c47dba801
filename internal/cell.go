package internal

// Cell is a writable reactive value. Cells are graph leaves: they have no
// dependencies and recompute nothing, they only hold a value and notify the
// subscribers that read it.
type Cell struct {
	nodeBase

	value any
	equal func(a, b any) bool
}

func (r *Runtime) NewCell(initial any, equal func(a, b any) bool) *Cell {
	if equal == nil {
		equal = defaultEqual
	}

	return &Cell{
		nodeBase: r.newNodeBase(),
		value:    initial,
		equal:    equal,
	}
}

// Read returns the current value, registering the cell as a dependency of
// the evaluation in progress, if any.
func (c *Cell) Read() any {
	c.checkAlive()

	GetRuntime().tracker.record(c)

	return c.value
}

// Peek returns the current value without registering a dependency.
func (c *Cell) Peek() any {
	c.checkAlive()

	return c.value
}

// Write assigns a new value. If the configured equality considers it equal
// to the current one this is a complete no-op: no version bump, no
// notification. Otherwise subscribers are marked stale and a flush is
// scheduled.
func (c *Cell) Write(v any) {
	c.checkAlive()

	r := GetRuntime()
	if r.tracker.inReactionBody() && !r.tracker.writesAllowed() {
		panic(ErrDisallowedWrite)
	}

	if c.equal(c.value, v) {
		return
	}

	c.value = v
	c.vers++

	c.notify(r)
	r.Schedule()
}

// Update writes the result of fn applied to the current value. The read of
// the current value is untracked, so an update inside an evaluation does not
// make the cell its own dependency.
func (c *Cell) Update(fn func(any) any) {
	c.Write(fn(c.Peek()))
}

// Cells hold no computation, there is nothing to settle.
func (c *Cell) refresh(*Runtime) {}
