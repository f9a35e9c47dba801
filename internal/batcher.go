package internal

type Batcher struct {
	// each nested batch increases the depth by 1
	// while depth > 0, flushes are deferred to the outermost batch's end
	depth int
}

func NewBatcher() *Batcher {
	return &Batcher{}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

func (b *Batcher) Batch(fn, onComplete func()) {
	b.depth++
	defer func() {
		b.depth--
		if b.depth == 0 && onComplete != nil {
			onComplete()
		}
	}()

	fn()
}

// Batch runs fn deferring all flushes until it returns, then flushes once.
func (r *Runtime) Batch(fn func()) {
	r.batcher.Batch(fn, r.Flush)
}
