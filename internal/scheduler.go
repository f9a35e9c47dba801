package internal

// Scheduler holds the reaction queue of one runtime plus the callbacks
// waiting for the graph to settle. Queue order is creation/notification
// order; reactions pull their derived dependencies up to date themselves,
// so no topological ordering of the queue is needed for consistency.
type Scheduler struct {
	queue []*Reaction

	// flushing marks an active drain. Writes occurring mid-flush enqueue
	// into the same drain instead of starting a nested one.
	flushing bool

	settled []func()
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) enqueue(rx *Reaction) {
	s.queue = append(s.queue, rx)
}

func (s *Scheduler) dequeue() (*Reaction, bool) {
	if len(s.queue) == 0 {
		return nil, false
	}

	rx := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]

	return rx, true
}

func (s *Scheduler) onSettled(fn func()) {
	s.settled = append(s.settled, fn)
}

func (s *Scheduler) takeSettled() []func() {
	fns := s.settled
	s.settled = nil
	return fns
}
