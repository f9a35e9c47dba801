package internal

import "sync/atomic"

// nodeState describes how up to date a subscriber's view of the graph is.
//
// stateClean: the cached value reflects every current dependency.
// stateCheck: a transitive dependency changed; the cached value may or may
// not be stale, polling dependency versions decides.
// stateDirty: the value must be recomputed on the next read.
type nodeState uint8

const (
	stateClean nodeState = iota
	stateCheck
	stateDirty
)

var idCounter atomic.Uint64

func nextID() uint64 {
	return idCounter.Add(1)
}

// subscriber is a node that reads other nodes: a Derived or a Reaction.
type subscriber interface {
	id() uint64

	// markStale tells the subscriber that one of its dependencies changed,
	// possibly transitively. It must be cheap: derived nodes only flip their
	// state, reactions only enqueue themselves.
	markStale(r *Runtime)
}

// source is a node that can be read and depended upon: a Cell or a Derived.
type source interface {
	id() uint64
	version() uint64

	// refresh settles a possibly stale source. No-op for cells.
	refresh(r *Runtime)

	addSubscriber(sub subscriber)
	removeSubscriber(sub subscriber)
}

// dependency is one edge of the graph as seen from the subscriber side: the
// source that was read and the source's version at read time. Comparing the
// recorded version against the current one detects actual changes.
type dependency struct {
	src  source
	seen uint64
}

// mergeDeps appends the edges of prev not already present in deps, by
// source ID. Used when an evaluation panics: the partial frame keeps the
// sources it read, prev fills in the rest so a change to any of them still
// reaches the subscriber.
func mergeDeps(deps, prev []dependency) []dependency {
	for _, p := range prev {
		dup := false
		for _, dep := range deps {
			if dep.src.id() == p.src.id() {
				dup = true
				break
			}
		}

		if !dup {
			deps = append(deps, p)
		}
	}

	return deps
}

// nodeBase carries the identity, version counter and subscriber set shared
// by cells and derived nodes.
type nodeBase struct {
	nid   uint64
	vers  uint64
	subs  []subscriber
	scope *Scope
}

func (r *Runtime) newNodeBase() nodeBase {
	return nodeBase{
		nid:   nextID(),
		scope: r.tracker.currentScope(),
	}
}

func (n *nodeBase) id() uint64 {
	return n.nid
}

func (n *nodeBase) version() uint64 {
	return n.vers
}

func (n *nodeBase) addSubscriber(sub subscriber) {
	sid := sub.id()
	for _, existing := range n.subs {
		if existing.id() == sid {
			return
		}
	}

	n.subs = append(n.subs, sub)
}

func (n *nodeBase) removeSubscriber(sub subscriber) {
	sid := sub.id()
	for i, existing := range n.subs {
		if existing.id() == sid {
			last := len(n.subs) - 1
			n.subs[i] = n.subs[last]
			n.subs[last] = nil
			n.subs = n.subs[:last]
			return
		}
	}
}

// notify marks every current subscriber stale. Called after this node's
// value actually changed. The slice is cloned since marking a derived
// subscriber cascades and may relink the graph mid-iteration.
func (n *nodeBase) notify(r *Runtime) {
	subs := make([]subscriber, len(n.subs))
	copy(subs, n.subs)

	for _, sub := range subs {
		sub.markStale(r)
	}
}

func (n *nodeBase) checkAlive() {
	if n.scope != nil && n.scope.disposed {
		panic(ErrUseAfterDispose)
	}
}
