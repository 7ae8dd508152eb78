package vlist

import (
	"io"
	"log/slog"
)

// binding is an identity cache entry: the handle currently realized for an
// identity, the class it was created under and the item it was last bound to.
type binding struct {
	handle Handle
	class  RecyclingClass
	item   Item
}

// ReconcileStats counts what one Reconcile pass did.
type ReconcileStats struct {
	Refreshed int // identity hits refreshed in place
	Kept      int // identity hits placed without refresh
	Reused    int // misses served from the pool
	Created   int // misses served by CreateHandle
	Recycled  int // evictions returned to the pool
	Destroyed int // evictions destroyed
}

// Realizer maps identities to realized handles and keeps that mapping in
// step with the visible window. Hits are refreshed in place; misses fall
// back to the pool and then to fresh creation.
type Realizer struct {
	pool   *Pool
	active map[Identity]*binding
	seen   map[Identity]int // scratch: identity -> entry index in window
	log    *slog.Logger
}

// NewRealizer creates a realizer drawing handles from pool.
func NewRealizer(pool *Pool, logger *slog.Logger) *Realizer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Realizer{
		pool:   pool,
		active: make(map[Identity]*binding),
		seen:   make(map[Identity]int),
		log:    logger,
	}
}

// Len returns the number of active handles.
func (r *Realizer) Len() int { return len(r.active) }

// Handle returns the active handle for id.
func (r *Realizer) Handle(id Identity) (Handle, bool) {
	b, ok := r.active[id]
	if !ok {
		return nil, false
	}
	return b.handle, true
}

// Reconcile realizes the entries in win and evicts every identity that is
// no longer inside it. refresh forces identity hits to rebind their handle,
// which callers request after a model rebuild or relayout.
func (r *Realizer) Reconcile(entries []LayoutEntry, win Range, refresh bool) ReconcileStats {
	var st ReconcileStats

	clear(r.seen)
	for i := win.Start; i < win.End() && i < len(entries); i++ {
		it := entries[i].Item
		if it == nil {
			continue
		}
		id := it.ID()
		if prev, dup := r.seen[id]; dup {
			r.log.Debug("duplicate identity in window", "id", id, "first", prev, "second", i)
		}
		r.seen[id] = i
	}

	for id, b := range r.active {
		idx, ok := r.seen[id]
		if ok && entries[idx].Item.Class() == b.class {
			continue
		}
		if r.evict(id, b) {
			st.Recycled++
		} else {
			st.Destroyed++
		}
	}

	for i := win.Start; i < win.End() && i < len(entries); i++ {
		e := &entries[i]
		if e.Item == nil {
			continue
		}
		id := e.Item.ID()
		if r.seen[id] != i {
			continue // an earlier duplicate; the last one wins
		}

		if b, ok := r.active[id]; ok {
			if refresh {
				e.Item.Refresh(b.handle)
				st.Refreshed++
			} else {
				st.Kept++
			}
			b.item = e.Item
			b.handle.Place(e.Rect)
			continue
		}

		class := e.Item.Class()
		h, ok := r.pool.Acquire(class)
		if ok {
			e.Item.Refresh(h)
			st.Reused++
		} else {
			h = e.Item.CreateHandle()
			if h == nil {
				continue
			}
			r.pool.Track(class)
			st.Created++
		}
		r.active[id] = &binding{handle: h, class: class, item: e.Item}
		if a, ok := e.Item.(Attacher); ok {
			a.Attached(h)
		}
		h.Place(e.Rect)
	}
	return st
}

// Clear evicts every active handle.
func (r *Realizer) Clear() {
	for id, b := range r.active {
		r.evict(id, b)
	}
}

// evict detaches b and routes its handle to the pool or destruction.
// It reports whether the handle was pooled.
func (r *Realizer) evict(id Identity, b *binding) bool {
	delete(r.active, id)
	if d, ok := b.item.(Detacher); ok {
		d.Detached(b.handle)
	}
	if rec, ok := b.item.(Recycler); ok {
		rec.Recycle(b.handle)
		return r.pool.Release(b.class, b.handle)
	}
	r.pool.Destroy(b.class, b.handle)
	return false
}
