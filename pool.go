package vlist

import "fmt"

// Pool keeps hidden handles per recycling class for reuse. It owns every
// handle it holds; Destroy and reuse via Acquire are the only ways out.
type Pool struct {
	free   map[RecyclingClass][]Handle
	pooled map[Handle]RecyclingClass
	limit  int

	created   map[RecyclingClass]int
	destroyed map[RecyclingClass]int
}

// PoolStats is a snapshot of handle accounting for one recycling class.
type PoolStats struct {
	Created   int
	Destroyed int
	Pooled    int
}

// Live returns handles that exist and have not been destroyed.
func (s PoolStats) Live() int { return s.Created - s.Destroyed }

// NewPool creates an empty pool with no per-class limit.
func NewPool() *Pool {
	return &Pool{
		free:      make(map[RecyclingClass][]Handle),
		pooled:    make(map[Handle]RecyclingClass),
		created:   make(map[RecyclingClass]int),
		destroyed: make(map[RecyclingClass]int),
	}
}

// Limit caps how many hidden handles a class may hold. Releases beyond the
// cap destroy the handle instead. Zero means unlimited.
func (p *Pool) Limit(n int) *Pool {
	p.limit = max(n, 0)
	return p
}

// Acquire pops a pooled handle of the given class.
func (p *Pool) Acquire(class RecyclingClass) (Handle, bool) {
	free := p.free[class]
	if len(free) == 0 {
		return nil, false
	}
	h := free[len(free)-1]
	free[len(free)-1] = nil
	p.free[class] = free[:len(free)-1]
	delete(p.pooled, h)
	return h, true
}

// Release hides h and makes it available to Acquire. It reports whether h
// was pooled; a release beyond the class limit destroys h instead.
// Releasing a handle that is already pooled is a programming error and
// panics.
func (p *Pool) Release(class RecyclingClass, h Handle) bool {
	if h == nil {
		return false
	}
	if _, ok := p.pooled[h]; ok {
		panic(fmt.Sprintf("vlist: handle %p released twice", h))
	}
	h.Hide()
	if p.limit > 0 && len(p.free[class]) >= p.limit {
		p.Destroy(class, h)
		return false
	}
	p.free[class] = append(p.free[class], h)
	p.pooled[h] = class
	return true
}

// Destroy tears h down. Pooled handles must be acquired first.
func (p *Pool) Destroy(class RecyclingClass, h Handle) {
	if h == nil {
		return
	}
	if _, ok := p.pooled[h]; ok {
		panic(fmt.Sprintf("vlist: destroying pooled handle %p", h))
	}
	h.Destroy()
	p.destroyed[class]++
}

// Track records a freshly created handle for accounting.
func (p *Pool) Track(class RecyclingClass) {
	p.created[class]++
}

// Pooled reports how many hidden handles the class holds.
func (p *Pool) Pooled(class RecyclingClass) int {
	return len(p.free[class])
}

// Stats returns accounting for one class.
func (p *Pool) Stats(class RecyclingClass) PoolStats {
	return PoolStats{
		Created:   p.created[class],
		Destroyed: p.destroyed[class],
		Pooled:    len(p.free[class]),
	}
}

// Drain destroys every pooled handle.
func (p *Pool) Drain() {
	for class, free := range p.free {
		for i, h := range free {
			delete(p.pooled, h)
			h.Destroy()
			p.destroyed[class]++
			free[i] = nil
		}
		delete(p.free, class)
	}
}
