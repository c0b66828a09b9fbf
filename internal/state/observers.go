package state

import (
	"slices"
	"sync"
)

// Observers is a subscriber list. Stores call Notify after each mutation,
// outside their own lock. The zero value is ready to use.
type Observers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

// Add registers fn and returns a func that removes it.
func (o *Observers) Add(fn func()) (cancel func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.fns == nil {
		o.fns = make(map[int]func())
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.fns, id)
	}
}

// Notify runs every registered func in registration order.
func (o *Observers) Notify() {
	o.mu.Lock()
	ids := make([]int, 0, len(o.fns))
	for id := range o.fns {
		ids = append(ids, id)
	}
	fns := make([]func(), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, o.fns[id])
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
