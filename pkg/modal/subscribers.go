package modal

import "sync/atomic"

// Subscriber receives every snapshot published after it registers.
type Subscriber[C any] func(State[C])

// Unsubscribe removes the registration that returned it.
// Calling it more than once is a no-op.
type Unsubscribe func()

// registration is one Subscribe call. The same func may be registered twice;
// each registration is removed independently.
type registration[C any] struct {
	id   uint64
	fn   Subscriber[C]
	live atomic.Bool // cleared on removal; read during fan-out without the lock
}

// registry holds subscribers in registration order.
// Must be used with the owning controller's mutex held.
type registry[C any] struct {
	nextID uint64
	subs   []*registration[C]
}

func (r *registry[C]) add(fn Subscriber[C]) *registration[C] {
	reg := &registration[C]{id: r.nextID, fn: fn}
	reg.live.Store(true)
	r.nextID++
	r.subs = append(r.subs, reg)
	return reg
}

// remove drops reg. Returns false if reg was already removed.
func (r *registry[C]) remove(reg *registration[C]) bool {
	for i, s := range r.subs {
		if s == reg {
			reg.live.Store(false)
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return true
		}
	}
	return false
}

// list returns a stable copy to iterate over while the lock is released.
func (r *registry[C]) list() []*registration[C] {
	cpy := make([]*registration[C], len(r.subs))
	copy(cpy, r.subs)
	return cpy
}

func (r *registry[C]) len() int {
	return len(r.subs)
}
