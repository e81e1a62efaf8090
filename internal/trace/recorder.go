package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"dialogo/pkg/modal"
)

// DefaultMaxEvents is the Recorder capacity when none is given.
const DefaultMaxEvents = 100

// Recorder keeps the most recent snapshots published by a controller.
// It is a plain subscriber: attach it with Attach or pass Record to Subscribe.
type Recorder[C any] struct {
	mu        sync.RWMutex
	events    []Event[C] // Oldest first
	maxEvents int
	seq       uint64
	onChange  func()           // Called after every recorded event
	now       func() time.Time // Overridable for tests
}

// NewRecorder creates a recorder holding at most maxEvents events.
func NewRecorder[C any](maxEvents int) *Recorder[C] {
	if maxEvents <= 0 {
		maxEvents = DefaultMaxEvents
	}
	return &Recorder[C]{
		events:    make([]Event[C], 0, maxEvents),
		maxEvents: maxEvents,
		now:       time.Now,
	}
}

// Attach subscribes the recorder to c.
func (r *Recorder[C]) Attach(c *modal.Controller[C]) modal.Unsubscribe {
	return c.Subscribe(r.Record)
}

// Record appends s, evicting the oldest event when full.
func (r *Recorder[C]) Record(s modal.State[C]) {
	r.mu.Lock()
	r.seq++
	r.events = append(r.events, Event[C]{Seq: r.seq, Timestamp: r.now(), State: s})
	if len(r.events) > r.maxEvents {
		// Shift instead of reslicing so the backing array does not grow forever.
		copy(r.events, r.events[1:])
		r.events[len(r.events)-1] = Event[C]{}
		r.events = r.events[:len(r.events)-1]
	}
	onChange := r.onChange
	r.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

// Events returns the recorded events, oldest first.
func (r *Recorder[C]) Events() []Event[C] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event[C], len(r.events))
	copy(out, r.events)
	return out
}

// Last returns the most recent event.
func (r *Recorder[C]) Last() (Event[C], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.events) == 0 {
		return Event[C]{}, false
	}
	return r.events[len(r.events)-1], true
}

// Len returns the number of retained events.
func (r *Recorder[C]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

// Total returns the number of events ever recorded, including evicted ones.
func (r *Recorder[C]) Total() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.seq
}

// SetOnChange sets a callback run after each recorded event (thread-safe).
func (r *Recorder[C]) SetOnChange(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

// WriteJSONLines writes the retained events to w, one JSON object per line.
// With statesOnly, each line is just the snapshot.
func (r *Recorder[C]) WriteJSONLines(w io.Writer, statesOnly bool) error {
	enc := json.NewEncoder(w)
	for _, ev := range r.Events() {
		var v any = ev
		if statesOnly {
			v = ev.State
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode event %d: %w", ev.Seq, err)
		}
	}
	return nil
}
