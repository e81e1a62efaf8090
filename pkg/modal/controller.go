package modal

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Op names a state-changing controller operation.
type Op string

const (
	OpOpen     Op = "open"     // Replace history with a single view and show it
	OpNavigate Op = "navigate" // Push a view
	OpBack     Op = "back"     // Pop a view, or close from the root view
	OpClose    Op = "close"    // Hide and discard history
	OpHide     Op = "hide"     // Hide, keep history
	OpShow     Op = "show"     // Show, keep history
)

// Controller is the observable state behind one modal: whether it is open and
// the history of views shown inside it. Every operation mutates the state,
// derives a snapshot and hands it to all subscribers before returning.
//
// Construct one per application with New and pass it to whatever renders or
// drives the modal. A Controller is safe for concurrent use.
type Controller[C any] struct {
	id     string
	logger *log.Logger
	tracer oteltrace.Tracer

	mu     sync.Mutex // guards isOpen, stack, subs
	isOpen bool
	stack  ViewStack[C]
	subs   registry[C]
}

// New creates a closed controller with an empty history.
func New[C any](opts ...Option) *Controller[C] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller[C]{
		id:     uuid.NewString(),
		logger: o.logger,
		tracer: o.tracer,
	}
}

// ID returns the controller's instance ID, as used in logs and span attributes.
func (c *Controller[C]) ID() string {
	return c.id
}

// Open replaces the whole history with content and shows the modal.
// Any history from a modal that is already open is discarded.
func (c *Controller[C]) Open(content C) {
	c.apply(OpOpen, func() {
		c.stack.Reset()
		c.stack.Push(content)
		c.isOpen = true
	})
}

// Navigate pushes content as the new active view. Visibility is left as is,
// so a stack can be built while the modal is closed or hidden.
func (c *Controller[C]) Navigate(content C) {
	c.apply(OpNavigate, func() {
		c.stack.Push(content)
	})
}

// Back returns to the previous view. From the root view (or an empty
// history) it closes the modal instead.
func (c *Controller[C]) Back() {
	c.apply(OpBack, func() {
		if c.stack.Len() > 1 {
			c.stack.Pop()
			return
		}
		c.closeLocked()
	})
}

// Close hides the modal and discards its history.
func (c *Controller[C]) Close() {
	c.apply(OpClose, c.closeLocked)
}

// Hide dismisses the modal but keeps its history for a later Show.
func (c *Controller[C]) Hide() {
	c.apply(OpHide, func() {
		c.isOpen = false
	})
}

// Show makes the modal visible again without touching its history.
// Showing with an empty history yields an open modal with no active view.
func (c *Controller[C]) Show() {
	c.apply(OpShow, func() {
		c.isOpen = true
	})
}

// Subscribe registers fn for every snapshot published from now on.
// fn is not called with the current state; use State to seed a renderer.
func (c *Controller[C]) Subscribe(fn Subscriber[C]) Unsubscribe {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	reg := c.subs.add(fn)
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.subs.remove(reg)
		c.mu.Unlock()
	}
}

// State returns a snapshot of the current state without notifying anyone.
func (c *Controller[C]) State() State[C] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshot(c.isOpen, &c.stack)
}

// Depth returns the number of views in the history.
func (c *Controller[C]) Depth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stack.Len()
}

// Subscribers returns the number of live registrations.
func (c *Controller[C]) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subs.len()
}

// closeLocked must be called with c.mu held.
func (c *Controller[C]) closeLocked() {
	c.isOpen = false
	c.stack.Reset()
}

// apply runs mutate under the lock, then publishes the resulting snapshot to
// the subscribers registered at that moment. The lock is released before the
// fan-out so subscribers may call back into the controller.
func (c *Controller[C]) apply(op Op, mutate func()) {
	_, span := c.tracer.Start(context.Background(), "modal."+string(op))
	defer span.End()

	c.mu.Lock()
	mutate()
	st := snapshot(c.isOpen, &c.stack)
	depth := c.stack.Len()
	subs := c.subs.list()
	c.mu.Unlock()

	span.SetAttributes(
		attribute.String("dialogo.controller.id", c.id),
		attribute.String("dialogo.op", string(op)),
		attribute.Bool("dialogo.open", st.IsOpen),
		attribute.Int("dialogo.depth", depth),
		attribute.Int("dialogo.active_id", st.ActiveID()),
		attribute.Int("dialogo.subscribers", len(subs)),
	)
	c.logger.Printf("modal[%s]: %s open=%t depth=%d subscribers=%d", c.id, op, st.IsOpen, depth, len(subs))

	c.publish(st, subs)
}

// publish hands st to every registration still live at its turn.
func (c *Controller[C]) publish(st State[C], subs []*registration[C]) {
	for _, reg := range subs {
		if !reg.live.Load() {
			continue
		}
		c.safeCall(reg, st)
	}
}

// safeCall calls the subscriber with panic recovery. One subscriber failing
// shouldn't block the others.
func (c *Controller[C]) safeCall(reg *registration[C], st State[C]) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Printf("modal[%s]: subscriber %d panicked: %v", c.id, reg.id, r)
		}
	}()
	reg.fn(st)
}
