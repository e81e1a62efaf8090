// Package modal provides the state engine behind a modal dialog: whether it is
// open, the stack of views shown inside it, and a subscription channel that
// pushes a snapshot to every observer after each change.
//
// The engine never looks at view content. C is whatever a renderer knows how
// to paint: a tea model, a markup string, a structured description.
//
// # Quick Start
//
//	m := modal.New[string]()
//	stop := m.Subscribe(func(s modal.State[string]) {
//	    render(s) // paint s.ActiveView.Content when s.IsOpen
//	})
//	defer stop()
//
//	m.Open("step one")      // {open, #0 "step one", no history}
//	m.Navigate("step two")  // {open, #1 "step two", history}
//	m.Back()                // {open, #0 "step one", no history}
//	m.Back()                // {closed, no view, no history}
//
// # Operations
//
//   - Open(c) - replace the history with c and show the modal
//   - Navigate(c) - push c, visibility unchanged
//   - Back() - pop one view; from the root view, same as Close
//   - Close() - hide and discard history
//   - Hide() / Show() - toggle visibility, history kept
//   - Subscribe(fn) - register fn; the returned func unregisters it
//
// Subscribe does not replay the current state. Renderers seed themselves from
// State before subscribing.
//
// # Notification
//
// Subscribers run synchronously, in registration order, before the operation
// returns. All of them receive the same snapshot value. The subscriber list is
// copied before the fan-out: a callback registered during a fan-out first sees
// the next snapshot, and one removed during a fan-out is skipped if its turn
// has not come yet. Callbacks may call back into the controller.
package modal
