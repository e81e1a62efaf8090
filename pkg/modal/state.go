package modal

// State is the snapshot handed to subscribers after every operation.
// Snapshots are shared between all subscribers of one notification and must
// be treated as read-only.
type State[C any] struct {
	IsOpen bool `json:"isOpen"`
	// ActiveView is the top of the view stack, nil when the stack is empty.
	// It may be non-nil while IsOpen is false (the modal was hidden, not closed).
	ActiveView *ViewEntry[C] `json:"activeView"`
	// HasHistory reports whether Back would navigate instead of closing.
	HasHistory bool `json:"hasHistory"`
}

// Active returns the active view and whether there is one.
func (s State[C]) Active() (ViewEntry[C], bool) {
	if s.ActiveView == nil {
		return ViewEntry[C]{}, false
	}
	return *s.ActiveView, true
}

// ActiveID returns the active view's ID, or -1 when there is none.
func (s State[C]) ActiveID() int {
	if s.ActiveView == nil {
		return -1
	}
	return s.ActiveView.ID
}

// snapshot derives the observable state from the controller's internals.
// The active entry is copied so a snapshot never aliases the live stack.
func snapshot[C any](isOpen bool, stack *ViewStack[C]) State[C] {
	st := State[C]{
		IsOpen:     isOpen,
		HasHistory: stack.Len() > 1,
	}
	if top, ok := stack.Peek(); ok {
		st.ActiveView = &top
	}
	return st
}
