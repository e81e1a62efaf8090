package modal

// ViewEntry is one step in a modal's navigation history.
type ViewEntry[C any] struct {
	// ID is the entry's insertion index within the current stack.
	ID      int `json:"id"`
	Content C   `json:"content"`
}

// ViewStack manages the history of views shown inside a modal (push/pop at the tail).
// IDs are assigned from the stack length at push time, so they start at 0 and
// increase by one for as long as the stack is not reset.
type ViewStack[C any] struct {
	entries []ViewEntry[C]
}

// Push adds content to the top of the stack and returns the new entry.
func (s *ViewStack[C]) Push(content C) ViewEntry[C] {
	e := ViewEntry[C]{ID: len(s.entries), Content: content}
	s.entries = append(s.entries, e)
	return e
}

// Pop removes and returns the top entry.
// Returns false if the stack is empty.
func (s *ViewStack[C]) Pop() (ViewEntry[C], bool) {
	if len(s.entries) == 0 {
		return ViewEntry[C]{}, false
	}
	top := s.entries[len(s.entries)-1]
	// Zero the vacated slot so popped content can be collected.
	s.entries[len(s.entries)-1] = ViewEntry[C]{}
	s.entries = s.entries[:len(s.entries)-1]
	return top, true
}

// Peek returns the top entry without removing it.
func (s *ViewStack[C]) Peek() (ViewEntry[C], bool) {
	if len(s.entries) == 0 {
		return ViewEntry[C]{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Len returns the number of entries in the stack.
func (s *ViewStack[C]) Len() int {
	return len(s.entries)
}

// Reset drops every entry. The next Push gets ID 0.
func (s *ViewStack[C]) Reset() {
	s.entries = nil
}

// Entries returns the full stack, bottom first (shallow copy).
func (s *ViewStack[C]) Entries() []ViewEntry[C] {
	cpy := make([]ViewEntry[C], len(s.entries))
	copy(cpy, s.entries)
	return cpy
}
