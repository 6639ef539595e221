package presenter

import (
	"sync"
)

// undoEntry pairs an operation label with the closure that reverses it.
type undoEntry struct {
	label string
	apply func()
}

// UndoStack is a LIFO of inverse operations. The presenter that performs an
// undoable mutation pushes a closure that reverses it; Undo pops the newest
// entry and invokes it. Because inverses re-enter the presenter's own
// operation path, replaying an inverse pushes its own inverse, so undoing
// an undo redoes it.
//
// The stack is owned by the caller and handed to a presenter at
// construction; presenters never reach into a global undo service.
type UndoStack struct {
	mu      sync.Mutex
	entries []undoEntry
}

// NewUndoStack creates an empty undo stack.
func NewUndoStack() *UndoStack {
	return &UndoStack{}
}

// Push records an inverse operation under the given label.
func (s *UndoStack) Push(label string, apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, undoEntry{label: label, apply: apply})
}

// Undo pops and invokes the newest inverse, returning its label. Returns
// ok=false if the stack is empty. The inverse runs outside the stack's
// lock so it may push re-entrantly.
func (s *UndoStack) Undo() (string, bool) {
	s.mu.Lock()
	n := len(s.entries)
	if n == 0 {
		s.mu.Unlock()
		return "", false
	}
	entry := s.entries[n-1]
	s.entries = s.entries[:n-1]
	s.mu.Unlock()

	entry.apply()
	return entry.label, true
}

// Clear drops every pending inverse. Called on full-refresh paths where
// piecemeal undo of a replaced list would desync presenter and delegate.
func (s *UndoStack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// Len returns the number of pending inverses.
func (s *UndoStack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// PeekLabel returns the label of the newest inverse without consuming it.
func (s *UndoStack) PeekLabel() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return "", false
	}
	return s.entries[len(s.entries)-1].label, true
}
