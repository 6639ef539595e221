package presenter

import (
	"testing"
)

func TestUndoStackLIFO(t *testing.T) {
	s := NewUndoStack()
	var order []string

	s.Push("first", func() { order = append(order, "first") })
	s.Push("second", func() { order = append(order, "second") })
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	label, ok := s.Undo()
	if !ok || label != "second" {
		t.Fatalf("Undo = %q, %v; want second", label, ok)
	}
	label, ok = s.Undo()
	if !ok || label != "first" {
		t.Fatalf("Undo = %q, %v; want first", label, ok)
	}
	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("invocation order = %v, want [second first]", order)
	}

	if _, ok := s.Undo(); ok {
		t.Error("Undo on an empty stack should report ok=false")
	}
}

func TestUndoStackPeekAndClear(t *testing.T) {
	s := NewUndoStack()
	if _, ok := s.PeekLabel(); ok {
		t.Error("PeekLabel on an empty stack should report ok=false")
	}

	s.Push("edit", func() {})
	if label, ok := s.PeekLabel(); !ok || label != "edit" {
		t.Errorf("PeekLabel = %q, %v; want edit", label, ok)
	}
	if s.Len() != 1 {
		t.Error("PeekLabel must not consume the entry")
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", s.Len())
	}
}

func TestUndoStackReentrantPush(t *testing.T) {
	s := NewUndoStack()
	s.Push("toggle", func() {
		// Inverses re-enter the operation path and push their own inverse.
		s.Push("toggle", func() {})
	})

	if _, ok := s.Undo(); !ok {
		t.Fatal("expected an entry")
	}
	if s.Len() != 1 {
		t.Errorf("Len after re-entrant push = %d, want 1", s.Len())
	}
}
