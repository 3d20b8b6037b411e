package ui

import (
	"testing"

	"github.com/piwi3910/ChipPlace/internal/model"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()

	// Push initial state (before adding a module)
	snap0 := MakeSnapshot(nil, nil, "initial")
	h.Push(snap0)

	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}

	// Current state has one module
	currentModules := []model.Module{{ID: "m1", Label: "CPU", Width: 4, Height: 3}}
	current := MakeSnapshot(currentModules, nil, "current")

	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if len(restored.Modules) != 0 {
		t.Errorf("expected 0 modules after undo, got %d", len(restored.Modules))
	}
	if restored.Label != "initial" {
		t.Errorf("expected label 'initial', got %q", restored.Label)
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()

	// State 0: empty
	h.Push(MakeSnapshot(nil, nil, "empty"))

	// State 1: one module
	modules1 := []model.Module{{ID: "m1", Label: "CPU", Width: 4, Height: 3}}
	h.Push(MakeSnapshot(modules1, nil, "one module"))

	// Current state: two modules
	modules2 := []model.Module{
		{ID: "m1", Label: "CPU", Width: 4, Height: 3},
		{ID: "m2", Label: "RAM", Width: 3, Height: 3},
	}
	current := MakeSnapshot(modules2, nil, "two modules")

	// Undo to one module
	restored, ok := h.Undo(current)
	if !ok {
		t.Fatal("first undo should succeed")
	}
	if len(restored.Modules) != 1 {
		t.Errorf("expected 1 module, got %d", len(restored.Modules))
	}

	// Redo back to two modules
	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if len(redone.Modules) != 2 {
		t.Errorf("expected 2 modules after redo, got %d", len(redone.Modules))
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()

	h.Push(MakeSnapshot(nil, nil, "empty"))

	modules1 := []model.Module{{ID: "m1", Label: "CPU", Width: 4, Height: 3}}
	current := MakeSnapshot(modules1, nil, "one module")

	// Undo
	_, ok := h.Undo(current)
	if !ok {
		t.Fatal("undo should succeed")
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	// Push new state - should clear redo
	h.Push(MakeSnapshot(nil, nil, "new action"))
	if h.CanRedo() {
		t.Error("redo stack should be cleared after push")
	}
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}

	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(nil, nil, ""))
	}

	if len(h.undoStack) != 3 {
		t.Errorf("expected undo stack length 3, got %d", len(h.undoStack))
	}
}

func TestUndoEmpty(t *testing.T) {
	h := NewHistory()
	current := MakeSnapshot(nil, nil, "current")
	_, ok := h.Undo(current)
	if ok {
		t.Error("undo on empty history should return false")
	}
}

func TestRedoEmpty(t *testing.T) {
	h := NewHistory()
	current := MakeSnapshot(nil, nil, "current")
	_, ok := h.Redo(current)
	if ok {
		t.Error("redo on empty history should return false")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, nil, "a"))
	h.Push(MakeSnapshot(nil, nil, "b"))

	// Create a redo entry
	current := MakeSnapshot(nil, nil, "current")
	h.Undo(current)

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("after clear, should not be able to undo or redo")
	}
}

func TestDeepCopyModules(t *testing.T) {
	original := []model.Module{{ID: "m1", Label: "CPU", Width: 4, Height: 3}}
	snap := MakeSnapshot(original, nil, "test")

	// Mutate original
	original[0].Label = "Modified"

	if snap.Modules[0].Label != "CPU" {
		t.Error("snapshot should be independent of original slice")
	}
}

func TestDeepCopyNets(t *testing.T) {
	original := []model.Net{
		{ID: "n1", Label: "clk", Modules: []string{"m1", "m2"}},
	}
	snap := MakeSnapshot(nil, original, "test")

	// Mutate original
	original[0].Label = "Modified"
	original[0].Modules[0] = "zzz"

	if snap.Nets[0].Label != "clk" {
		t.Error("snapshot nets should be independent of original")
	}
	if snap.Nets[0].Modules[0] != "m1" {
		t.Error("snapshot net members should be independent of original")
	}
}

func TestCopyNilSlices(t *testing.T) {
	snap := MakeSnapshot(nil, nil, "nil test")
	if snap.Modules != nil {
		t.Error("nil modules should stay nil")
	}
	if snap.Nets != nil {
		t.Error("nil nets should stay nil")
	}
}

func TestMultipleUndoRedo(t *testing.T) {
	h := NewHistory()

	// Build up 3 states: empty -> 1 module -> 2 modules -> 3 modules
	h.Push(MakeSnapshot(nil, nil, "empty"))
	h.Push(MakeSnapshot(
		[]model.Module{{ID: "m1", Label: "A", Width: 1, Height: 1}},
		nil, "1 module",
	))
	h.Push(MakeSnapshot(
		[]model.Module{
			{ID: "m1", Label: "A", Width: 1, Height: 1},
			{ID: "m2", Label: "B", Width: 2, Height: 2},
		},
		nil, "2 modules",
	))

	current := MakeSnapshot(
		[]model.Module{
			{ID: "m1", Label: "A", Width: 1, Height: 1},
			{ID: "m2", Label: "B", Width: 2, Height: 2},
			{ID: "m3", Label: "C", Width: 3, Height: 3},
		},
		nil, "3 modules",
	)

	// Undo 3 times to get back to empty
	s, ok := h.Undo(current)
	if !ok || len(s.Modules) != 2 {
		t.Fatalf("first undo: expected 2 modules, got %d", len(s.Modules))
	}

	s, ok = h.Undo(s)
	if !ok || len(s.Modules) != 1 {
		t.Fatalf("second undo: expected 1 module, got %d", len(s.Modules))
	}

	s, ok = h.Undo(s)
	if !ok || len(s.Modules) != 0 {
		t.Fatalf("third undo: expected 0 modules, got %d", len(s.Modules))
	}

	// No more undos
	if h.CanUndo() {
		t.Error("should not be able to undo further")
	}

	// Redo all the way forward
	s, ok = h.Redo(s)
	if !ok || len(s.Modules) != 1 {
		t.Fatalf("first redo: expected 1 module, got %d", len(s.Modules))
	}

	s, ok = h.Redo(s)
	if !ok || len(s.Modules) != 2 {
		t.Fatalf("second redo: expected 2 modules, got %d", len(s.Modules))
	}

	s, ok = h.Redo(s)
	if !ok || len(s.Modules) != 3 {
		t.Fatalf("third redo: expected 3 modules, got %d", len(s.Modules))
	}

	if h.CanRedo() {
		t.Error("should not be able to redo further")
	}
}
