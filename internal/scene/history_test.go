package scene

import (
	"testing"

	"jewelry/internal/domain"
)

func sceneOf(ids ...string) Scene {
	s := Scene{}
	for _, id := range ids {
		s = append(s, domain.PlacedItem{ID: id, Width: 40, Height: 40})
	}
	return s
}

func TestHistory_Initial(t *testing.T) {
	h := NewHistory(0)
	if h.Len() != 1 || h.Cursor() != 0 {
		t.Fatalf("expected one snapshot at cursor 0, got len=%d cursor=%d", h.Len(), h.Cursor())
	}
	if len(h.Current()) != 0 {
		t.Error("expected an empty initial scene")
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("expected no undo/redo on a fresh history")
	}
	if h.Undo() || h.Redo() {
		t.Error("expected undo/redo to be no-ops at the bounds")
	}
}

func TestHistory_CommitEnablesUndo(t *testing.T) {
	h := NewHistory(0)
	s, _ := AddItem(h.Current(), ring, 50, 50, domain.Size{Width: 300, Height: 200}, AddOptions{})
	h.Commit(s)
	if !h.CanUndo() {
		t.Error("expected canUndo after a commit")
	}
	if h.CanRedo() {
		t.Error("expected no redo after a commit")
	}
}

func TestHistory_NewCommitDropsRedoBranch(t *testing.T) {
	h := NewHistory(0)
	a, b, c := sceneOf("a"), sceneOf("a", "b"), sceneOf("a", "c")

	h.Commit(a)
	h.Commit(b)
	h.Undo()
	h.Commit(c)

	if h.Redo() {
		t.Error("expected redo to be a no-op after a new commit")
	}
	if !h.Current().Equal(c) {
		t.Errorf("expected current scene C, got %+v", h.Current())
	}
}

func TestHistory_UndoRedoRoundTrip(t *testing.T) {
	h := NewHistory(0)
	a := sceneOf("a")
	h.Commit(a)
	h.Undo()
	if len(h.Current()) != 0 {
		t.Fatal("expected empty scene after undo")
	}
	h.Redo()
	if !h.Current().Equal(a) {
		t.Errorf("expected A after redo, got %+v", h.Current())
	}
}

func TestHistory_ThreeCommitsTwoUndosOneCommit(t *testing.T) {
	h := NewHistory(0)
	h.Commit(sceneOf("a"))
	h.Commit(sceneOf("a", "b"))
	h.Commit(sceneOf("a", "b", "c"))
	h.Undo()
	h.Undo()
	if !h.CanRedo() {
		t.Fatal("expected redo to be available after undos")
	}
	h.Commit(sceneOf("a", "d"))
	if h.CanRedo() {
		t.Error("expected canRedo false after a new commit")
	}
	if h.Len() != 3 {
		t.Errorf("expected 3 snapshots, got %d", h.Len())
	}
}

func TestHistory_SnapshotsAreIsolated(t *testing.T) {
	h := NewHistory(0)
	s := sceneOf("a")
	h.Commit(s)
	s[0].X = 99

	cur := h.Current()
	if cur[0].X != 0 {
		t.Error("committed snapshot changed when the caller mutated its scene")
	}
	cur[0].X = 42
	if h.Current()[0].X != 0 {
		t.Error("Current returned a shared snapshot")
	}
}

func TestHistory_MaxSnapshots(t *testing.T) {
	h := NewHistory(3)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		h.Commit(sceneOf(id))
	}
	if h.Len() != 3 {
		t.Fatalf("expected 3 snapshots, got %d", h.Len())
	}
	if h.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", h.Cursor())
	}
	h.Undo()
	h.Undo()
	if h.CanUndo() {
		t.Error("expected oldest snapshots to be pruned")
	}
	if !h.Current().Equal(sceneOf("c")) {
		t.Errorf("expected oldest kept scene to be C, got %+v", h.Current())
	}
}

func TestHistory_Reset(t *testing.T) {
	h := NewHistory(0)
	h.Commit(sceneOf("a"))
	h.Commit(sceneOf("b"))
	h.Reset()
	if h.Len() != 1 || h.CanUndo() || len(h.Current()) != 0 {
		t.Error("expected a fresh history after reset")
	}
}
