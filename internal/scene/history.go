package scene

// History is a linear undo/redo stack of full scene snapshots.
// snapshots[cursor] is always the displayed scene. Committing after an
// undo discards the redo branch.
type History struct {
	snapshots []Scene
	cursor    int
	max       int // 0 = unlimited
}

// NewHistory returns a history holding one empty scene. maxSnapshots caps
// the stack; the oldest snapshots are dropped first. Zero means no cap.
func NewHistory(maxSnapshots int) *History {
	h := &History{max: maxSnapshots}
	h.Reset()
	return h
}

// Reset discards all history and starts again from an empty scene.
// Used on retake; it is not itself undoable.
func (h *History) Reset() {
	h.snapshots = []Scene{{}}
	h.cursor = 0
}

// Commit truncates everything after the cursor and appends next.
func (h *History) Commit(next Scene) {
	h.snapshots = append(h.snapshots[:h.cursor+1], next.Clone())
	h.cursor = len(h.snapshots) - 1

	if h.max > 0 && len(h.snapshots) > h.max {
		drop := len(h.snapshots) - h.max
		h.snapshots = append([]Scene(nil), h.snapshots[drop:]...)
		h.cursor -= drop
	}
}

// Undo steps back one snapshot. It reports whether the cursor moved.
func (h *History) Undo() bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	return true
}

// Redo steps forward one snapshot. It reports whether the cursor moved.
func (h *History) Redo() bool {
	if h.cursor == len(h.snapshots)-1 {
		return false
	}
	h.cursor++
	return true
}

func (h *History) CanUndo() bool { return h.cursor > 0 }
func (h *History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

// Current returns a copy of the displayed scene.
func (h *History) Current() Scene {
	return h.snapshots[h.cursor].Clone()
}

func (h *History) Len() int { return len(h.snapshots) }
func (h *History) Cursor() int { return h.cursor }
