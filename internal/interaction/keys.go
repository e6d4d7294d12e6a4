package interaction

import (
	"strings"

	"jewelry/internal/scene"
)

// Intent is a decoded editing command from the keyboard or a toolbar button.
type Intent string

const (
	IntentUndo      Intent = "undo"
	IntentRedo      Intent = "redo"
	IntentRemove    Intent = "remove"
	IntentDeselect  Intent = "deselect"
	IntentRotateCW  Intent = "rotate-cw"
	IntentRotateCCW Intent = "rotate-ccw"
	IntentGrow      Intent = "grow"
	IntentShrink    Intent = "shrink"
)

// ParseKey decodes a KeyboardEvent (key plus modifier flags) into an intent.
// Arrow keys are unbound.
func ParseKey(key string, ctrl, meta, shift bool) (Intent, bool) {
	mod := ctrl || meta
	switch {
	case mod && strings.EqualFold(key, "z") && shift:
		return IntentRedo, true
	case mod && strings.EqualFold(key, "z"):
		return IntentUndo, true
	case mod && strings.EqualFold(key, "y"):
		return IntentRedo, true
	case !mod && (key == "Delete" || key == "Backspace"):
		return IntentRemove, true
	case key == "Escape":
		return IntentDeselect, true
	}
	return "", false
}

// Apply runs an intent against the current selection and history. It
// reports whether the scene changed.
func (c *Controller) Apply(intent Intent) bool {
	switch intent {
	case IntentUndo:
		moved := c.store.Undo()
		c.SyncSelection()
		return moved
	case IntentRedo:
		moved := c.store.Redo()
		c.SyncSelection()
		return moved
	case IntentDeselect:
		c.setSelection("")
		return false
	}

	id := c.selection
	if id == "" {
		return false
	}
	cur := c.store.Current()
	if !cur.Contains(id) {
		c.setSelection("")
		return false
	}

	var next scene.Scene
	switch intent {
	case IntentRemove:
		next, _ = scene.RemoveItem(cur, id)
		c.setSelection("")
	case IntentRotateCW:
		next = scene.RotateItem(cur, id, 1)
	case IntentRotateCCW:
		next = scene.RotateItem(cur, id, -1)
	case IntentGrow:
		next = scene.ResizeItem(cur, id, scene.ResizeStep)
	case IntentShrink:
		next = scene.ResizeItem(cur, id, -scene.ResizeStep)
	default:
		return false
	}
	if next.Equal(cur) {
		return false
	}
	c.store.Commit(next)
	return true
}
