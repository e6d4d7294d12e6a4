package app

import (
	"errors"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"jewelry/internal/interaction"
)

// ============================================================
// Drag and drop
// ============================================================

// DragStart opens a drag for a catalog item id or a placed item id.
// A second drag while one is active is refused.
func (a *App) DragStart(id string) error {
	err := a.editor.DragStart(id)
	if errors.Is(err, interaction.ErrUnknownDragSource) {
		wailsRuntime.LogWarningf(a.ctx, "[Drag] unknown source %s", id)
		return nil
	}
	return err
}

// DragEnd resolves the active drag and returns what happened
// ("added", "moved", "click" or "none").
func (a *App) DragEnd(in DragEndInput) string {
	return string(a.editor.DragEnd(in.toDragEnd()))
}

func (a *App) DragCancel() {
	a.editor.DragCancel()
}

// Click handles a tap on a placed item, or on the background when id is empty.
func (a *App) Click(id string) {
	a.editor.Click(id)
}

// ============================================================
// Keyboard and toolbar
// ============================================================

// HandleKey applies a bound shortcut. It reports whether the key was
// consumed so the frontend can preventDefault.
func (a *App) HandleKey(in KeyInput) bool {
	return a.editor.HandleKey(in.Key, in.Ctrl, in.Meta, in.Shift)
}

// ApplyIntent runs a toolbar action: undo, redo, remove, deselect,
// rotate-cw, rotate-ccw, grow or shrink.
func (a *App) ApplyIntent(intent string) bool {
	return a.editor.Apply(interaction.Intent(intent))
}
