package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"jewelry/internal/compositor"
	"jewelry/internal/service"
)

// ============================================================
// Export
// ============================================================

// ExportComposite renders the photo with every placed item at full
// resolution and offers it for saving. It returns nil when export is not
// currently possible (no photo, no items, or an export already running).
// Render failures are also reported through the export:error event.
func (a *App) ExportComposite() (*ExportView, error) {
	res, err := a.editor.Export(a.ctx)
	if errors.Is(err, service.ErrExportUnavailable) {
		wailsRuntime.LogDebugf(a.ctx, "[Export] ignored: %v", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	view := &ExportView{
		Filename: res.Filename,
		Width:    res.Width,
		Height:   res.Height,
		Preview:  compositor.EncodeDataURL(res.PNG),
	}

	path, err := wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:            "Save decorated photo",
		DefaultDirectory: a.core.cfg.Export.Dir,
		DefaultFilename:  res.Filename,
		Filters: []wailsRuntime.FileFilter{
			{DisplayName: "PNG image", Pattern: "*.png"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("save dialog: %w", err)
	}
	if path == "" {
		return view, nil
	}

	if err := writeExport(path, res.PNG); err != nil {
		wailsRuntime.LogErrorf(a.ctx, "[Export] %v", err)
		return nil, err
	}
	view.Path = path
	wailsRuntime.LogInfof(a.ctx, "[Export] saved %s (%dx%d)", path, res.Width, res.Height)
	return view, nil
}

func writeExport(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// ============================================================
// MCP approvals
// ============================================================

// ApproveAction answers a pending mcp:approval-required request.
func (a *App) ApproveAction(actionID string) {
	a.mcp.Approve(actionID)
}

// RejectAction declines a pending mcp:approval-required request.
func (a *App) RejectAction(actionID string) {
	a.mcp.Reject(actionID)
}
