package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"jewelry/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerExportTools() {
	// ── export_composite ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("export_composite",
		mcp.WithDescription("Render the photo with all placed items at full resolution and save it as PNG"),
		mcp.WithString("path",
			mcp.Description("Output file or directory (optional, defaults to the configured export directory)"),
		),
	), s.handleExportComposite)
}

func (s *Server) handleExportComposite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.editor.Export(ctx)
	if errors.Is(err, service.ErrExportUnavailable) {
		return textResult(fmt.Sprintf("Nothing exported: %v", err)), nil
	}
	if err != nil {
		return nil, err
	}

	out := s.exportPath(req.GetString("path", ""), res.Filename)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(out, res.PNG, 0o644); err != nil {
		return nil, fmt.Errorf("write export: %w", err)
	}
	s.log.Info("composite exported", "path", out, "width", res.Width, "height", res.Height)

	return jsonResult(map[string]any{
		"path":   out,
		"width":  res.Width,
		"height": res.Height,
		"items":  len(res.Placements),
	})
}

// exportPath resolves where a composite is written. A directory target
// gets the generated file name.
func (s *Server) exportPath(target, filename string) string {
	if target == "" {
		dir := s.exportDir
		if dir == "" {
			dir = "."
		}
		return filepath.Join(dir, filename)
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return filepath.Join(target, filename)
	}
	return target
}
