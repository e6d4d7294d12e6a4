package mcpserver

import (
	"context"
	"fmt"

	"jewelry/internal/interaction"
	"jewelry/internal/scene"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerSceneTools() {
	// ── list_catalog ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_catalog",
		mcp.WithDescription("List the decoration items that can be placed on the photo"),
	), s.handleListCatalog)

	// ── get_scene ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_scene",
		mcp.WithDescription("Get the placed items, selection, undo/redo availability and photo sizes"),
	), s.handleGetScene)

	// ── add_item ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_item",
		mcp.WithDescription("Place a catalog item on the photo. Coordinates are in displayed-photo pixels and name the item's centre."),
		mcp.WithString("catalogId", mcp.Description("ID of the catalog item"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("Centre X (optional, auto-layout if omitted)")),
		mcp.WithNumber("y", mcp.Description("Centre Y (optional, auto-layout if omitted)")),
	), s.handleAddItem)

	// ── move_item ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_item",
		mcp.WithDescription("Move a placed item by a delta. The item stays inside the photo."),
		mcp.WithString("itemId", mcp.Description("ID of the placed item"), mcp.Required()),
		mcp.WithNumber("dx", mcp.Description("Horizontal delta in pixels"), mcp.Required()),
		mcp.WithNumber("dy", mcp.Description("Vertical delta in pixels"), mcp.Required()),
	), s.handleMoveItem)

	// ── rotate_item ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("rotate_item",
		mcp.WithDescription(fmt.Sprintf("Rotate a placed item by %d degrees", scene.RotateStep)),
		mcp.WithString("itemId", mcp.Description("ID of the placed item"), mcp.Required()),
		mcp.WithString("direction",
			mcp.Description("cw (clockwise, default) or ccw"),
			mcp.Enum("cw", "ccw"),
		),
	), s.handleRotateItem)

	// ── resize_item ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("resize_item",
		mcp.WithDescription("Grow or shrink a placed item. Size is kept between 40 and 200 pixels."),
		mcp.WithString("itemId", mcp.Description("ID of the placed item"), mcp.Required()),
		mcp.WithNumber("delta", mcp.Description(fmt.Sprintf("Size change in pixels (default %d)", scene.ResizeStep))),
	), s.handleResizeItem)

	// ── remove_item ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("remove_item",
		mcp.WithDescription("Remove a placed item from the photo (requires user approval)"),
		mcp.WithString("itemId", mcp.Description("ID of the placed item"), mcp.Required()),
		mcp.WithDestructiveHintAnnotation(true),
	), s.handleRemoveItem)

	// ── select_item ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("select_item",
		mcp.WithDescription("Select a placed item so the user sees its controls. Omit itemId to clear the selection."),
		mcp.WithString("itemId", mcp.Description("ID of the placed item")),
	), s.handleSelectItem)

	// ── undo / redo ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Undo the last change to the placed items"),
	), s.handleUndo)
	s.mcp.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Redo the last undone change"),
	), s.handleRedo)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleListCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.editor.Catalog()
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return jsonResult(items)
}

func (s *Server) handleGetScene(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.editor.State())
}

func (s *Server) handleAddItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	catalogID, _ := args["catalogId"].(string)
	if catalogID == "" {
		return nil, fmt.Errorf("catalogId is required")
	}

	state := s.editor.State()
	if state.Container.Empty() {
		return nil, fmt.Errorf("no photo is displayed yet")
	}

	// Auto-layout if position not provided
	x, hasX := args["x"].(float64)
	y, hasY := args["y"].(float64)
	if !hasX || !hasY {
		x, y = s.layout.NextCenter(state.Items, s.editor.ItemSize(), state.Container)
	}

	placed, err := s.editor.AddItem(catalogID, x, y)
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	return jsonResult(placed)
}

func (s *Server) handleMoveItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := s.requireItemID(args)
	if err != nil {
		return nil, err
	}
	if !s.editor.MoveItem(id, getFloat(args, "dx", 0), getFloat(args, "dy", 0)) {
		return textResult(fmt.Sprintf("Item %s did not move (already at the photo edge)", id)), nil
	}
	return s.itemResult(id)
}

func (s *Server) handleRotateItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := s.requireItemID(args)
	if err != nil {
		return nil, err
	}
	direction := 1
	if dir, _ := args["direction"].(string); dir == "ccw" {
		direction = -1
	}
	s.editor.RotateItem(id, direction)
	return s.itemResult(id)
}

func (s *Server) handleResizeItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := s.requireItemID(args)
	if err != nil {
		return nil, err
	}
	if !s.editor.ResizeItem(id, getFloat(args, "delta", scene.ResizeStep)) {
		return textResult(fmt.Sprintf("Item %s is already at its size limit", id)), nil
	}
	return s.itemResult(id)
}

func (s *Server) handleRemoveItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := s.requireItemID(args)
	if err != nil {
		return nil, err
	}

	// Require approval (with metadata for frontend highlight)
	meta := fmt.Sprintf(`{"itemIds":["%s"]}`, id)
	approved, err := s.approval.Request("remove_item", fmt.Sprintf("Remove item %s", id), meta)
	if err != nil || !approved {
		return textResult("Action rejected by user"), nil
	}

	if !s.editor.RemoveItem(id) {
		return textResult(fmt.Sprintf("Item %s was already removed", id)), nil
	}
	return textResult(fmt.Sprintf("Item %s removed", id)), nil
}

func (s *Server) handleSelectItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("itemId", "")
	if !s.editor.Select(id) {
		return nil, fmt.Errorf("item %s is not placed on the photo", id)
	}
	if id == "" {
		return textResult("Selection cleared"), nil
	}
	return textResult(fmt.Sprintf("Item %s selected", id)), nil
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.editor.Apply(interaction.IntentUndo) {
		return textResult("Nothing to undo"), nil
	}
	return jsonResult(s.editor.State())
}

func (s *Server) handleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !s.editor.Apply(interaction.IntentRedo) {
		return textResult("Nothing to redo"), nil
	}
	return jsonResult(s.editor.State())
}

// itemResult returns the current state of a placed item.
func (s *Server) itemResult(id string) (*mcp.CallToolResult, error) {
	for _, it := range s.editor.State().Items {
		if it.ID == id {
			return jsonResult(it)
		}
	}
	return nil, fmt.Errorf("item %s is not placed on the photo", id)
}
