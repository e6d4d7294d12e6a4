package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("decorate_smile",
		mcp.WithPromptDescription("Place tooth jewelry on the captured photo in a given style"),
		mcp.WithArgument("style",
			mcp.ArgumentDescription("Look to aim for (e.g. subtle, symmetric, statement)"),
			mcp.RequiredArgument(),
		),
	), s.handleDecoratePrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("review_and_export",
		mcp.WithPromptDescription("Check the current design for overlaps and export it"),
	), s.handleReviewPrompt)
}

func (s *Server) handleDecoratePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	style := req.Params.Arguments["style"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Decorate the photo: %s", style),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Decorate the captured smile in a "%s" style. Follow these steps:

1. Use get_scene to read the displayed photo size and what is already placed
2. Use list_catalog to pick a few fitting items
3. Place each one with add_item; coordinates are the item centre in displayed-photo pixels
4. Adjust with rotate_item and resize_item until the result matches the style

Keep items inside the photo and avoid stacking them on top of each other.`, style),
				},
			},
		},
	}, nil
}

func (s *Server) handleReviewPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Review the design and export it",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: `Review the current design before exporting:

1. Use get_scene and look for items that overlap or sit at the photo edge
2. Fix them with move_item, or undo recent changes that made things worse
3. Call export_composite and report the saved path`,
				},
			},
		},
	}, nil
}
