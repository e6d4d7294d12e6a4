package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	catalogURI  = "jewelry://catalog"
	sceneURI    = "jewelry://scene"
	itemURIBase = "jewelry://item/"
)

func (s *Server) registerResources() {
	// ── jewelry://catalog ──────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		catalogURI,
		"Decoration Catalog",
		mcp.WithMIMEType("application/json"),
	), s.handleCatalogResource)

	// ── jewelry://scene ────────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		sceneURI,
		"Current Scene",
		mcp.WithMIMEType("application/json"),
	), s.handleSceneResource)

	// ── jewelry://item/{itemId} ────────────────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			itemURIBase+"{itemId}",
			"Placed Item",
		),
		s.handleItemResource,
	)
}

func (s *Server) handleCatalogResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	items, err := s.editor.Catalog()
	if err != nil {
		return nil, err
	}
	return jsonResource(catalogURI, items)
}

func (s *Server) handleSceneResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(sceneURI, s.editor.State())
}

func (s *Server) handleItemResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	id := strings.TrimPrefix(uri, itemURIBase)
	if id == "" || id == uri {
		return nil, fmt.Errorf("could not extract itemId from URI: %s", uri)
	}
	for _, it := range s.editor.State().Items {
		if it.ID == id {
			return jsonResource(uri, it)
		}
	}
	return nil, fmt.Errorf("item %s is not placed on the photo", id)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
