package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"jewelry/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for the jewelry editor.
// It exposes tools, resources, and prompts so AI agents can decorate the captured photo.
type Server struct {
	mcp      *server.MCPServer
	http     *server.StreamableHTTPServer
	emitter  EventEmitter
	approval *ApprovalQueue
	layout   *LayoutEngine
	log      *slog.Logger

	editor    *service.EditorService
	exportDir string
}

// Deps holds all dependencies passed from the App layer to the MCP server.
type Deps struct {
	Emitter   EventEmitter
	Editor    *service.EditorService
	ExportDir string // default directory for export_composite
	Logger    *slog.Logger

	// AutoApprove skips the approval queue. Only for headless use where no
	// frontend can answer approval requests.
	AutoApprove bool
}

// New creates and configures a new MCP server with all tools and resources.
func New(ctx context.Context, deps Deps) *Server {
	if deps.Emitter == nil {
		deps.Emitter = service.NoopEmitter{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	approval := NewApprovalQueue(ctx, deps.Emitter)
	approval.SetAutoApprove(deps.AutoApprove)

	s := &Server{
		emitter:   deps.Emitter,
		approval:  approval,
		layout:    NewLayoutEngine(),
		log:       logger.With("component", "mcp"),
		editor:    deps.Editor,
		exportDir: deps.ExportDir,
	}

	s.mcp = server.NewMCPServer(
		"jewelry-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerSceneTools()
	s.registerExportTools()
	s.registerResources()
	s.registerPrompts()

	s.http = server.NewStreamableHTTPServer(s.mcp)
	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.log.Info("starting stdio server")
	return server.ServeStdio(s.mcp)
}

// ServeHTTP serves the streamable HTTP transport on addr. It blocks until
// Shutdown is called.
func (s *Server) ServeHTTP(addr string) error {
	s.log.Info("starting http server", "addr", addr)
	return s.http.Start(addr)
}

// Shutdown stops the HTTP transport.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Approve forwards a user approval to the approval queue.
func (s *Server) Approve(actionID string) {
	s.approval.Approve(actionID)
}

// Reject forwards a user rejection to the approval queue.
func (s *Server) Reject(actionID string) {
	s.approval.Reject(actionID)
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}
