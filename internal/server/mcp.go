package server

import (
	"context"
	"log/slog"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"symline/internal/tools"
	"symline/pkg/project"
)

// serveMCP exposes the engine's tool surface over SSE on addr. The
// returned stop function shuts the listener down.
func (s *EngineServer) serveMCP(addr string) (stop func(), err error) {
	mcpServer := mcpserver.NewMCPServer(project.Name, project.Version)

	contextTool := tools.NewGetSymbolContextTool(s.ctrl)
	mcpServer.AddTool(contextTool.GetTool(), contextTool.Handle)

	symbolsTool := tools.NewListDocumentSymbolsTool(s.client, s.opts.WorkspaceRoot)
	mcpServer.AddTool(symbolsTool.GetTool(), symbolsTool.Handle)

	sseServer := mcpserver.NewSSEServer(mcpServer)
	go func() {
		slog.Info("Serving MCP tools", "addr", addr)
		if err := sseServer.Start(addr); err != nil {
			slog.Warn("MCP server stopped", "error", err)
		}
	}()

	return func() {
		if err := sseServer.Shutdown(context.Background()); err != nil {
			slog.Debug("MCP server shutdown failed", "error", err)
		}
	}, nil
}
