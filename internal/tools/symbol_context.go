package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"symline/internal/controller"
	"symline/internal/results"
)

// GetSymbolContextTool reports the breadcrumb chain currently cached
// for an editor buffer.
type GetSymbolContextTool struct {
	ctrl *controller.Controller
}

// NewGetSymbolContextTool creates a new get symbol context tool
func NewGetSymbolContextTool(ctrl *controller.Controller) *GetSymbolContextTool {
	return &GetSymbolContextTool{ctrl: ctrl}
}

// GetTool returns the MCP tool definition
func (t *GetSymbolContextTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolGetSymbolContext,
		mcp.WithDescription("Get the chain of document symbols enclosing the cursor in an editor buffer, outermost first"),
		mcp.WithNumber("bufnr", mcp.Required(), mcp.Description("Editor buffer number")),
	)
}

// Handle processes the tool request
func (t *GetSymbolContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bufnr := int(mcp.ParseFloat64(req, "bufnr", 0))
	if bufnr < 1 {
		return mcp.NewToolResultError("bufnr parameter must be a positive buffer number"), nil
	}

	crumbs := t.ctrl.Snapshot(bufnr)

	toolResult := results.SymbolContextResult{
		Bufnr:       bufnr,
		Breadcrumbs: make([]results.BreadcrumbEntry, 0, len(crumbs)),
	}
	for _, crumb := range crumbs {
		toolResult.Breadcrumbs = append(toolResult.Breadcrumbs, results.NewBreadcrumbEntry(crumb))
	}
	if len(toolResult.Breadcrumbs) == 0 {
		toolResult.Message = "No symbol context for this buffer. " +
			"The cursor may be outside any symbol, or the buffer has not been refreshed yet."
	} else {
		toolResult.Message = fmt.Sprintf("Cursor is inside %d nested symbols.", len(toolResult.Breadcrumbs))
	}

	jsonBytes, err := json.MarshalIndent(toolResult, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal tool result JSON: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}
