package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"symline/internal/results"
	"symline/internal/symbol"
	"symline/pkg/types"
)

// ListDocumentSymbolsTool returns the flattened symbol outline of a file
type ListDocumentSymbolsTool struct {
	client        types.Client
	workspaceRoot string
}

// NewListDocumentSymbolsTool creates a new list document symbols tool
func NewListDocumentSymbolsTool(client types.Client, workspaceRoot string) *ListDocumentSymbolsTool {
	return &ListDocumentSymbolsTool{
		client:        client,
		workspaceRoot: workspaceRoot,
	}
}

// GetTool returns the MCP tool definition
func (t *ListDocumentSymbolsTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolListDocumentSymbols,
		mcp.WithDescription("List all symbols in a file as a flat outline in source order"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the file")),
	)
}

// Handle processes the tool request
func (t *ListDocumentSymbolsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath := mcp.ParseString(req, "file_path", "")
	if filePath == "" {
		return mcp.NewToolResultError("file_path parameter is required"), nil
	}

	uri := pathToURI(filePath, t.workspaceRoot)
	tree, err := t.client.GetDocumentSymbols(ctx, uri)
	if err != nil {
		return mcp.NewToolResultError(
			fmt.Sprintf("Failed to get document symbols for file: %s: %v", filePath, err),
		), nil
	}

	flat := symbol.Flatten(tree)
	toolResult := results.DocumentSymbolsResult{
		FilePath: filePath,
		Symbols:  make([]results.FlatSymbol, 0, len(flat)),
	}
	for _, info := range flat {
		entry := results.FlatSymbol{
			Name:     info.Name,
			Kind:     info.Kind,
			Location: results.NewSymbolLocation(info.SelectionRange.Start),
		}
		// Hover enrichment is best-effort.
		if hover, hoverErr := t.client.GetHoverInfo(ctx, uri, info.SelectionRange.Start); hoverErr == nil && hover != "" {
			entry.HoverInfo = hover
		}
		toolResult.Symbols = append(toolResult.Symbols, entry)
	}
	if len(toolResult.Symbols) == 0 {
		toolResult.Message = "No symbols found in file. " +
			"This could mean that the file is missing, empty, or has no symbol provider."
	} else {
		toolResult.Message = fmt.Sprintf("Found %d symbols in file.", len(toolResult.Symbols))
	}

	jsonBytes, err := json.MarshalIndent(toolResult, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal tool result JSON: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}
