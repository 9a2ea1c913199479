package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symline/internal/config"
	"symline/internal/controller"
	"symline/internal/results"
	"symline/pkg/types"
)

type fakeClient struct {
	tree  []types.DocumentSymbol
	err   error
	hover map[string]string
}

func (c *fakeClient) Start(ctx context.Context, workspaceRoot string) error { return nil }
func (c *fakeClient) Stop(ctx context.Context) error                        { return nil }

func (c *fakeClient) GetDocumentSymbols(ctx context.Context, uri string) ([]types.DocumentSymbol, error) {
	return c.tree, c.err
}

func (c *fakeClient) GetHoverInfo(ctx context.Context, uri string, position types.Position) (string, error) {
	return c.hover[uri], nil
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestGetSymbolContextRejectsBadBufnr(t *testing.T) {
	tool := NewGetSymbolContextTool(controller.New(&fakeClient{}, nil, config.Default(), ""))

	for _, args := range []map[string]any{
		{},
		{"bufnr": float64(0)},
		{"bufnr": float64(-3)},
	} {
		result, err := tool.Handle(context.Background(), toolRequest(args))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	}
}

func TestGetSymbolContextEmptyBuffer(t *testing.T) {
	ctrl := controller.New(&fakeClient{}, nil, config.Default(), "")
	go ctrl.Run(context.Background())
	defer ctrl.Close()

	tool := NewGetSymbolContextTool(ctrl)

	result, err := tool.Handle(context.Background(), toolRequest(map[string]any{"bufnr": float64(7)}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var parsed results.SymbolContextResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &parsed))
	assert.Equal(t, 7, parsed.Bufnr)
	assert.Empty(t, parsed.Breadcrumbs)
	assert.Contains(t, parsed.Message, "No symbol context")
}

func TestListDocumentSymbolsRequiresPath(t *testing.T) {
	tool := NewListDocumentSymbolsTool(&fakeClient{}, "/workspace")

	result, err := tool.Handle(context.Background(), toolRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestListDocumentSymbolsFlattensOutline(t *testing.T) {
	client := &fakeClient{
		tree: []types.DocumentSymbol{{
			Name:           "Engine",
			Kind:           23,
			Range:          types.Range{End: types.Position{Line: 30}},
			SelectionRange: types.Range{Start: types.Position{Line: 0, Character: 5}},
			Children: []types.DocumentSymbol{{
				Name:           "Run",
				Kind:           6,
				Range:          types.Range{Start: types.Position{Line: 4}, End: types.Position{Line: 12}},
				SelectionRange: types.Range{Start: types.Position{Line: 4, Character: 5}},
			}},
		}},
		hover: map[string]string{"file:///workspace/engine.go": "type Engine struct"},
	}
	tool := NewListDocumentSymbolsTool(client, "/workspace")

	result, err := tool.Handle(context.Background(), toolRequest(map[string]any{"file_path": "engine.go"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var parsed results.DocumentSymbolsResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &parsed))
	assert.Equal(t, "engine.go", parsed.FilePath)
	require.Len(t, parsed.Symbols, 2)
	assert.Equal(t, "Engine", parsed.Symbols[0].Name)
	assert.Equal(t, "Run", parsed.Symbols[1].Name)
	assert.Equal(t, 5, parsed.Symbols[1].Location.DisplayLine, "locations are one-based")
	assert.Equal(t, "type Engine struct", parsed.Symbols[0].HoverInfo)
}

func TestListDocumentSymbolsClientError(t *testing.T) {
	tool := NewListDocumentSymbolsTool(&fakeClient{err: errors.New("no provider")}, "/workspace")

	result, err := tool.Handle(context.Background(), toolRequest(map[string]any{"file_path": "a.go"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestListDocumentSymbolsEmptyFile(t *testing.T) {
	tool := NewListDocumentSymbolsTool(&fakeClient{tree: []types.DocumentSymbol{}}, "/workspace")

	result, err := tool.Handle(context.Background(), toolRequest(map[string]any{"file_path": "empty.go"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var parsed results.DocumentSymbolsResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &parsed))
	assert.Empty(t, parsed.Symbols)
	assert.Contains(t, parsed.Message, "No symbols found")
}
