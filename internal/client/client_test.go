package client

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symline/pkg/types"
)

// fakeTransport replays canned responses keyed by method.
type fakeTransport struct {
	responses     map[string]json.RawMessage
	err           error
	requests      []string
	notifications []string
}

func (t *fakeTransport) Start() error { return nil }
func (t *fakeTransport) Stop() error  { return nil }

func (t *fakeTransport) SendRequest(ctx context.Context, method string, params any) (json.RawMessage, error) {
	t.requests = append(t.requests, method)
	if t.err != nil {
		return nil, t.err
	}
	return t.responses[method], nil
}

func (t *fakeTransport) SendNotification(method string, params any) error {
	t.notifications = append(t.notifications, method)
	return nil
}

func newTestClient(tr types.Transport) *LangClient {
	return &LangClient{transport: tr}
}

func TestNewLangClientParsesCommand(t *testing.T) {
	tests := []struct {
		name      string
		serverCmd string
		command   string
		args      []string
	}{
		{
			name:      "default when empty",
			serverCmd: "",
			command:   "gopls",
			args:      []string{"serve"},
		},
		{
			name:      "command with flags",
			serverCmd: "typescript-language-server --stdio",
			command:   "typescript-language-server",
			args:      []string{"--stdio"},
		},
		{
			name:      "bare command",
			serverCmd: "pyright-langserver",
			command:   "pyright-langserver",
			args:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewLangClient(tt.serverCmd)
			assert.Equal(t, tt.command, c.command)
			assert.Equal(t, tt.args, c.args)
		})
	}
}

func TestGetDocumentSymbolsNullResult(t *testing.T) {
	tr := &fakeTransport{responses: map[string]json.RawMessage{
		"textDocument/documentSymbol": json.RawMessage("null"),
	}}
	c := newTestClient(tr)

	symbols, err := c.GetDocumentSymbols(context.Background(), "file:///a.go")
	require.NoError(t, err)
	assert.Nil(t, symbols, "null reply means no result, not an empty tree")
}

func TestGetDocumentSymbolsEmptyTree(t *testing.T) {
	tr := &fakeTransport{responses: map[string]json.RawMessage{
		"textDocument/documentSymbol": json.RawMessage("[]"),
	}}
	c := newTestClient(tr)

	symbols, err := c.GetDocumentSymbols(context.Background(), "file:///a.go")
	require.NoError(t, err)
	require.NotNil(t, symbols)
	assert.Empty(t, symbols)
}

func TestGetDocumentSymbolsHierarchical(t *testing.T) {
	payload := `[{
		"name": "Server",
		"kind": 23,
		"range": {"start": {"line": 0, "character": 0}, "end": {"line": 20, "character": 1}},
		"selectionRange": {"start": {"line": 0, "character": 5}, "end": {"line": 0, "character": 11}},
		"children": [{
			"name": "Start",
			"kind": 6,
			"range": {"start": {"line": 5, "character": 0}, "end": {"line": 10, "character": 1}},
			"selectionRange": {"start": {"line": 5, "character": 5}, "end": {"line": 5, "character": 10}}
		}]
	}]`
	tr := &fakeTransport{responses: map[string]json.RawMessage{
		"textDocument/documentSymbol": json.RawMessage(payload),
	}}
	c := newTestClient(tr)

	symbols, err := c.GetDocumentSymbols(context.Background(), "file:///server.go")
	require.NoError(t, err)
	require.Len(t, symbols, 1)
	assert.Equal(t, "Server", symbols[0].Name)
	assert.Equal(t, 23, symbols[0].Kind)
	require.Len(t, symbols[0].Children, 1)
	assert.Equal(t, "Start", symbols[0].Children[0].Name)
	assert.Equal(t, types.Position{Line: 5, Character: 5}, symbols[0].Children[0].SelectionRange.Start)
}

func TestGetDocumentSymbolsFlatFallback(t *testing.T) {
	payload := `[{
		"name": "handler",
		"kind": 12,
		"location": {
			"uri": "file:///handler.go",
			"range": {"start": {"line": 3, "character": 0}, "end": {"line": 8, "character": 1}}
		}
	}]`
	tr := &fakeTransport{responses: map[string]json.RawMessage{
		"textDocument/documentSymbol": json.RawMessage(payload),
	}}
	c := newTestClient(tr)

	symbols, err := c.GetDocumentSymbols(context.Background(), "file:///handler.go")
	require.NoError(t, err)
	require.Len(t, symbols, 1)
	assert.Equal(t, "handler", symbols[0].Name)
	assert.Equal(t, 12, symbols[0].Kind)
	assert.Equal(t, types.Position{Line: 3, Character: 0}, symbols[0].Range.Start)
	assert.Equal(t, symbols[0].Range, symbols[0].SelectionRange, "flat symbols reuse the full range")
}

func TestGetDocumentSymbolsTransportError(t *testing.T) {
	tr := &fakeTransport{err: errors.New("server gone")}
	c := newTestClient(tr)

	_, err := c.GetDocumentSymbols(context.Background(), "file:///a.go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server gone")
}

func TestGetHoverInfo(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "markup content",
			response: `{"contents": {"kind": "markdown", "value": "func Start()"}}`,
			want:     "func Start()",
		},
		{
			name:     "plain string contents",
			response: `{"contents": "deprecated"}`,
			want:     "deprecated",
		},
		{
			name:     "null response",
			response: "null",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &fakeTransport{responses: map[string]json.RawMessage{
				"textDocument/hover": json.RawMessage(tt.response),
			}}
			c := newTestClient(tr)

			got, err := c.GetHoverInfo(context.Background(), "file:///a.go", types.Position{Line: 1})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsFlatSymbolList(t *testing.T) {
	assert.True(t, isFlatSymbolList(json.RawMessage(`[{"name":"x","kind":12,"location":{"uri":"file:///a.go"}}]`)))
	assert.False(t, isFlatSymbolList(json.RawMessage(`[{"name":"x","kind":12,"range":{}}]`)))
	assert.False(t, isFlatSymbolList(json.RawMessage(`[]`)))
	assert.False(t, isFlatSymbolList(json.RawMessage(`{"not":"a list"}`)))
}
