// Package client speaks LSP to a language server subprocess. The server
// is treated as a black-box document symbol provider.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"symline/internal/transport"
	"symline/pkg/project"
	"symline/pkg/types"
)

const (
	defaultServerCmd = "gopls serve"
)

var _ types.Client = &LangClient{}

// LangClient implements the Client interface for any LSP server
// reachable over stdio.
type LangClient struct {
	command   string
	args      []string
	cmd       *exec.Cmd
	stderr    io.ReadCloser
	transport types.Transport
}

// NewLangClient creates a client for the given server command line,
// e.g. "gopls serve" or "typescript-language-server --stdio".
func NewLangClient(serverCmd string) *LangClient {
	if serverCmd == "" {
		serverCmd = defaultServerCmd
	}
	parts := strings.Fields(serverCmd)

	slog.Debug("Creating language server client", "server_cmd", serverCmd)

	return &LangClient{
		command: parts[0],
		args:    parts[1:],
	}
}

// Start spawns the language server and performs the LSP handshake.
func (c *LangClient) Start(ctx context.Context, workspaceRoot string) error {
	slog.Debug("Starting language server", "command", c.command, "workspace_root", workspaceRoot)

	c.cmd = exec.CommandContext(ctx, c.command, c.args...)

	stdin, err := c.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdin pipe: %w", err)
	}

	stdout, err := c.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	stderr, err := c.cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	c.stderr = stderr
	c.transport = transport.NewJsonRpcTransport(stdin, stdout)

	if err := c.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start language server: %w", err)
	}
	slog.Debug("Language server process started", "pid", c.cmd.Process.Pid)

	if err := c.transport.Start(); err != nil {
		return fmt.Errorf("failed to start transport: %w", err)
	}

	rootURI := "file://" + workspaceRoot
	if err := c.initialize(ctx, rootURI); err != nil {
		return fmt.Errorf("failed to initialize language server client: %w", err)
	}
	slog.Debug("Language server client initialized", "root_uri", rootURI)

	return nil
}

func (c *LangClient) initialize(ctx context.Context, rootURI string) error {
	params := map[string]any{
		"processId": nil,
		"clientInfo": map[string]any{
			"name":    project.Name,
			"version": project.Version,
		},
		"rootUri": rootURI,
		"capabilities": map[string]any{
			"textDocument": map[string]any{
				"documentSymbol": map[string]any{
					"hierarchicalDocumentSymbolSupport": true,
				},
			},
		},
	}

	if _, err := c.transport.SendRequest(ctx, "initialize", params); err != nil {
		return fmt.Errorf("failed to send initialization request: %w", err)
	}

	if err := c.transport.SendNotification("initialized", map[string]any{}); err != nil {
		return fmt.Errorf("failed to send initialization notification: %w", err)
	}

	return nil
}

// Stop shuts the language server down.
func (c *LangClient) Stop(ctx context.Context) error {
	if _, err := c.transport.SendRequest(ctx, "shutdown", nil); err != nil {
		slog.Debug("Shutdown request failed", "error", err)
	}

	if err := c.transport.SendNotification("exit", nil); err != nil {
		slog.Debug("Exit notification failed", "error", err)
	}

	if err := c.transport.Stop(); err != nil {
		return fmt.Errorf("failed to stop transport: %w", err)
	}

	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
		_ = c.cmd.Wait()
	}

	return nil
}

// GetDocumentSymbols fetches the symbol tree for a document. A null
// reply means "no result" and returns a nil slice; an empty tree from
// the server stays an empty, non-nil slice.
func (c *LangClient) GetDocumentSymbols(ctx context.Context, uri string) ([]types.DocumentSymbol, error) {
	slog.Debug("Getting document symbols", "uri", uri)

	params := map[string]any{
		"textDocument": map[string]any{
			"uri": uri,
		},
	}

	response, err := c.transport.SendRequest(ctx, "textDocument/documentSymbol", params)
	if err != nil {
		return nil, fmt.Errorf("failed to get document symbols: %w", err)
	}

	// The response can be null, DocumentSymbol[], or SymbolInformation[]
	if len(response) == 0 || string(response) == "null" {
		slog.Debug("No document symbols found", "uri", uri)
		return nil, nil
	}

	if isFlatSymbolList(response) {
		var symbolInfos []types.SymbolInformation
		if err := json.Unmarshal(response, &symbolInfos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document symbols response: %w", err)
		}

		// Flat SymbolInformation has no selection range; use the full
		// range for both.
		symbols := make([]types.DocumentSymbol, len(symbolInfos))
		for i, info := range symbolInfos {
			symbols[i] = types.DocumentSymbol{
				Name:           info.Name,
				Kind:           info.Kind,
				Range:          info.Location.Range,
				SelectionRange: info.Location.Range,
			}
		}
		return symbols, nil
	}

	// An empty array is a successful fetch with no symbols.
	symbols := []types.DocumentSymbol{}
	if err := json.Unmarshal(response, &symbols); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document symbols response: %w", err)
	}
	return symbols, nil
}

// isFlatSymbolList reports whether a documentSymbol response carries
// SymbolInformation[] rather than DocumentSymbol[]. Both decode into a
// DocumentSymbol slice without error, so the shapes are told apart by
// the location field only the flat form has.
func isFlatSymbolList(response json.RawMessage) bool {
	var probe []struct {
		Location json.RawMessage `json:"location"`
	}
	if err := json.Unmarshal(response, &probe); err != nil {
		return false
	}
	return len(probe) > 0 && probe[0].Location != nil
}

// GetHoverInfo fetches hover text for a position in a document.
func (c *LangClient) GetHoverInfo(ctx context.Context, uri string, position types.Position) (string, error) {
	params := map[string]any{
		"textDocument": map[string]any{
			"uri": uri,
		},
		"position": position,
	}

	response, err := c.transport.SendRequest(ctx, "textDocument/hover", params)
	if err != nil {
		return "", fmt.Errorf("failed to get hover info: %w", err)
	}

	if len(response) == 0 || string(response) == "null" {
		return "", nil
	}

	var hover struct {
		Contents any `json:"contents"`
	}
	if err := json.Unmarshal(response, &hover); err != nil {
		return "", fmt.Errorf("failed to unmarshal hover response: %w", err)
	}

	switch v := hover.Contents.(type) {
	case string:
		return v, nil
	case map[string]any:
		if value, ok := v["value"]; ok {
			return fmt.Sprintf("%v", value), nil
		}
	}

	return fmt.Sprintf("%v", hover.Contents), nil
}
