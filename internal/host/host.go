// Package host reaches back into the editor over the JSON-RPC
// connection the editor opened to us. Queries are synchronous calls;
// actions are notifications the editor applies fire-and-forget.
package host

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/jsonrpc2"

	"symline/pkg/types"
)

var _ types.Host = &RPCHost{}

// RPCHost implements Host against a connected editor.
type RPCHost struct {
	conn *jsonrpc2.Conn
}

// NewRPCHost wraps an established editor connection.
func NewRPCHost(conn *jsonrpc2.Conn) *RPCHost {
	return &RPCHost{conn: conn}
}

type bufferParams struct {
	Bufnr int `json:"bufnr"`
}

type bufferVarParams struct {
	Bufnr int    `json:"bufnr"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type cursorParams struct {
	Winid    int            `json:"winid"`
	Position types.Position `json:"position"`
	Center   bool           `json:"center"`
}

type rangeParams struct {
	Bufnr int         `json:"bufnr"`
	Range types.Range `json:"range"`
}

type redrawParams struct {
	Force bool `json:"force"`
}

// IsBufferLoaded reports whether the buffer still exists in the editor.
func (h *RPCHost) IsBufferLoaded(ctx context.Context, bufnr int) (bool, error) {
	var loaded bool
	if err := h.conn.Call(ctx, "host/bufferLoaded", bufferParams{Bufnr: bufnr}, &loaded); err != nil {
		return false, err
	}
	return loaded, nil
}

// ListBuffers returns the identifiers of all live buffers.
func (h *RPCHost) ListBuffers(ctx context.Context) ([]int, error) {
	var buffers []int
	if err := h.conn.Call(ctx, "host/listBuffers", nil, &buffers); err != nil {
		return nil, err
	}
	return buffers, nil
}

// WindowForBuffer returns a window id showing the buffer, 0 when hidden.
func (h *RPCHost) WindowForBuffer(ctx context.Context, bufnr int) (int, error) {
	var winid int
	if err := h.conn.Call(ctx, "host/windowForBuffer", bufferParams{Bufnr: bufnr}, &winid); err != nil {
		return 0, err
	}
	return winid, nil
}

func (h *RPCHost) FocusWindow(ctx context.Context, winid int) error {
	return h.notify(ctx, "host/focusWindow", map[string]any{"winid": winid})
}

func (h *RPCHost) SetBufferVar(ctx context.Context, bufnr int, name, value string) error {
	return h.notify(ctx, "host/setBufferVar", bufferVarParams{Bufnr: bufnr, Name: name, Value: value})
}

func (h *RPCHost) SetCursor(ctx context.Context, winid int, pos types.Position) error {
	return h.notify(ctx, "host/setCursor", cursorParams{Winid: winid, Position: pos, Center: true})
}

func (h *RPCHost) SetSelection(ctx context.Context, bufnr int, rng types.Range) error {
	return h.notify(ctx, "host/setSelection", rangeParams{Bufnr: bufnr, Range: rng})
}

func (h *RPCHost) HighlightRange(ctx context.Context, bufnr int, rng types.Range) error {
	return h.notify(ctx, "host/highlightRange", rangeParams{Bufnr: bufnr, Range: rng})
}

func (h *RPCHost) ClearHighlight(ctx context.Context, bufnr int) error {
	return h.notify(ctx, "host/clearHighlight", bufferParams{Bufnr: bufnr})
}

func (h *RPCHost) Redraw(ctx context.Context, force bool) error {
	return h.notify(ctx, "host/redraw", redrawParams{Force: force})
}

func (h *RPCHost) notify(ctx context.Context, method string, params any) error {
	err := h.conn.Notify(ctx, method, params)
	if err != nil {
		slog.Debug("Host notification failed", "method", method, "error", err)
	}
	return err
}
