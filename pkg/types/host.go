package types

import "context"

// MouseButton identifies which button triggered a click on the symbol line.
type MouseButton string

const (
	MouseLeft   MouseButton = "l"
	MouseMiddle MouseButton = "m"
	MouseRight  MouseButton = "r"
)

// Host defines the editor-side operations the engine depends on.
//
// Query methods return an error when the editor cannot answer. Action
// methods are fire-and-forget on the editor side; implementations must
// never surface their failures to callers beyond the returned error,
// which callers are free to discard.
type Host interface {
	// IsBufferLoaded reports whether the buffer still exists in the editor.
	IsBufferLoaded(ctx context.Context, bufnr int) (bool, error)
	// ListBuffers returns the identifiers of all live buffers.
	ListBuffers(ctx context.Context) ([]int, error)
	// WindowForBuffer returns the id of a window displaying the buffer,
	// or 0 when the buffer is not visible.
	WindowForBuffer(ctx context.Context, bufnr int) (int, error)

	FocusWindow(ctx context.Context, winid int) error
	// SetBufferVar stores a per-buffer display variable consumed by the
	// editor's tabline renderer.
	SetBufferVar(ctx context.Context, bufnr int, name, value string) error
	// SetCursor moves the cursor in the given window and centers the view.
	SetCursor(ctx context.Context, winid int, pos Position) error
	// SetSelection selects the given range in the buffer.
	SetSelection(ctx context.Context, bufnr int, rng Range) error
	// HighlightRange applies a transient highlight over the range.
	HighlightRange(ctx context.Context, bufnr int, rng Range) error
	ClearHighlight(ctx context.Context, bufnr int) error
	// Redraw repaints the tabline region; force bypasses damage tracking.
	Redraw(ctx context.Context, force bool) error
}
