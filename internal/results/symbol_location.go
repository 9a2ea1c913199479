package results

import "symline/pkg/types"

// SymbolLocation pinpoints a symbol using one-based display coordinates.
type SymbolLocation struct {
	DisplayLine int `json:"display_line"`
	DisplayChar int `json:"display_char"`
}

// NewSymbolLocation converts a zero-based LSP position to display
// coordinates.
func NewSymbolLocation(pos types.Position) SymbolLocation {
	return SymbolLocation{
		DisplayLine: pos.Line + 1,
		DisplayChar: pos.Character + 1,
	}
}
