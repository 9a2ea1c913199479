package results

import "symline/internal/symbol"

// FlatSymbol is one entry of a flattened document symbol outline.
type FlatSymbol struct {
	Name      string         `json:"name"`
	Kind      symbol.Kind    `json:"kind"`
	Location  SymbolLocation `json:"location"`
	HoverInfo string         `json:"hover_info,omitempty"`
}

// DocumentSymbolsResult represents the flattened outline of a file.
type DocumentSymbolsResult struct {
	FilePath string       `json:"file_path"`
	Symbols  []FlatSymbol `json:"symbols"`
	Message  string       `json:"message,omitempty"`
}
