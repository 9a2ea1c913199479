// Package tools exposes the running engine to AI tooling over MCP.
package tools

// Tool names
const (
	ToolGetSymbolContext    = "get_symbol_context"
	ToolListDocumentSymbols = "list_document_symbols"
)
