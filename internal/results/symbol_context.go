package results

import "symline/internal/symbol"

// BreadcrumbEntry is one element of a rendered breadcrumb chain.
type BreadcrumbEntry struct {
	Name     string         `json:"name"`
	Kind     symbol.Kind    `json:"kind"`
	Location SymbolLocation `json:"location"`
}

// SymbolContextResult represents the symbol chain enclosing the cursor
// in an editor buffer.
type SymbolContextResult struct {
	Bufnr       int               `json:"bufnr"`
	Breadcrumbs []BreadcrumbEntry `json:"breadcrumbs"`
	Message     string            `json:"message,omitempty"`
}

// NewBreadcrumbEntry converts a selected symbol into a result entry.
func NewBreadcrumbEntry(info symbol.Info) BreadcrumbEntry {
	return BreadcrumbEntry{
		Name:     info.Name,
		Kind:     info.Kind,
		Location: NewSymbolLocation(info.SelectionRange.Start),
	}
}
