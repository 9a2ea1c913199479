// Package symbol converts the language server's nested document symbol
// tree into the flat, ordered form the breadcrumb selector works on.
package symbol

import (
	"symline/pkg/types"
)

// Info is one normalized symbol entry. Range spans the whole symbol;
// SelectionRange spans just its name and is the navigation target.
// Values are produced fresh on every refresh and never mutated.
type Info struct {
	Name           string
	Kind           Kind
	Range          types.Range
	SelectionRange types.Range
}

// Flatten converts a document symbol tree into a flat sequence in
// pre-order, so an enclosing symbol always precedes its descendants.
func Flatten(tree []types.DocumentSymbol) []Info {
	flat := make([]Info, 0, len(tree))
	for _, sym := range tree {
		flat = appendSubtree(flat, sym)
	}
	return flat
}

func appendSubtree(dst []Info, sym types.DocumentSymbol) []Info {
	dst = append(dst, Info{
		Name:           sym.Name,
		Kind:           NewKind(sym.Kind),
		Range:          sym.Range,
		SelectionRange: sym.SelectionRange,
	})
	for _, child := range sym.Children {
		dst = appendSubtree(dst, child)
	}
	return dst
}
