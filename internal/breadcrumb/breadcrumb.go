// Package breadcrumb turns a flattened symbol sequence plus a cursor
// position into the short chain of entries shown on the symbol line.
package breadcrumb

import (
	"symline/internal/config"
	"symline/internal/symbol"
	"symline/pkg/types"
)

// Select filters symbols to the chain strictly enclosing cursor and
// collapses runs of adjacent variable entries to the innermost one.
//
// The input must be in pre-order (enclosing symbol first), which makes
// the result naturally ordered outer-to-inner. A cursor sitting exactly
// on a symbol's range boundary does not count as enclosed. The result
// is never nil; an empty slice means "no breadcrumb, show the default".
func Select(symbols []symbol.Info, cursor types.Position, cfg *config.Config) []symbol.Info {
	enclosing := make([]symbol.Info, 0, len(symbols))
	for _, sym := range symbols {
		if symbol.Compare(cursor, sym.Range) != symbol.Inside {
			continue
		}
		if !cfg.KindAllowed(string(sym.Kind)) {
			continue
		}
		enclosing = append(enclosing, sym)
	}
	return Collapse(enclosing)
}

// Collapse replaces each run of consecutive variable-kind entries with
// its last (innermost) entry. Nested scopes often report several
// enclosing variable bindings; only the nearest one is a useful crumb.
// Collapse is idempotent.
func Collapse(symbols []symbol.Info) []symbol.Info {
	collapsed := make([]symbol.Info, 0, len(symbols))
	for _, sym := range symbols {
		if len(collapsed) > 0 &&
			sym.Kind == symbol.KindVariable &&
			collapsed[len(collapsed)-1].Kind == symbol.KindVariable {
			collapsed[len(collapsed)-1] = sym
			continue
		}
		collapsed = append(collapsed, sym)
	}
	return collapsed
}
