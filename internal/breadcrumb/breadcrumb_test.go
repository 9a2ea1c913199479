package breadcrumb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symline/internal/config"
	"symline/internal/symbol"
	"symline/pkg/types"
)

func pos(line, char int) types.Position {
	return types.Position{Line: line, Character: char}
}

func lineRange(startLine, endLine int) types.Range {
	return types.Range{Start: pos(startLine, 0), End: pos(endLine, 0)}
}

func info(name string, kind symbol.Kind, startLine, endLine int) symbol.Info {
	return symbol.Info{
		Name:           name,
		Kind:           kind,
		Range:          lineRange(startLine, endLine),
		SelectionRange: types.Range{Start: pos(startLine, 5), End: pos(startLine, 5+len(name))},
	}
}

func TestSelectAncestorChain(t *testing.T) {
	// The scenario from the selector contract: two nested variables
	// collapse to the inner one.
	symbols := []symbol.Info{
		info("Foo", symbol.KindClass, 0, 100),
		info("bar", symbol.KindMethod, 10, 50),
		info("x", symbol.KindVariable, 20, 25),
		info("y", symbol.KindVariable, 21, 24),
	}

	crumbs := Select(symbols, pos(22, 0), config.Default())

	require.Len(t, crumbs, 3)
	assert.Equal(t, "Foo", crumbs[0].Name)
	assert.Equal(t, "bar", crumbs[1].Name)
	assert.Equal(t, "y", crumbs[2].Name)
}

func TestSelectBoundaryExcluded(t *testing.T) {
	symbols := []symbol.Info{
		info("Foo", symbol.KindClass, 0, 100),
		info("bar", symbol.KindMethod, 10, 50),
	}

	// Exactly on bar's start: only the enclosing class survives.
	crumbs := Select(symbols, pos(10, 0), config.Default())
	require.Len(t, crumbs, 1)
	assert.Equal(t, "Foo", crumbs[0].Name)

	// Exactly on bar's end.
	crumbs = Select(symbols, pos(50, 0), config.Default())
	require.Len(t, crumbs, 1)
	assert.Equal(t, "Foo", crumbs[0].Name)
}

func TestSelectOutsideEverything(t *testing.T) {
	symbols := []symbol.Info{
		info("Foo", symbol.KindClass, 0, 100),
	}

	crumbs := Select(symbols, pos(200, 0), config.Default())
	assert.NotNil(t, crumbs)
	assert.Empty(t, crumbs)
}

func TestSelectEmptyInput(t *testing.T) {
	crumbs := Select(nil, pos(0, 0), config.Default())
	assert.NotNil(t, crumbs)
	assert.Empty(t, crumbs)
}

func TestSelectKindAllowList(t *testing.T) {
	cfg := config.Default()
	cfg.ShowKinds = []string{"class", "method"}

	symbols := []symbol.Info{
		info("Foo", symbol.KindClass, 0, 100),
		info("bar", symbol.KindMethod, 10, 50),
		info("x", symbol.KindVariable, 20, 25),
	}

	crumbs := Select(symbols, pos(22, 0), cfg)

	require.Len(t, crumbs, 2)
	assert.Equal(t, "Foo", crumbs[0].Name)
	assert.Equal(t, "bar", crumbs[1].Name)
}

func TestCollapseKeepsInnermostVariable(t *testing.T) {
	symbols := []symbol.Info{
		info("outer", symbol.KindVariable, 0, 10),
		info("middle", symbol.KindVariable, 1, 9),
		info("inner", symbol.KindVariable, 2, 8),
	}

	collapsed := Collapse(symbols)

	require.Len(t, collapsed, 1)
	assert.Equal(t, "inner", collapsed[0].Name)
}

func TestCollapseNonAdjacentVariables(t *testing.T) {
	symbols := []symbol.Info{
		info("a", symbol.KindVariable, 0, 30),
		info("f", symbol.KindFunction, 1, 29),
		info("b", symbol.KindVariable, 2, 28),
	}

	collapsed := Collapse(symbols)

	require.Len(t, collapsed, 3)
	assert.Equal(t, "a", collapsed[0].Name)
	assert.Equal(t, "f", collapsed[1].Name)
	assert.Equal(t, "b", collapsed[2].Name)
}

func TestCollapseIdempotent(t *testing.T) {
	symbols := []symbol.Info{
		info("Foo", symbol.KindClass, 0, 100),
		info("x", symbol.KindVariable, 10, 50),
		info("y", symbol.KindVariable, 11, 49),
		info("bar", symbol.KindMethod, 20, 40),
		info("z", symbol.KindVariable, 21, 39),
	}

	once := Collapse(symbols)
	twice := Collapse(once)

	assert.Equal(t, once, twice)
}
