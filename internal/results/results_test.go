package results

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"symline/internal/symbol"
	"symline/pkg/types"
)

func TestNewSymbolLocation(t *testing.T) {
	tests := []struct {
		name     string
		position types.Position
		expected SymbolLocation
	}{
		{
			name:     "origin becomes 1:1",
			position: types.Position{Line: 0, Character: 0},
			expected: SymbolLocation{DisplayLine: 1, DisplayChar: 1},
		},
		{
			name:     "offset position",
			position: types.Position{Line: 41, Character: 7},
			expected: SymbolLocation{DisplayLine: 42, DisplayChar: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewSymbolLocation(tt.position))
		})
	}
}

func TestNewBreadcrumbEntry(t *testing.T) {
	info := symbol.Info{
		Name: "Start",
		Kind: symbol.KindMethod,
		Range: types.Range{
			Start: types.Position{Line: 4},
			End:   types.Position{Line: 12},
		},
		SelectionRange: types.Range{
			Start: types.Position{Line: 4, Character: 5},
			End:   types.Position{Line: 4, Character: 10},
		},
	}

	entry := NewBreadcrumbEntry(info)
	assert.Equal(t, "Start", entry.Name)
	assert.Equal(t, symbol.KindMethod, entry.Kind)
	assert.Equal(t, SymbolLocation{DisplayLine: 5, DisplayChar: 6}, entry.Location)
}
