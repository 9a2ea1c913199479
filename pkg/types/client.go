package types

import (
	"context"
)

// Client defines the language server client interface
type Client interface {
	Start(ctx context.Context, workspaceRoot string) error
	Stop(ctx context.Context) error

	GetDocumentSymbols(ctx context.Context, uri string) ([]DocumentSymbol, error)
	GetHoverInfo(ctx context.Context, uri string, position Position) (string, error)
}
