package types

import "context"

// Server defines the engine server interface
type Server interface {
	Serve(ctx context.Context) error
}
