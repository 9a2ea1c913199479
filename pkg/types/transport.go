package types

import (
	"context"
	"encoding/json"
)

// Transport defines the JSON-RPC transport layer interface
type Transport interface {
	Start() error
	Stop() error
	SendRequest(ctx context.Context, method string, params any) (json.RawMessage, error)
	SendNotification(method string, params any) error
}
