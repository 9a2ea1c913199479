// Package transport implements JSON-RPC over an LSP-style byte stream
// with Content-Length framing.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"symline/pkg/types"
)

const (
	receiveTimeout = 10 * time.Second
)

var _ types.Transport = &JsonRpcTransport{}

// ErrCanceled is returned for requests whose context was canceled
// before the server answered.
var ErrCanceled = fmt.Errorf("request canceled")

// response pairs a raw result with a server-reported error.
type response struct {
	result json.RawMessage
	err    error
}

// JsonRpcTransport handles low-level JSON-RPC communication
type JsonRpcTransport struct {
	writer    io.Writer
	reader    io.Reader
	writeMu   sync.Mutex
	requestID int64
	responses map[int64]chan response
	mu        sync.RWMutex
	done      chan struct{}
}

// NewJsonRpcTransport creates a new JSON-RPC transport
func NewJsonRpcTransport(writer io.Writer, reader io.Reader) *JsonRpcTransport {
	return &JsonRpcTransport{
		writer:    writer,
		reader:    reader,
		responses: make(map[int64]chan response),
		done:      make(chan struct{}),
	}
}

func (t *JsonRpcTransport) Start() error {
	slog.Debug("Starting JSON-RPC transport")
	go t.readResponses()
	return nil
}

func (t *JsonRpcTransport) Stop() error {
	if !t.isClosed() {
		slog.Debug("Stopping JSON-RPC transport")
		close(t.done)
	}
	return nil
}

func (t *JsonRpcTransport) isClosed() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// jsonRpcResponse represents an incoming JSON-RPC response
type jsonRpcResponse struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// readResponses reads framed responses until the stream ends or the
// transport stops.
func (t *JsonRpcTransport) readResponses() {
	for {
		if t.isClosed() {
			return
		}

		// Read header bytes until the \r\n\r\n terminator
		var contentLength int
		var header []byte

		for {
			b := make([]byte, 1)
			if _, err := io.ReadFull(t.reader, b); err != nil {
				if !t.isClosed() {
					slog.Debug("JSON-RPC read loop ended", "error", err)
				}
				return
			}
			header = append(header, b[0])

			if len(header) >= 4 && string(header[len(header)-4:]) == "\r\n\r\n" {
				headerStr := string(header)
				if _, err := fmt.Sscanf(headerStr, "Content-Length: %d\r\n\r\n", &contentLength); err != nil {
					slog.Error("Failed to scan JSON-RPC response header", "error", err, "header", headerStr)
					continue
				}
				break
			}
		}

		body := make([]byte, contentLength)
		if _, err := io.ReadFull(t.reader, body); err != nil {
			slog.Error("Failed to read JSON-RPC response body", "error", err, "content_length", contentLength)
			return
		}

		t.handleResponse(body)
	}
}

// handleResponse routes a response to the waiting request channel
func (t *JsonRpcTransport) handleResponse(content []byte) {
	var resp jsonRpcResponse
	if err := json.Unmarshal(content, &resp); err != nil {
		slog.Error("Failed to unmarshal JSON-RPC response", "error", err, "content", string(content))
		return
	}

	if resp.ID == nil {
		return // server-sent notification
	}

	var id int64
	if err := json.Unmarshal(resp.ID, &id); err != nil {
		slog.Error("Failed to unmarshal JSON-RPC response ID", "error", err, "raw_id", string(resp.ID))
		return
	}

	t.mu.RLock()
	ch, ok := t.responses[id]
	t.mu.RUnlock()

	if !ok {
		// Response to a request we already gave up on
		return
	}

	if resp.Error != nil {
		ch <- response{err: fmt.Errorf("JSON-RPC error response: %s", string(resp.Error))}
	} else {
		ch <- response{result: resp.Result}
	}
}

// SendRequest sends a JSON-RPC request and waits for its response.
// Canceling ctx sends a $/cancelRequest notification for the pending id
// and returns ErrCanceled without waiting for the server.
func (t *JsonRpcTransport) SendRequest(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := atomic.AddInt64(&t.requestID, 1)

	slog.Debug("Sending JSON-RPC request", "request_id", id, "method", method)

	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	}

	data, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	ch := make(chan response, 1)
	t.mu.Lock()
	t.responses[id] = ch
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		delete(t.responses, id)
		t.mu.Unlock()
	}()

	if err := t.writeMessage(data); err != nil {
		return nil, err
	}

	select {
	case resp := <-ch:
		if resp.err != nil {
			return nil, resp.err
		}
		return resp.result, nil
	case <-ctx.Done():
		// Cooperative cancellation only; a late reply is dropped by
		// handleResponse once the id is deregistered.
		if err := t.SendNotification("$/cancelRequest", map[string]any{"id": id}); err != nil {
			slog.Debug("Failed to send cancel notification", "request_id", id, "error", err)
		}
		return nil, fmt.Errorf("%w: %s", ErrCanceled, method)
	case <-time.After(receiveTimeout):
		return nil, fmt.Errorf("timeout waiting for response to method %s", method)
	}
}

// SendNotification sends a JSON-RPC notification (no response expected)
func (t *JsonRpcTransport) SendNotification(method string, params any) error {
	slog.Debug("Sending JSON-RPC notification", "method", method)

	notification := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
	}
	if params != nil {
		notification["params"] = params
	}

	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	return t.writeMessage(data)
}

// writeMessage writes a message with the Content-Length header
func (t *JsonRpcTransport) writeMessage(data []byte) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(data))
	if _, err := t.writer.Write([]byte(header)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if _, err := t.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	return nil
}
