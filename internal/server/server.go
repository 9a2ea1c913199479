// Package server wires the editor connection, the language server
// client, and the controller into one running engine.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sourcegraph/jsonrpc2"

	"symline/internal/client"
	"symline/internal/config"
	"symline/internal/controller"
	"symline/internal/host"
	"symline/pkg/types"
)

var _ types.Server = &EngineServer{}

// Options configures a symbol line engine instance.
type Options struct {
	// WorkspaceRoot is the directory the language server indexes.
	WorkspaceRoot string
	// ServerCmd is the language server command line, e.g. "gopls serve".
	ServerCmd string
	// ConfigPath points at an optional YAML config file.
	ConfigPath string
	// MCPAddr, when non-empty, serves the MCP tool surface over SSE.
	MCPAddr string
}

// EngineServer runs the symbol line engine against an editor speaking
// JSON-RPC on stdin/stdout.
type EngineServer struct {
	opts   Options
	client *client.LangClient
	ctrl   *controller.Controller
}

// NewEngineServer creates a new engine server.
func NewEngineServer(opts Options) *EngineServer {
	return &EngineServer{
		opts:   opts,
		client: client.NewLangClient(opts.ServerCmd),
	}
}

// Serve starts the language server, connects the editor bridge, and
// blocks until the editor disconnects or ctx is canceled.
func (s *EngineServer) Serve(ctx context.Context) error {
	cfg, err := config.Load(s.opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := s.client.Start(ctx, s.opts.WorkspaceRoot); err != nil {
		return fmt.Errorf("failed to start language server client: %w", err)
	}
	defer func() {
		if err := s.client.Stop(context.Background()); err != nil {
			slog.Debug("Language server shutdown failed", "error", err)
		}
	}()

	h := &dispatchHandler{}
	stream := jsonrpc2.NewBufferedStream(stdioStream{}, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, jsonrpc2.HandlerWithError(h.handle))
	defer conn.Close()

	s.ctrl = controller.New(s.client, host.NewRPCHost(conn), cfg, s.opts.ConfigPath)
	defer s.ctrl.Close()
	h.bind(s.ctrl)

	if s.opts.ConfigPath != "" {
		watcher, err := config.NewWatcher(s.opts.ConfigPath, s.ctrl.OnConfigChanged)
		if err != nil {
			slog.Warn("Config file watching disabled", "error", err)
		} else {
			defer watcher.Close()
		}
	}

	if s.opts.MCPAddr != "" {
		stop, err := s.serveMCP(s.opts.MCPAddr)
		if err != nil {
			return fmt.Errorf("failed to start MCP server: %w", err)
		}
		defer stop()
	}

	slog.Info("Symbol line engine ready", "workspace_root", s.opts.WorkspaceRoot)

	go func() {
		<-conn.DisconnectNotify()
		s.ctrl.Close()
	}()

	s.ctrl.Run(ctx)
	return nil
}

// stdioStream adapts stdin/stdout to the jsonrpc2 stream interface.
type stdioStream struct{}

func (stdioStream) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioStream) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioStream) Close() error {
	if err := os.Stdin.Close(); err != nil && err != io.EOF {
		return err
	}
	return os.Stdout.Close()
}
