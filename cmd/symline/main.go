package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"symline/internal/logging"
	"symline/internal/server"
	"symline/pkg/project"
)

var (
	flagWorkspaceRoot string
	flagServerCmd     string
	flagConfig        string
	flagMCPAddr       string
	flagLogLevel      string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           project.Name,
		Short:         "Breadcrumb symbol line engine for LSP-capable editors",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the symbol line engine over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(flagLogLevel)

			if stat, err := os.Stat(flagWorkspaceRoot); err != nil || !stat.IsDir() {
				return fmt.Errorf("invalid workspace root: %s", flagWorkspaceRoot)
			}
			root, err := filepath.Abs(flagWorkspaceRoot)
			if err != nil {
				return fmt.Errorf("failed to resolve workspace root: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			engine := server.NewEngineServer(server.Options{
				WorkspaceRoot: root,
				ServerCmd:     flagServerCmd,
				ConfigPath:    flagConfig,
				MCPAddr:       flagMCPAddr,
			})
			return engine.Serve(ctx)
		},
	}
	serve.Flags().StringVar(&flagWorkspaceRoot, "workspace-root", ".", "Root directory of the workspace")
	serve.Flags().StringVar(&flagServerCmd, "server-cmd", "gopls serve", "Language server command line")
	serve.Flags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	serve.Flags().StringVar(&flagMCPAddr, "mcp-addr", "", "Serve MCP tools over SSE on this address (disabled when empty)")
	serve.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	return serve
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the engine version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", project.Name, project.Version)
		},
	}
}
