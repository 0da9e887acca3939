package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmcp "github.com/corpsite/corpsite/internal/mcp"
	"github.com/corpsite/corpsite/internal/service"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server for AI agents",
		Long: `Start a Model Context Protocol (MCP) server that exposes the published site
content and the contact inbox as tools for AI agents. Supports stdio (default)
and streamable HTTP transports.

In stdio mode, the MCP server communicates over stdin/stdout using JSON-RPC,
suitable for clients that launch it as a subprocess.

In HTTP mode every request needs "Authorization: Bearer <token>" with a token
from POST /api/auth/login, and the server binds to loopback by default.`,
		Example: `  corpsite mcp                               # stdio mode
  corpsite mcp --transport http --addr 127.0.0.1:8081  # streamable HTTP mode`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP()
		},
	}

	cmd.Flags().String("transport", "stdio", "Transport mode: stdio or http")
	cmd.Flags().String("addr", "127.0.0.1:8081", "HTTP listen address (only used with --transport http)")

	viper.BindPFlag("mcp.transport", cmd.Flags().Lookup("transport"))
	viper.BindPFlag("mcp.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runMCP() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	mcpSrv := cmcp.NewMCPServer(st, versionString(), logger)

	switch cfg.MCP.Transport {
	case "stdio":
		return mcpSrv.ServeStdio()
	case "http":
		secret, err := jwtSecret(cfg, logger)
		if err != nil {
			return err
		}
		expiry, _ := cfg.JWTExpiry()
		codec, err := service.NewTokenCodec(secret, expiry)
		if err != nil {
			return fmt.Errorf("init token codec: %w", err)
		}
		return mcpSrv.ServeHTTP(cfg.MCP.Addr, codec)
	default:
		return fmt.Errorf("unsupported transport %q; use 'stdio' or 'http'", cfg.MCP.Transport)
	}
}
