package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/shiori/internal/adapters/driving/mcp"
	"github.com/custodia-labs/shiori/internal/core/domain"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so an AI assistant can ground
its answers in the knowledge directory.

By default, the server communicates over stdio using JSON-RPC.

Use --port to start an HTTP server instead. HTTP clients must send
"Authorization: Bearer <password>", where the password is read from the
environment variable named by mcp.password_env (SITE_PASSWORD by default).
The server refuses to start if that variable is empty.

Examples:
  # Stdio mode
  shiori mcp serve

  # HTTP mode
  SITE_PASSWORD=secret shiori mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "shiori": {
        "command": "/path/to/shiori",
        "args": ["mcp", "serve", "--dir", "/path/to/knowledge"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search: searchService,
		Corpus: corpusService,
	})
	if err != nil {
		return err
	}

	startWatcher(cmd.Context())

	if port <= 0 {
		return server.Run(cmd.Context())
	}

	opts := mcp.HTTPOptions{Addr: fmt.Sprintf(":%d", port)}
	if settingsService != nil {
		settings := settingsService.Get()
		opts.Password = os.Getenv(settings.MCP.PasswordEnv)
		opts.RateLimit = settings.MCP.RateLimit
		opts.Burst = settings.MCP.Burst
	}

	if strings.TrimSpace(opts.Password) == "" {
		return fmt.Errorf("%w (set $%s)", mcp.ErrMissingPassword, passwordEnv())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", opts.Addr)
	return server.RunHTTP(cmd.Context(), opts)
}

func passwordEnv() string {
	if settingsService == nil {
		return domain.DefaultSettings().MCP.PasswordEnv
	}
	return settingsService.Get().MCP.PasswordEnv
}
