package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/weldyapp/weldy/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the troubleshooting knowledge base as tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := validConfig()
		if err != nil {
			return err
		}
		a, err := buildApp(c)
		if err != nil {
			return err
		}
		index, err := buildIndex(context.Background(), c, a.kb)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "weldy MCP server started on stdio (causes=%d, search=%t)\n", len(a.kb.Causes), index != nil)

		srv := mcpserver.NewServer(a.kb, a.resolver, index)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
