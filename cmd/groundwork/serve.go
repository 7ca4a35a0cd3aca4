package main

import (
	"context"

	"github.com/spf13/cobra"

	"groundwork/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE:  runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	server := mcp.NewServer(version)
	return server.Run(context.Background(), &sdk.StdioTransport{})
}
