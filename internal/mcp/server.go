// Package mcp exposes the grounding pipeline to MCP clients: agents
// can ground a task file and inspect its predicate classification
// without shelling out to the CLI.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	mcp *sdk.Server
}

func NewServer(version string) *Server {
	s := &Server{
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "groundwork",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
