package mcp

import (
	"context"

	"scurve-mcp/internal/config"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// ServerName is reported to MCP clients during initialization.
const ServerName = "scurve-mcp"

// Server holds the state for the MCP server. Tool calls share nothing but the
// read-only configuration.
type Server struct {
	cfg     *config.AppConfig
	version string
}

// NewServer creates a new MCP server.
func NewServer(cfg *config.AppConfig, version string) *Server {
	return &Server{cfg: cfg, version: version}
}

// Start serves MCP over stdio until the client disconnects or ctx ends.
func (s *Server) Start(ctx context.Context) error {
	server := s.build()
	log.Info().Int("tools", len(toolNames)).Msg("MCP server listening on stdio")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Error().Err(err).Msg("MCP server stopped")
		return err
	}
	return nil
}

func (s *Server) build() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: s.version}, nil)
	s.registerTools(server)
	return server
}
