package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/weldyapp/weldy/internal/engine"
	"github.com/weldyapp/weldy/internal/knowledge"
	"github.com/weldyapp/weldy/internal/recommend"
	"github.com/weldyapp/weldy/internal/search"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the troubleshooting knowledge base
// as tools.
type Server struct {
	kb       *knowledge.KnowledgeBase
	catalog  *engine.Catalog
	resolver *recommend.Resolver
	index    *search.Index
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server. index may be nil, in which case
// search_symptoms reports that search is unavailable.
func NewServer(kb *knowledge.KnowledgeBase, resolver *recommend.Resolver, index *search.Index) *Server {
	s := &Server{
		kb:       kb,
		catalog:  engine.NewCatalog(kb),
		resolver: resolver,
		index:    index,
	}

	s.mcp = server.NewMCPServer(
		"weldy",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listCombinationsTool, s.handleListCombinations)
	s.mcp.AddTool(causesForCombinationTool, s.handleCausesForCombination)
	s.mcp.AddTool(selectCauseTool, s.handleSelectCause)
	s.mcp.AddTool(recommendTool, s.handleRecommend)
	s.mcp.AddTool(thicknessPresetTool, s.handleThicknessPreset)
	s.mcp.AddTool(searchSymptomsTool, s.handleSearchSymptoms)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
