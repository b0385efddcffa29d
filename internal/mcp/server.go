// Package mcp exposes the comment list and its mutations as MCP tools.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/commentsync/internal/controller"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Controller is the subset of *controller.Controller the tools call.
type Controller interface {
	Refresh(ctx context.Context, sortType, pageSize string) error
	Add(ctx context.Context, text string) error
	Vote(ctx context.Context, id string, isUpvote bool) error
	Delete(ctx context.Context, id string) error
	SelectSort(ctx context.Context, sortType string) error
	SelectPageSize(ctx context.Context, pageSize string) error
	Preferences() controller.Preferences
	Snapshot() controller.Snapshot
}

// Server wraps an MCP server that drives a comment controller.
type Server struct {
	ctrl Controller
	mcp  *server.MCPServer
}

// NewServer creates a new MCP server around ctrl.
func NewServer(ctrl Controller) *Server {
	s := &Server{ctrl: ctrl}

	s.mcp = server.NewMCPServer(
		"commentsync",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(listCommentsTool, s.handleListComments)
	s.mcp.AddTool(addCommentTool, s.handleAddComment)
	s.mcp.AddTool(voteCommentTool, s.handleVoteComment)
	s.mcp.AddTool(deleteCommentTool, s.handleDeleteComment)
	s.mcp.AddTool(setSortTool, s.handleSetSort)
	s.mcp.AddTool(setPageSizeTool, s.handleSetPageSize)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
