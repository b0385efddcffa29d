package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/commentsync/internal/controller"
	"github.com/ziadkadry99/commentsync/internal/render"
)

func (s *Server) handleListComments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	active := s.ctrl.Preferences()
	sort := request.GetString("sort", string(active.Sort))
	quantity := request.GetString("quantity", active.PageSize.String())

	return s.result(s.ctrl.Refresh(ctx, sort, quantity), "")
}

func (s *Server) handleAddComment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil || strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	err = s.ctrl.Add(ctx, text)
	return s.result(err, "Comment added.")
}

func (s *Server) handleVoteComment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil || id == "" {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	direction := request.GetString("direction", "up")
	if direction != "up" && direction != "down" {
		return mcp.NewToolResultError(fmt.Sprintf("invalid direction %q: want up or down", direction)), nil
	}

	err = s.ctrl.Vote(ctx, id, direction == "up")
	return s.result(err, fmt.Sprintf("Voted %s on comment %s.", direction, id))
}

func (s *Server) handleDeleteComment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil || id == "" {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	err = s.ctrl.Delete(ctx, id)
	return s.result(err, fmt.Sprintf("Deleted comment %s.", id))
}

func (s *Server) handleSetSort(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sort, err := request.RequireString("sort")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: sort"), nil
	}

	err = s.ctrl.SelectSort(ctx, sort)
	return s.result(err, fmt.Sprintf("Sort order set to %s.", s.ctrl.Preferences().Sort))
}

func (s *Server) handleSetPageSize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	quantity, err := request.RequireString("quantity")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: quantity"), nil
	}

	err = s.ctrl.SelectPageSize(ctx, quantity)
	return s.result(err, fmt.Sprintf("Page size set to %s.", s.ctrl.Preferences().PageSize))
}

// result turns the outcome of a controller call into a tool result
// holding the currently displayed list.
func (s *Server) result(err error, header string) (*mcp.CallToolResult, error) {
	if err != nil {
		if errors.Is(err, controller.ErrSuperseded) {
			return mcp.NewToolResultError("the list was refreshed by a newer request; call list_comments again"), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	snap := s.ctrl.Snapshot()
	var sb strings.Builder
	if header != "" {
		sb.WriteString(header)
		sb.WriteString("\n\n")
	}
	if err := render.WriteTable(&sb, render.Rows(snap.Comments), snap.Shown); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("formatting comments: %v", err)), nil
	}
	return mcp.NewToolResultText(sb.String()), nil
}
