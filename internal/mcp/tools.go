package mcp

import "github.com/mark3labs/mcp-go/mcp"

var listCommentsTool = mcp.NewTool("list_comments",
	mcp.WithDescription("Fetch the comment list from the Comment Service. Without arguments the saved display preferences are used; arguments apply to this fetch only."),
	mcp.WithString("sort",
		mcp.Description("Sort order"),
		mcp.Enum("date", "rating"),
	),
	mcp.WithString("quantity",
		mcp.Description(`Maximum number of comments, or "all"`),
	),
)

var addCommentTool = mcp.NewTool("add_comment",
	mcp.WithDescription("Post a new comment, then return the refreshed list."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Comment text (markdown)"),
	),
)

var voteCommentTool = mcp.NewTool("vote_comment",
	mcp.WithDescription("Upvote or downvote a comment, then return the refreshed list."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Comment id"),
	),
	mcp.WithString("direction",
		mcp.Description("Vote direction (default up)"),
		mcp.Enum("up", "down"),
	),
)

var deleteCommentTool = mcp.NewTool("delete_comment",
	mcp.WithDescription("Delete a comment, then return the refreshed list."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Comment id"),
	),
)

var setSortTool = mcp.NewTool("set_sort",
	mcp.WithDescription("Save the sort order preference and return the list sorted by it."),
	mcp.WithString("sort",
		mcp.Required(),
		mcp.Enum("date", "rating"),
	),
)

var setPageSizeTool = mcp.NewTool("set_page_size",
	mcp.WithDescription("Save how many comments to show and return the list truncated to it."),
	mcp.WithString("quantity",
		mcp.Required(),
		mcp.Description(`A positive number, or "all"`),
	),
)
