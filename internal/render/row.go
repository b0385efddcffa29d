// Package render turns comments into row descriptors and draws them on
// concrete surfaces (terminal, HTML).
package render

import (
	"github.com/ziadkadry99/commentsync/internal/comments"
)

// ControlKind identifies a per-row control.
type ControlKind string

const (
	Upvote   ControlKind = "upvote"
	Downvote ControlKind = "downvote"
	Remove   ControlKind = "delete"
)

// Control is an interactive element of a row, targeting one comment.
type Control struct {
	Kind      ControlKind `json:"kind"`
	CommentID string      `json:"commentId"`
	Label     string      `json:"label"`
}

// Row describes how one comment is displayed. Key is the comment id.
type Row struct {
	Key      string    `json:"key"`
	Text     string    `json:"text"`
	Rating   int64     `json:"rating"`
	Date     string    `json:"date"`
	ImageURL string    `json:"imageUrl,omitempty"`
	Controls []Control `json:"controls"`
}

// RowFor builds the row for c. It has no side effects.
func RowFor(c comments.Comment) Row {
	return Row{
		Key:      c.ID,
		Text:     c.Text,
		Rating:   c.Rating,
		Date:     c.Date,
		ImageURL: c.ImageURL,
		Controls: []Control{
			{Kind: Upvote, CommentID: c.ID, Label: "▲"},
			{Kind: Downvote, CommentID: c.ID, Label: "▼"},
			{Kind: Remove, CommentID: c.ID, Label: "✕"},
		},
	}
}

// Rows builds rows for list, preserving server order.
func Rows(list []comments.Comment) []Row {
	rows := make([]Row, 0, len(list))
	for _, c := range list {
		rows = append(rows, RowFor(c))
	}
	return rows
}
