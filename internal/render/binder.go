package render

import (
	"context"
	"fmt"
)

// Actions are the mutation entry points row controls are wired to.
type Actions interface {
	Vote(ctx context.Context, id string, isUpvote bool) error
	Delete(ctx context.Context, id string) error
}

// Binding is a row control attached to the action it triggers.
type Binding struct {
	Control Control
	Label   string
	Invoke  func(ctx context.Context) error
}

// Bind attaches every control of rows to actions.
func Bind(rows []Row, actions Actions) []Binding {
	var out []Binding
	for _, row := range rows {
		for _, ctl := range row.Controls {
			out = append(out, BindControl(ctl, actions, summary(row)))
		}
	}
	return out
}

// BindControl attaches a single control. Unknown kinds yield a binding
// whose Invoke reports an error.
func BindControl(ctl Control, actions Actions, title string) Binding {
	b := Binding{Control: ctl, Label: fmt.Sprintf("%s %s %s", ctl.Label, verb(ctl.Kind), title)}
	id := ctl.CommentID
	switch ctl.Kind {
	case Upvote:
		b.Invoke = func(ctx context.Context) error { return actions.Vote(ctx, id, true) }
	case Downvote:
		b.Invoke = func(ctx context.Context) error { return actions.Vote(ctx, id, false) }
	case Remove:
		b.Invoke = func(ctx context.Context) error { return actions.Delete(ctx, id) }
	default:
		b.Invoke = func(context.Context) error { return fmt.Errorf("unknown control %q", ctl.Kind) }
	}
	return b
}

func verb(k ControlKind) string {
	switch k {
	case Upvote:
		return "upvote"
	case Downvote:
		return "downvote"
	case Remove:
		return "delete"
	}
	return string(k)
}

func summary(r Row) string {
	const limit = 40
	text := []rune(r.Text)
	if len(text) > limit {
		text = append(text[:limit-1], '…')
	}
	return fmt.Sprintf("[%d] %s", r.Rating, string(text))
}
