package render

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ziadkadry99/commentsync/internal/comments"
	"github.com/ziadkadry99/commentsync/internal/controller"
	"github.com/ziadkadry99/commentsync/internal/progress"
)

// Format selects how TextView writes a list.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatHTML  Format = "html"
)

// TextView writes each rendered list to Out and failures to Err.
type TextView struct {
	Out      io.Writer
	Err      io.Writer
	Format   Format
	HTML     *HTML
	Reporter progress.Reporter
}

var _ controller.View = (*TextView)(nil)

func (v *TextView) Loading(p controller.Preferences) {
	if v.Reporter != nil {
		v.Reporter.Start(fmt.Sprintf("Loading comments (sort=%s, quantity=%s)", p.Sort, p.PageSize))
	}
}

func (v *TextView) Render(list []comments.Comment, p controller.Preferences) {
	v.finish()
	if err := v.write(Rows(list), p); err != nil {
		fmt.Fprintf(v.Err, "Error: %v\n", err)
	}
}

func (v *TextView) Fail(err *controller.SyncError) {
	v.finish()
	fmt.Fprintf(v.Err, "Error: %v\n", err)
}

func (v *TextView) finish() {
	if v.Reporter != nil {
		v.Reporter.Finish()
	}
}

func (v *TextView) write(rows []Row, p controller.Preferences) error {
	switch v.Format {
	case FormatJSON:
		enc := json.NewEncoder(v.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case FormatHTML:
		h := v.HTML
		if h == nil {
			h = NewHTML("")
		}
		frag, err := h.Fragment(rows, p)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(v.Out, frag)
		return err
	default:
		return WriteTable(v.Out, rows, p)
	}
}

// WriteTable prints rows as an aligned table.
func WriteTable(w io.Writer, rows []Row, p controller.Preferences) error {
	fmt.Fprintf(w, "Comments (sort=%s, quantity=%s)\n", p.Sort, p.PageSize)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No comments.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRATING\tDATE\tTEXT")
	for _, r := range rows {
		text := r.Text
		if r.ImageURL != "" {
			text += " [image: " + r.ImageURL + "]"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.Key, r.Rating, r.Date, oneLine(text))
	}
	return tw.Flush()
}

func oneLine(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}
