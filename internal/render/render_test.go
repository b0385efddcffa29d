package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ziadkadry99/commentsync/internal/comments"
	"github.com/ziadkadry99/commentsync/internal/controller"
)

func TestRowFor(t *testing.T) {
	c := comments.Comment{ID: "c1", Text: "hello", Rating: 3, Date: "Jul 1", ImageURL: "https://img/x.png"}
	row := RowFor(c)

	if row.Key != "c1" || row.Rating != 3 || row.ImageURL != c.ImageURL {
		t.Errorf("row = %+v", row)
	}
	kinds := []ControlKind{}
	for _, ctl := range row.Controls {
		if ctl.CommentID != "c1" {
			t.Errorf("control %s targets %q, want c1", ctl.Kind, ctl.CommentID)
		}
		kinds = append(kinds, ctl.Kind)
	}
	if want := []ControlKind{Upvote, Downvote, Remove}; !reflect.DeepEqual(kinds, want) {
		t.Errorf("controls = %v, want %v", kinds, want)
	}
	if !reflect.DeepEqual(RowFor(c), row) {
		t.Error("RowFor is not deterministic")
	}
}

func TestRowsKeepsOrder(t *testing.T) {
	rows := Rows([]comments.Comment{{ID: "b"}, {ID: "a"}, {ID: "c"}})
	var keys []string
	for _, r := range rows {
		keys = append(keys, r.Key)
	}
	if want := []string{"b", "a", "c"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
}

type recordedActions struct {
	calls []string
}

func (r *recordedActions) Vote(_ context.Context, id string, up bool) error {
	if up {
		r.calls = append(r.calls, "up:"+id)
	} else {
		r.calls = append(r.calls, "down:"+id)
	}
	return nil
}

func (r *recordedActions) Delete(_ context.Context, id string) error {
	r.calls = append(r.calls, "delete:"+id)
	return nil
}

func TestBind(t *testing.T) {
	rows := Rows([]comments.Comment{{ID: "c1", Text: "one"}, {ID: "c2", Text: "two"}})
	actions := &recordedActions{}

	bindings := Bind(rows, actions)
	if len(bindings) != 6 {
		t.Fatalf("bindings = %d, want 6", len(bindings))
	}
	for _, b := range bindings {
		if err := b.Invoke(context.Background()); err != nil {
			t.Fatalf("Invoke %q: %v", b.Label, err)
		}
	}
	want := []string{"up:c1", "down:c1", "delete:c1", "up:c2", "down:c2", "delete:c2"}
	if !reflect.DeepEqual(actions.calls, want) {
		t.Errorf("calls = %v, want %v", actions.calls, want)
	}
}

func TestBindUnknownControl(t *testing.T) {
	b := BindControl(Control{Kind: "pin", CommentID: "c1"}, &recordedActions{}, "x")
	if err := b.Invoke(context.Background()); err == nil {
		t.Error("expected error for unknown control kind")
	}
}

func TestHTMLFragment(t *testing.T) {
	h := NewHTML("")
	rows := Rows([]comments.Comment{
		{ID: "c1", Text: "**bold** <script>alert(1)</script>", Rating: -2, Date: "Jul 1"},
		{ID: "c2", Text: "pic", ImageURL: "https://img.example/a.png"},
		{ID: "c3", Text: "bad pic", ImageURL: "javascript:alert(1)"},
		{ID: "c4", Text: "inline pic", ImageURL: "data:image/png;base64,AAAA"},
	})

	out, err := h.Fragment(rows, controller.Preferences{Sort: comments.SortRating, PageSize: 5})
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}

	for _, want := range []string{
		`data-sort="rating"`,
		`data-quantity="5"`,
		`id="c1"`,
		`<strong>bold</strong>`,
		`<p class="rating">-2</p>`,
		`src="https://img.example/a.png"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("fragment missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<script>") {
		t.Error("raw HTML from comment text must not be rendered")
	}
	if strings.Contains(out, "javascript:") || strings.Contains(out, "data:image") {
		t.Error("unsafe image URL must be dropped")
	}
	if got := strings.Count(out, `class="comment-image"`); got != 1 {
		t.Errorf("images = %d, want 1", got)
	}
}

func TestSafeImageURL(t *testing.T) {
	tests := map[string]string{
		"":                         "",
		"https://a/b.png":          "https://a/b.png",
		"http://a/b.png":           "http://a/b.png",
		"/serve?blob-key=1":        "/serve?blob-key=1",
		"javascript:alert(1)":      "",
		"data:image/png;base64,AA": "",
		"relative.png":             "",
	}
	for in, want := range tests {
		if got := safeImageURL(in); got != want {
			t.Errorf("safeImageURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTextViewTable(t *testing.T) {
	var out, errOut bytes.Buffer
	v := &TextView{Out: &out, Err: &errOut, Format: FormatTable}

	v.Render([]comments.Comment{{ID: "c1", Text: "multi\nline", Rating: 7, Date: "Jul 1"}}, controller.DefaultPreferences)
	got := out.String()
	if !strings.Contains(got, "sort=date, quantity=all") || !strings.Contains(got, "multi line") || !strings.Contains(got, "7") {
		t.Errorf("table output:\n%s", got)
	}

	v.Fail(&controller.SyncError{Op: "refresh", Err: errors.New("boom")})
	if !strings.Contains(errOut.String(), "could not update comments") {
		t.Errorf("error output = %q", errOut.String())
	}
}

func TestTextViewEmpty(t *testing.T) {
	var out bytes.Buffer
	v := &TextView{Out: &out, Err: &out}
	v.Render(nil, controller.DefaultPreferences)
	if !strings.Contains(out.String(), "No comments.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestTextViewJSON(t *testing.T) {
	var out bytes.Buffer
	v := &TextView{Out: &out, Err: &out, Format: FormatJSON}
	v.Render([]comments.Comment{{ID: "c1", Rating: 2}}, controller.DefaultPreferences)

	var rows []Row
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if len(rows) != 1 || rows[0].Key != "c1" || len(rows[0].Controls) != 3 {
		t.Errorf("rows = %+v", rows)
	}
}
