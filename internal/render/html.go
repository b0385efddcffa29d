package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/ziadkadry99/commentsync/internal/controller"
)

// HTML renders rows as the comment list markup of the portfolio page.
// Comment text is markdown; raw HTML inside it is dropped.
type HTML struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

// NewHTML creates an HTML renderer. style names the chroma style used
// for fenced code blocks; empty means "github".
func NewHTML(style string) *HTML {
	if style == "" {
		style = "github"
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
			),
		),
	)
	return &HTML{
		md:   md,
		tmpl: template.Must(template.New("list").Parse(listTemplate)),
	}
}

type htmlRow struct {
	Row
	Body         template.HTML
	SafeImageURL string // empty when Row.ImageURL is not safe to load
}

type listData struct {
	Rows     []htmlRow
	Sort     string
	PageSize string
}

// Fragment renders the <ul class="comments-list"> element for rows.
func (h *HTML) Fragment(rows []Row, p controller.Preferences) (string, error) {
	data := listData{Sort: string(p.Sort), PageSize: p.PageSize.String()}
	for _, r := range rows {
		var body bytes.Buffer
		if err := h.md.Convert([]byte(r.Text), &body); err != nil {
			return "", fmt.Errorf("converting comment %s: %w", r.Key, err)
		}
		data.Rows = append(data.Rows, htmlRow{
			Row:          r,
			Body:         template.HTML(body.String()),
			SafeImageURL: safeImageURL(r.ImageURL),
		})
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering comment list: %w", err)
	}
	return buf.String(), nil
}

// safeImageURL keeps only absolute http(s) URLs and server-relative paths.
func safeImageURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch {
	case u.Scheme == "http" || u.Scheme == "https":
		return u.String()
	case u.Scheme == "" && u.Host == "" && len(u.Path) > 0 && u.Path[0] == '/':
		return u.String()
	}
	return ""
}

const listTemplate = `<ul class="comments-list" data-sort="{{.Sort}}" data-quantity="{{.PageSize}}">
{{- range .Rows}}
  <li class="comment" id="{{.Key}}">
    <div class="vote-btns">
      <button class="upvote-btn" type="button" data-action="vote" data-upvote="true" data-id="{{.Key}}">▲</button>
      <p class="rating">{{.Rating}}</p>
      <button class="downvote-btn" type="button" data-action="vote" data-upvote="false" data-id="{{.Key}}">▼</button>
    </div>
    <button class="delete-btn" type="button" data-action="delete" data-id="{{.Key}}">✕</button>
    <div class="comment-content">
      <div class="comment-text">{{.Body}}</div>
      {{- if .SafeImageURL}}
      <div class="comment-image-wrapper"><img class="comment-image" src="{{.SafeImageURL}}" alt=""></div>
      {{- end}}
      <p class="comment-date">{{.Date}}</p>
    </div>
  </li>
{{- end}}
</ul>`
