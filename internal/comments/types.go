package comments

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Comment is a server-owned comment record.
type Comment struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Rating   int64  `json:"rating"`
	Date     string `json:"date"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// HasImage reports whether the comment carries an attachment.
func (c Comment) HasImage() bool { return c.ImageURL != "" }

// SortType is the server-side ordering of a comment collection.
type SortType string

const (
	SortDate   SortType = "date"
	SortRating SortType = "rating"
)

// ParseSortType maps s to a SortType. Anything other than "date" or
// "rating" is SortDate.
func ParseSortType(s string) SortType {
	if SortType(s) == SortRating {
		return SortRating
	}
	return SortDate
}

// PageSize limits how many comments a fetch returns. PageAll means no limit.
type PageSize int

// PageAll requests the full collection.
const PageAll PageSize = 0

const pageAllName = "all"

// ParsePageSize maps s to a PageSize. "all" and anything that is not a
// positive integer give PageAll.
func ParsePageSize(s string) PageSize {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return PageAll
	}
	return PageSize(n)
}

// All reports whether the size is unlimited.
func (p PageSize) All() bool { return p <= 0 }

// String returns the query form: a decimal count or "all".
func (p PageSize) String() string {
	if p.All() {
		return pageAllName
	}
	return strconv.Itoa(int(p))
}

// wireEntry is one element of the GET /comments response.
type wireEntry struct {
	Key   *wireKey     `json:"key"`
	Value *wireComment `json:"value"`
}

type wireComment struct {
	Text     string `json:"text"`
	Rating   int64  `json:"rating"`
	Date     string `json:"date"`
	ImageURL string `json:"imageURL"`
}

// wireKey accepts both string and integer ids; the datastore behind
// the service hands out numeric keys.
type wireKey string

func (k *wireKey) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*k = wireKey(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("comment key must be a string or integer: %w", err)
	}
	if _, err := n.Int64(); err != nil {
		return fmt.Errorf("comment key %s is not an integer", n)
	}
	*k = wireKey(n.String())
	return nil
}

// decodeList parses and validates a GET /comments body.
func decodeList(body []byte) ([]Comment, error) {
	// null unmarshals into a nil slice without error.
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("comments response is not a JSON array")
	}

	var entries []wireEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decoding comments: %w", err)
	}

	out := make([]Comment, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.Key == nil || *e.Key == "" {
			return nil, fmt.Errorf("comment %d has no key", i)
		}
		if e.Value == nil {
			return nil, fmt.Errorf("comment %s has no value", *e.Key)
		}
		id := string(*e.Key)
		if seen[id] {
			return nil, fmt.Errorf("duplicate comment key %s", id)
		}
		seen[id] = true
		out = append(out, Comment{
			ID:       id,
			Text:     e.Value.Text,
			Rating:   e.Value.Rating,
			Date:     e.Value.Date,
			ImageURL: e.Value.ImageURL,
		})
	}
	return out, nil
}
