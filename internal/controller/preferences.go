package controller

import (
	"context"

	"github.com/ziadkadry99/commentsync/internal/comments"
	"github.com/ziadkadry99/commentsync/internal/prefs"
)

// Preferences are the display settings a user picks and keeps across runs.
//
//	name      stored as   default
//	sortType  date|rating date
//	pageSize  N|all       all
type Preferences struct {
	Sort     comments.SortType
	PageSize comments.PageSize
}

// DefaultPreferences is what a first run sees.
var DefaultPreferences = Preferences{Sort: comments.SortDate, PageSize: comments.PageAll}

// LoadPreferences reads and normalises the stored display settings.
func LoadPreferences(ctx context.Context, store *prefs.Store) Preferences {
	p := DefaultPreferences
	if v, ok := store.Get(ctx, prefs.SortType).Get(); ok {
		p.Sort = comments.ParseSortType(v)
	}
	if v, ok := store.Get(ctx, prefs.PageSize).Get(); ok {
		p.PageSize = comments.ParsePageSize(v)
	}
	return p
}
