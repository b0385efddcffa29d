// Package controller keeps a displayed comment list in step with the
// Comment Service and with the user's persisted display preferences.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/commentsync/internal/comments"
	"github.com/ziadkadry99/commentsync/internal/prefs"
)

// DefaultTimeout bounds every Comment Service call made by the controller.
const DefaultTimeout = 5 * time.Second

var (
	// ErrSuperseded is returned by a refresh whose result was discarded
	// because a newer refresh was issued after it.
	ErrSuperseded = errors.New("refresh superseded by a newer request")
	// ErrNoCommentID is returned by mutations called without a target.
	ErrNoCommentID = errors.New("comment id is required")
	// ErrNoCommentText is returned by Add called with blank text.
	ErrNoCommentText = errors.New("comment text is required")
)

// SyncError is the single user-facing failure signal.
type SyncError struct {
	Op  string // "refresh", "add", "vote" or "delete"
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("could not update comments: %s: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// Service is the Comment Service as the controller uses it.
type Service interface {
	List(ctx context.Context, sort comments.SortType, size comments.PageSize) ([]comments.Comment, error)
	Add(ctx context.Context, text string) error
	Vote(ctx context.Context, id string, upvote bool) error
	Delete(ctx context.Context, id string) error
}

// State of the displayed list.
type State int

const (
	Idle State = iota
	Loading
)

func (s State) String() string {
	if s == Loading {
		return "loading"
	}
	return "idle"
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for failure and ordering events.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithTimeout bounds each service call. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// Controller orchestrates fetch/render cycles and vote/delete mutations.
// Mutations are never applied locally: each success is followed by a
// full refresh, so ratings and ordering always come from the server.
type Controller struct {
	svc     Service
	store   *prefs.Store
	view    View
	log     *zap.Logger
	timeout time.Duration

	mu      sync.Mutex
	active  Preferences
	shown   Preferences
	current []comments.Comment
	state   State
	seq     uint64
	cancel  context.CancelFunc
}

// New creates a Controller, loading display preferences from store once.
func New(ctx context.Context, svc Service, store *prefs.Store, view View, opts ...Option) *Controller {
	if view == nil {
		view = nopView{}
	}
	c := &Controller{
		svc:     svc,
		store:   store,
		view:    view,
		log:     zap.NewNop(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.active = LoadPreferences(ctx, store)
	c.shown = c.active
	return c
}

// Start performs the initial refresh with the loaded preferences.
func (c *Controller) Start(ctx context.Context) error {
	return c.refresh(ctx, nil)
}

// Refresh fetches the collection for sortType and pageSize and replaces
// the displayed list. Unknown sort types mean "date"; page sizes that
// are not a positive integer mean "all". The active preferences are
// left alone.
func (c *Controller) Refresh(ctx context.Context, sortType, pageSize string) error {
	p := Preferences{
		Sort:     comments.ParseSortType(sortType),
		PageSize: comments.ParsePageSize(pageSize),
	}
	return c.refresh(ctx, func(*Preferences) Preferences { return p })
}

// refresh fetches with the preferences returned by choose, or the active
// ones if choose is nil. choose runs under c.mu together with taking the
// sequence number, so the latest refresh always carries the latest
// active preferences.
func (c *Controller) refresh(ctx context.Context, choose func(active *Preferences) Preferences) error {
	c.mu.Lock()
	p := c.active
	if choose != nil {
		p = choose(&c.active)
	}
	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	rctx, cancel := c.withTimeout(ctx)
	c.cancel = cancel
	c.state = Loading
	c.view.Loading(p)
	c.mu.Unlock()
	defer cancel()

	list, err := c.svc.List(rctx, p.Sort, p.PageSize)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.log.Debug("discarding stale comment list",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", c.seq),
			zap.String("sort", string(p.Sort)),
			zap.Stringer("page_size", p.PageSize),
		)
		return ErrSuperseded
	}

	c.cancel = nil
	c.state = Idle
	if err != nil {
		return c.fail("refresh", err)
	}

	c.current = list
	c.shown = p
	c.view.Render(cloneList(list), p)
	return nil
}

// Add posts a new comment, then refreshes with the active preferences.
func (c *Controller) Add(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.fail("add", ErrNoCommentText)
	}
	return c.mutate(ctx, "add", func(ctx context.Context) error {
		return c.svc.Add(ctx, text)
	})
}

// Vote raises or lowers the rating of comment id, then refreshes with
// the active preferences. A failed vote triggers no refresh.
func (c *Controller) Vote(ctx context.Context, id string, isUpvote bool) error {
	if id == "" {
		return c.missingID("vote")
	}
	return c.mutate(ctx, "vote", func(ctx context.Context) error {
		return c.svc.Vote(ctx, id, isUpvote)
	}, zap.String("comment_id", id), zap.Bool("upvote", isUpvote))
}

// Delete removes comment id, then refreshes with the active preferences.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if id == "" {
		return c.missingID("delete")
	}
	return c.mutate(ctx, "delete", func(ctx context.Context) error {
		return c.svc.Delete(ctx, id)
	}, zap.String("comment_id", id))
}

func (c *Controller) missingID(op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fail(op, ErrNoCommentID)
}

func (c *Controller) mutate(ctx context.Context, op string, call func(context.Context) error, fields ...zap.Field) error {
	mctx, cancel := c.withTimeout(ctx)
	err := call(mctx)
	cancel()
	if err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.fail(op, err)
	}

	c.log.Info("comment updated", append([]zap.Field{zap.String("op", op)}, fields...)...)
	return c.refresh(ctx, nil)
}

// SelectSort persists the sort type and refreshes with it and the
// active page size.
func (c *Controller) SelectSort(ctx context.Context, sortType string) error {
	sort := comments.ParseSortType(sortType)
	return c.refresh(ctx, func(active *Preferences) Preferences {
		c.store.Set(ctx, prefs.SortType, string(sort))
		active.Sort = sort
		return *active
	})
}

// SelectPageSize persists the page size and refreshes with it and the
// active sort type.
func (c *Controller) SelectPageSize(ctx context.Context, pageSize string) error {
	size := comments.ParsePageSize(pageSize)
	return c.refresh(ctx, func(active *Preferences) Preferences {
		c.store.Set(ctx, prefs.PageSize, size.String())
		active.PageSize = size
		return *active
	})
}

// Preferences returns the active display preferences.
func (c *Controller) Preferences() Preferences {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Snapshot is a copy of the controller's observable state.
type Snapshot struct {
	Comments []comments.Comment
	Shown    Preferences // preferences the displayed list was fetched with
	Active   Preferences
	State    State
}

// Snapshot returns the currently displayed list and state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Comments: cloneList(c.current),
		Shown:    c.shown,
		Active:   c.active,
		State:    c.state,
	}
}

// fail must be called with c.mu held.
func (c *Controller) fail(op string, err error) error {
	serr := &SyncError{Op: op, Err: err}
	c.log.Warn("could not update comments", zap.String("op", op), zap.Error(err))
	c.view.Fail(serr)
	return serr
}

func (c *Controller) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func cloneList(list []comments.Comment) []comments.Comment {
	if list == nil {
		return nil
	}
	out := make([]comments.Comment, len(list))
	copy(out, list)
	return out
}
