// Package auth asks the Auth Service who the current user is and turns
// the answer into the sign-in/logout navigation button.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/commentsync/internal/comments"
	"github.com/ziadkadry99/commentsync/internal/prefs"
)

// Status is the Auth Service's view of the current user.
type Status struct {
	LoggedIn  bool   `json:"isLoggedIn"`
	LoginURL  string `json:"loginUrl,omitempty"`
	LogoutURL string `json:"logoutUrl,omitempty"`
	ID        string `json:"id,omitempty"`
}

// NavButton describes the login/logout control in the navigation bar.
type NavButton struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// NavButtonFor returns "Logout" for a signed-in user, "Sign in" otherwise.
func NavButtonFor(s Status) NavButton {
	if s.LoggedIn {
		return NavButton{Label: "Logout", Href: s.LogoutURL}
	}
	return NavButton{Label: "Sign in", Href: s.LoginURL}
}

// Client queries GET /auth.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	log        *zap.Logger
}

// NewClient creates a Client for the service rooted at baseURL. log may be nil.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Status fetches the current login state.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/auth", nil)
	if err != nil {
		return nil, fmt.Errorf("building auth request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	b, err := comments.Send(c.HTTPClient, req, "auth", c.log)
	if err != nil {
		c.log.Debug("auth status request failed", zap.Error(err))
		return nil, err
	}

	// The service reports the numeric user id as a string, but be lenient.
	var raw struct {
		LoggedIn  *bool           `json:"isLoggedIn"`
		LoginURL  string          `json:"loginUrl"`
		LogoutURL string          `json:"logoutUrl"`
		ID        json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil || raw.LoggedIn == nil {
		if err == nil {
			err = fmt.Errorf("missing isLoggedIn")
		}
		return nil, &comments.RequestError{Op: "auth", Kind: comments.ErrMalformed, Status: http.StatusOK, Err: err}
	}

	s := &Status{LoggedIn: *raw.LoggedIn, LoginURL: raw.LoginURL, LogoutURL: raw.LogoutURL}
	if len(raw.ID) > 0 && string(raw.ID) != "null" {
		var id string
		if json.Unmarshal(raw.ID, &id) != nil {
			id = string(raw.ID)
		}
		s.ID = id
	}
	c.log.Debug("auth status", zap.Bool("logged_in", s.LoggedIn), zap.String("user_id", s.ID))
	return s, nil
}

// Sync fetches the login state and remembers the signed-in user's id
// in the preference store.
func Sync(ctx context.Context, c *Client, store *prefs.Store) (*Status, NavButton, error) {
	s, err := c.Status(ctx)
	if err != nil {
		return nil, NavButton{}, err
	}
	if s.LoggedIn && s.ID != "" {
		store.Set(ctx, prefs.CurrentUserID, s.ID)
	}
	return s, NavButtonFor(*s), nil
}
