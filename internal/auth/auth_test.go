package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ziadkadry99/commentsync/internal/comments"
	"github.com/ziadkadry99/commentsync/internal/prefs"
)

func TestNavButtonFor(t *testing.T) {
	tests := []struct {
		status Status
		want   NavButton
	}{
		{Status{LoggedIn: true, LogoutURL: "/_ah/logout"}, NavButton{Label: "Logout", Href: "/_ah/logout"}},
		{Status{LoggedIn: false, LoginURL: "/_ah/login"}, NavButton{Label: "Sign in", Href: "/_ah/login"}},
	}
	for _, tt := range tests {
		if got := NavButtonFor(tt.status); got != tt.want {
			t.Errorf("NavButtonFor(%+v) = %+v, want %+v", tt.status, got, tt.want)
		}
	}
}

func TestSyncLoggedIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth" {
			t.Errorf("path = %q, want /auth", r.URL.Path)
		}
		w.Write([]byte(`{"isLoggedIn": true, "id": "185804764220139124118", "logoutUrl": "/logout?continue=/"}`))
	}))
	defer srv.Close()

	store := prefs.NewStore(nil, nil)
	status, button, err := Sync(context.Background(), NewClient(srv.URL, time.Second, nil), store)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if !status.LoggedIn || status.ID != "185804764220139124118" {
		t.Errorf("status = %+v", status)
	}
	if button.Label != "Logout" || button.Href != "/logout?continue=/" {
		t.Errorf("button = %+v", button)
	}
	if got := store.Get(context.Background(), prefs.CurrentUserID).Or(""); got != status.ID {
		t.Errorf("currentUserID = %q, want %q", got, status.ID)
	}
}

func TestSyncLoggedOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"isLoggedIn": false, "loginUrl": "/login"}`))
	}))
	defer srv.Close()

	store := prefs.NewStore(nil, nil)
	_, button, err := Sync(context.Background(), NewClient(srv.URL, time.Second, nil), store)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if button.Label != "Sign in" {
		t.Errorf("button = %+v", button)
	}
	if store.Get(context.Background(), prefs.CurrentUserID).IsPresent() {
		t.Error("currentUserID should not be stored for a signed-out user")
	}
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"rejected", http.StatusInternalServerError, "oops", comments.ErrRejected},
		{"malformed", http.StatusOK, "{", comments.ErrMalformed},
		{"missing flag", http.StatusOK, `{"loginUrl": "/login"}`, comments.ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second, nil).Status(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStatusSharesRequestHandling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID header")
		}
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "commentsync/") {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		http.Error(w, strings.Repeat("x", 500), http.StatusForbidden)
	}))
	defer srv.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	_, err := NewClient(srv.URL, time.Second, zap.New(core)).Status(context.Background())

	var reqErr *comments.RequestError
	if !errors.As(err, &reqErr) || reqErr.Op != "auth" || reqErr.Status != http.StatusForbidden {
		t.Fatalf("err = %v, want auth RequestError with status 403", err)
	}
	if len(err.Error()) > 400 {
		t.Errorf("error body not truncated: %d bytes", len(err.Error()))
	}
	if logs.FilterMessage("auth status request failed").Len() != 1 {
		t.Errorf("expected the failure to be logged, got %v", logs.All())
	}
	if logs.FilterField(zap.String("op", "auth")).Len() == 0 {
		t.Error("expected the service call to be logged with op=auth")
	}
}
