package cmd

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ziadkadry99/commentsync/internal/render"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    render.Format
		wantErr bool
	}{
		{"table", render.FormatTable, false},
		{"json", render.FormatJSON, false},
		{"html", render.FormatHTML, false},
		{"yaml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := parseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("parseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadConfigServerOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".commentsync.yml")
	if err := os.WriteFile(path, []byte("server_url: http://example.com\ndata_dir: "+dir+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	oldCfg, oldServer := cfgFile, serverURL
	t.Cleanup(func() { cfgFile, serverURL = oldCfg, oldServer })

	cfgFile = path
	serverURL = ""
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.ServerURL != "http://example.com" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}

	serverURL = "https://comments.test"
	cfg, err = loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.ServerURL != "https://comments.test" {
		t.Errorf("ServerURL = %q, want override", cfg.ServerURL)
	}

	serverURL = "not a url"
	if _, err := loadConfig(); err == nil {
		t.Error("expected validation error for bad --server")
	}
}

func TestOpenAppDegradesWithoutDatabase(t *testing.T) {
	dir := t.TempDir()
	// A file where the data directory should be makes the database unopenable.
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, ".commentsync.yml")
	if err := os.WriteFile(path, []byte("server_url: http://example.com\ndata_dir: "+blocker+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	oldCfg, oldServer := cfgFile, serverURL
	t.Cleanup(func() { cfgFile, serverURL = oldCfg, oldServer })
	cfgFile, serverURL = path, ""

	a, err := openApp()
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	defer a.Close()

	if a.database != nil {
		t.Error("expected no database")
	}
	if a.store.Durable() {
		t.Error("expected session-only preference store")
	}
}

func TestAddCommandPostsJoinedText(t *testing.T) {
	var mu sync.Mutex
	var added []string
	var lists int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodPost:
			r.ParseForm()
			if r.PostForm.Get("action") != "add" {
				t.Errorf("action = %q", r.PostForm.Get("action"))
			}
			added = append(added, r.PostForm.Get("text"))
		case http.MethodGet:
			lists++
			w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, ".commentsync.yml")
	if err := os.WriteFile(path, []byte("server_url: "+srv.URL+"\ndata_dir: "+dir+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	oldCfg, oldServer := cfgFile, serverURL
	t.Cleanup(func() {
		cfgFile, serverURL = oldCfg, oldServer
		rootCmd.SetArgs(nil)
	})
	serverURL = ""

	rootCmd.SetArgs([]string{"add", "--config", path, "nice", "portfolio"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("add: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(added) != 1 || added[0] != "nice portfolio" {
		t.Errorf("added = %v, want [nice portfolio]", added)
	}
	if lists != 1 {
		t.Errorf("list fetches = %d, want 1", lists)
	}
}

func TestAddCommandRequiresText(t *testing.T) {
	if err := addCmd.Args(addCmd, nil); err == nil {
		t.Error("expected an error without text")
	}
}
