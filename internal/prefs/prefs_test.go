package prefs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ziadkadry99/commentsync/internal/db"
)

func setupStore(t *testing.T) (*Store, *db.DB) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(NewSQLiteBackend(database), nil), database
}

func TestValue(t *testing.T) {
	if Absent.IsPresent() {
		t.Error("Absent.IsPresent() = true")
	}
	if got := Absent.Or("date"); got != "date" {
		t.Errorf("Absent.Or = %q, want date", got)
	}
	v := Present("")
	if s, ok := v.Get(); !ok || s != "" {
		t.Errorf("Present(\"\").Get() = %q, %v", s, ok)
	}
	if got := Present("rating").Or("date"); got != "rating" {
		t.Errorf("Present.Or = %q, want rating", got)
	}
}

func TestGetAbsent(t *testing.T) {
	store, _ := setupStore(t)
	if v := store.Get(context.Background(), SortType); v.IsPresent() {
		t.Errorf("Get on empty store = %v, want absent", v)
	}
}

func TestSetOverwrites(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.Set(ctx, SortType, "date")
	store.Set(ctx, SortType, "rating")

	if got := store.Get(ctx, SortType).Or(""); got != "rating" {
		t.Errorf("Get = %q, want rating", got)
	}
}

func TestSetIsDurable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()

	first, err := db.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	NewStore(NewSQLiteBackend(first), nil).Set(ctx, PageSize, "5")
	first.Close()

	second, err := db.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	got := NewStore(NewSQLiteBackend(second), nil).Get(ctx, PageSize)
	if s, ok := got.Get(); !ok || s != "5" {
		t.Errorf("after reopen Get = %v, want 5", got)
	}
}

type failingBackend struct {
	saves int
}

func (f *failingBackend) Load(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}

func (f *failingBackend) Save(context.Context, string, string) error {
	f.saves++
	return errors.New("disk gone")
}

func TestDegradesToMemory(t *testing.T) {
	backend := &failingBackend{}
	store := NewStore(backend, nil)
	ctx := context.Background()

	if v := store.Get(ctx, SortType); v.IsPresent() {
		t.Errorf("Get = %v, want absent", v)
	}
	if store.Durable() {
		t.Error("store should report degraded after a backend failure")
	}

	store.Set(ctx, SortType, "rating")
	store.Set(ctx, SortType, "date")
	if backend.saves != 0 {
		t.Errorf("degraded store still wrote to backend %d times", backend.saves)
	}
	if got := store.Get(ctx, SortType).Or(""); got != "date" {
		t.Errorf("Get = %q, want date", got)
	}
}

func TestNilBackendIsSessionOnly(t *testing.T) {
	store := NewStore(nil, nil)
	ctx := context.Background()

	store.Set(ctx, CurrentUserID, "42")
	if got := store.Get(ctx, CurrentUserID).Or(""); got != "42" {
		t.Errorf("Get = %q, want 42", got)
	}
	if store.Durable() {
		t.Error("nil backend store should not be durable")
	}
}
