package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/CrowderSoup/godolist/client"
	"github.com/CrowderSoup/godolist/config"
	"github.com/CrowderSoup/godolist/database"
	"github.com/CrowderSoup/godolist/handlers"
	"github.com/CrowderSoup/godolist/models"
	"github.com/CrowderSoup/godolist/services"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := database.InitDB(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	srv := httptest.NewServer(handlers.NewRouter(handlers.Deps{
		Auth: services.NewAuthService("test-secret"),
		Data: database.NewDataService(db),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStartSignsInAndLoads(t *testing.T) {
	srv := newServer(t)
	cfg := &config.Config{APIBaseURL: srv.URL, RequestTimeout: 5 * time.Second}
	ctx := context.Background()

	// Seed the account through a first App.
	seed := New(cfg, client.Identity{Email: "ada@example.com"})
	if err := seed.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	folder, err := seed.Actions.CreateFolder(ctx, models.Record{"name": "Work"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := seed.Actions.CreateTask(ctx, models.Record{"title": "Plan", "listId": folder.ID}); err != nil {
		t.Fatal(err)
	}

	a := New(cfg, client.Identity{Email: "ada@example.com"})
	if err := a.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !a.Store.IsAuthenticated() || a.Client.Token() == "" {
		t.Fatal("not signed in")
	}
	if len(a.Store.Folders()) != 1 || len(a.Store.Tasks()) != 1 {
		t.Fatalf("loaded %d folders, %d tasks", len(a.Store.Folders()), len(a.Store.Tasks()))
	}
}

func TestStartRestoresSession(t *testing.T) {
	srv := newServer(t)
	cfg := &config.Config{APIBaseURL: srv.URL, RequestTimeout: 5 * time.Second}
	ctx := context.Background()

	first := New(cfg, client.Identity{Email: "ada@example.com"})
	if err := first.Start(ctx); err != nil {
		t.Fatal(err)
	}

	// No identity: only the token can authenticate.
	restored := New(cfg, client.Identity{}, client.WithToken(first.Client.Token()))
	if err := restored.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if u := restored.Store.User(); u == nil || u.Email != "ada@example.com" {
		t.Fatalf("user = %+v", u)
	}
}

func TestRequestTimeoutApplies(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()

	a := New(&config.Config{APIBaseURL: slow.URL, RequestTimeout: 50 * time.Millisecond}, client.Identity{Email: "ada@example.com"})
	start := time.Now()
	if err := a.Start(context.Background()); err == nil {
		t.Fatal("expected timeout")
	}
	if time.Since(start) > time.Second {
		t.Fatal("request timeout not applied")
	}
}
