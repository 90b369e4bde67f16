package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CrowderSoup/godolist/database"
	"github.com/CrowderSoup/godolist/handlers"
	"github.com/CrowderSoup/godolist/services"
)

type fakeAnalyzer struct{}

func (fakeAnalyzer) AnalyzeTask(ctx context.Context, kind string, brief services.TaskBrief) (string, error) {
	return kind + ": " + brief.Title, nil
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := database.InitDB(filepath.Join(t.TempDir(), "cli.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	srv := httptest.NewServer(handlers.NewRouter(handlers.Deps{
		Auth:     services.NewAuthService("test-secret"),
		Data:     database.NewDataService(db),
		Analyzer: fakeAnalyzer{},
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env", "", "--email", "ada@example.com"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String() + errOut.String(), err
}

func TestCommands(t *testing.T) {
	srv := newServer(t)
	t.Setenv("API_BASE_URL", srv.URL)

	out, err := run(t, "add", "Write", "report", "--important")
	if err != nil {
		t.Fatalf("add: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Write report *") {
		t.Fatalf("add output %q", out)
	}
	if _, err := run(t, "add", "Buy milk"); err != nil {
		t.Fatal(err)
	}

	out, err = run(t, "tasks", "important")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Write report") || strings.Contains(out, "Buy milk") {
		t.Fatalf("important tasks %q", out)
	}

	out, err = run(t, "tasks", "--search", "MILK")
	if err != nil || !strings.Contains(out, "Buy milk") || strings.Contains(out, "Write report") {
		t.Fatalf("search output %q, %v", out, err)
	}

	// Task ids are assigned in order by the fresh database.
	out, err = run(t, "done", "2")
	if err != nil || !strings.Contains(out, "[x] 2") {
		t.Fatalf("done output %q, %v", out, err)
	}

	out, err = run(t, "process", "1", "--type", "summarize")
	if err != nil || strings.TrimSpace(out) != "summarize: Write report" {
		t.Fatalf("process output %q, %v", out, err)
	}
}

func TestEmailIsRequired(t *testing.T) {
	cmd := newRootCmd()
	var errOut bytes.Buffer
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--env", "", "tasks"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(errOut.String(), "--email is required") {
		t.Fatalf("stderr %q", errOut.String())
	}
}

func TestUnknownTask(t *testing.T) {
	srv := newServer(t)
	t.Setenv("API_BASE_URL", srv.URL)

	out, err := run(t, "done", "42")
	if err == nil || !strings.Contains(out, "task 42 not found") {
		t.Fatalf("output %q, %v", out, err)
	}
}
