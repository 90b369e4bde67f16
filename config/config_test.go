package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "REQUEST_TIMEOUT", "OPENAI_API_KEY", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "3001" || cfg.DBPath != "./godolist.db" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("timeout = %v", cfg.RequestTimeout)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"*"}) {
		t.Fatalf("origins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.AssistantEnabled() {
		t.Fatal("assistant should be off without an API key")
	}
}

func TestLoadEnvFile(t *testing.T) {
	// t.Setenv restores the originals; unset so the file can supply them.
	for _, key := range []string{"PORT", "DB_PATH", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	// Variables already in the environment win over the file.
	t.Setenv("OPENAI_MODEL", "from-env")

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "PORT=8080\nDB_PATH=/tmp/test.db\nOPENAI_MODEL=from-file\nCORS_ALLOWED_ORIGINS=http://a.test, http://b.test\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" || cfg.DBPath != "/tmp/test.db" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.OpenAIModel != "from-env" {
		t.Fatalf("environment should win, got %q", cfg.OpenAIModel)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Fatalf("origins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}
}

func TestBadTimeout(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected parse error")
	}
}
