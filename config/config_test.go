package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if cfg.Server.Address() != "0.0.0.0:8080" {
		t.Fatalf("server address = %q", cfg.Server.Address())
	}
	if cfg.OpenAI.Timeout != 120*time.Second {
		t.Fatalf("timeout = %v", cfg.OpenAI.Timeout)
	}
	if cfg.LLM.Backend != "openai" || cfg.Database.Driver != "sqlite" {
		t.Fatalf("unexpected backend/driver: %q/%q", cfg.LLM.Backend, cfg.Database.Driver)
	}
	if cfg.Ollama.Models["o3"] == "" {
		t.Fatalf("expected default ollama model for o3")
	}
	if cfg.Nats.Enabled {
		t.Fatalf("nats should be disabled by default")
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
openai:
  apiKey: from-file
database:
  driver: postgres
  postgres:
    host: db
    port: "5433"
    user: bento
    password: secret
    database: menus
    sslmode: require
nats:
  enabled: true
  generatedSubject: test.generated
`)
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("SERVER_HOST", "127.0.0.1")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if cfg.OpenAI.APIKey != "sk-env" {
		t.Fatalf("api key = %q, want env override", cfg.OpenAI.APIKey)
	}
	if cfg.Server.Address() != "127.0.0.1:9000" {
		t.Fatalf("server address = %q", cfg.Server.Address())
	}
	want := "host=db user=bento password=secret dbname=menus port=5433 sslmode=require"
	if got := cfg.Database.Postgres.ConnStr(); got != want {
		t.Fatalf("conn str = %q, want %q", got, want)
	}
	if !cfg.Nats.Enabled || cfg.Nats.GeneratedSubject != "test.generated" {
		t.Fatalf("unexpected nats config: %+v", cfg.Nats)
	}
	if cfg.Nats.ConnStr() != "nats://localhost:4222" {
		t.Fatalf("nats conn str = %q", cfg.Nats.ConnStr())
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLLM_Location(t *testing.T) {
	loc, err := LLM{Timezone: "Asia/Tokyo"}.Location()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if loc.String() != "Asia/Tokyo" {
		t.Fatalf("location = %q", loc)
	}
	if _, err := (LLM{Timezone: "Mars/Olympus"}).Location(); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("BENTO_TEST_VALUE=loaded\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("BENTO_TEST_VALUE", "")
	os.Unsetenv("BENTO_TEST_VALUE")

	if err := LoadEnvFile(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := os.Getenv("BENTO_TEST_VALUE"); got != "loaded" {
		t.Fatalf("BENTO_TEST_VALUE = %q", got)
	}
}
