package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := &Config{
		HTTPAddr:        ":8080",
		LogLevel:        "info",
		ShutdownTimeout: 5 * time.Second,
		Router:          Router{Base: "/", Host: "app"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("ARCADE_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("ARCADE_HOST", "root")
	t.Setenv("ARCADE_CASE_SENSITIVE", "true")
	t.Setenv("ARCADE_REDIS_ADDR", "localhost:6379")
	t.Setenv("ARCADE_REDIS_DB", "2")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.Router.Host != "root" || !cfg.Router.CaseSensitive {
		t.Errorf("Router = %+v", cfg.Router)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
http-addr: ":9090"
log-level: debug
shutdown-timeout: 10s
router:
  base: /arcade
  host: games
  strict: true
`)
	t.Setenv("ARCADE_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := &Config{
		HTTPAddr:        ":9090",
		LogLevel:        "warn", // environment wins over the file
		ShutdownTimeout: 10 * time.Second,
		Router:          Router{Base: "/arcade", Host: "games", Strict: true},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		env  map[string]string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yml") },
		},
		{
			name: "malformed yaml",
			path: func(t *testing.T) string { return writeFile(t, "router: [") },
		},
		{
			name: "bad duration",
			path: func(t *testing.T) string { return "" },
			env:  map[string]string{"ARCADE_SHUTDOWN_TIMEOUT": "soon"},
		},
		{
			name: "negative timeout",
			path: func(t *testing.T) string { return "" },
			env:  map[string]string{"ARCADE_SHUTDOWN_TIMEOUT": "-1s"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(tt.path(t)); err == nil {
				t.Fatal("expected Load to fail")
			}
		})
	}
}

func TestMustLoadPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustLoad to panic")
		}
	}()
	MustLoad(filepath.Join(t.TempDir(), "nope.yml"))
}

func TestUsage(t *testing.T) {
	u := Usage()
	for _, want := range []string{"Environment variables:", "ARCADE_HTTP_ADDR", "ARCADE_REDIS_ADDR"} {
		if !strings.Contains(u, want) {
			t.Errorf("Usage() does not mention %s:\n%s", want, u)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.validate()
	if err == nil {
		t.Fatal("expected validate to fail")
	}
	for _, want := range []string{"http-addr", "router.host", "shutdown-timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}
