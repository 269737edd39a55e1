package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-dev/liveview/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func codeOf(err error) string {
	var coded *errors.Error
	if stderrors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

func TestNew(t *testing.T) {
	cfg := New()
	if cfg.Server.Address != DefaultAddress {
		t.Errorf("Server.Address = %q, want %q", cfg.Server.Address, DefaultAddress)
	}
	if cfg.Actor.Timeout.Std() != 5*time.Second {
		t.Errorf("Actor.Timeout = %s, want 5s", cfg.Actor.Timeout)
	}
	if !cfg.Live.Enabled || !cfg.Metrics.Enabled {
		t.Error("live and metrics should default to enabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ConfigFileName, `
server:
  address: "127.0.0.1:9000"
  read_timeout: 10s
  idle_timeout: 90
actor:
  mailbox: 8
logging:
  format: json
metrics:
  enabled: false
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	want := New()
	want.Server.Address = "127.0.0.1:9000"
	want.Server.ReadTimeout = Duration(10 * time.Second)
	want.Server.IdleTimeout = Duration(90 * time.Second)
	want.Actor.Mailbox = 8
	want.Logging.Format = "json"
	want.Metrics.Enabled = false

	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("LoadFile() mismatch (-want +got):\n%s", diff)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	if codeOf(err) != "E101" || !stderrors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want E101 wrapping ErrNotExist", err)
	}

	bad := writeFile(t, dir, "bad.yaml", "server:\n  address: x\n  read_timeout: soon\n")
	_, err = LoadFile(bad)
	if codeOf(err) != "E102" {
		t.Fatalf("bad duration error = %v, want E102", err)
	}
	var coded *errors.Error
	stderrors.As(err, &coded)
	if coded.Location == nil || coded.Location.Line != 3 {
		t.Errorf("Location = %v, want line 3", coded.Location)
	}

	broken := writeFile(t, dir, "broken.yaml", "server: [\n")
	if _, err := LoadFile(broken); codeOf(err) != "E102" {
		t.Errorf("syntax error = %v, want E102", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("no file uses defaults", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Server.Address != DefaultAddress || cfg.Path() != "" {
			t.Errorf("Load() = %+v", cfg)
		}
	})

	t.Run("env overrides file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ConfigFileName, "server:\n  address: \":7000\"\nactor:\n  mailbox: 4\n")
		t.Setenv("LIVEVIEW_SERVER_ADDRESS", ":7001")

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Server.Address != ":7001" {
			t.Errorf("Server.Address = %q, want :7001", cfg.Server.Address)
		}
		if cfg.Actor.Mailbox != 4 {
			t.Errorf("Actor.Mailbox = %d, want 4", cfg.Actor.Mailbox)
		}
	})

	t.Run("dotenv feeds overrides", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, EnvFileName, "LIVEVIEW_ACTOR_TIMEOUT=250ms\n")
		// Registered with t.Setenv so the value godotenv sets is restored.
		t.Setenv("LIVEVIEW_ACTOR_TIMEOUT", "")
		os.Unsetenv("LIVEVIEW_ACTOR_TIMEOUT")

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Actor.Timeout.Std() != 250*time.Millisecond {
			t.Errorf("Actor.Timeout = %s, want 250ms", cfg.Actor.Timeout)
		}
	})

	t.Run("invalid result", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ConfigFileName, "logging:\n  level: loud\n")
		if _, err := Load(dir); codeOf(err) != "E103" {
			t.Errorf("Load() error = %v, want E103", err)
		}
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"LIVEVIEW_SERVER_MAX_BODY_BYTES": "2048",
		"LIVEVIEW_METRICS_ENABLED":       "false",
		"LIVEVIEW_RATE_LIMIT_RPS":        "2.5",
		"LIVEVIEW_RATE_LIMIT_BURST":      "3",
		"LIVEVIEW_TRACING_ENABLED":       "true",
		"LIVEVIEW_LIVE_ENABLED":          "0",
		"LIVEVIEW_LOGGING_LEVEL":         " debug ",
		"LIVEVIEW_SERVER_ADDRESS":        "",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	cfg := New()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Server.MaxBodyBytes != 2048 || cfg.Metrics.Enabled || cfg.RateLimit.RPS != 2.5 ||
		cfg.RateLimit.Burst != 3 || !cfg.Tracing.Enabled || cfg.Live.Enabled || cfg.Logging.Level != "debug" {
		t.Errorf("ApplyEnv() = %+v", cfg)
	}
	if cfg.Server.Address != DefaultAddress {
		t.Errorf("empty override replaced address: %q", cfg.Server.Address)
	}

	err := New().ApplyEnv(func(name string) (string, bool) {
		return "many", name == "LIVEVIEW_ACTOR_MAILBOX"
	})
	if codeOf(err) != "E104" || !strings.Contains(err.Error(), "LIVEVIEW_ACTOR_MAILBOX") {
		t.Errorf("bad override error = %v", err)
	}
}

func TestSet(t *testing.T) {
	cfg := New()
	if err := cfg.Set("actor.timeout", "1s"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.Actor.Timeout.Std() != time.Second {
		t.Errorf("Actor.Timeout = %s", cfg.Actor.Timeout)
	}
	if err := cfg.Set("actor.nope", "1"); codeOf(err) != "E103" {
		t.Errorf("Set(unknown) error = %v, want E103", err)
	}
}

func TestKeysHaveEnvNames(t *testing.T) {
	keys := Keys()
	if len(keys) != 19 {
		t.Errorf("len(Keys()) = %d, want 19", len(keys))
	}
	if got := EnvName("rate_limit.burst"); got != "LIVEVIEW_RATE_LIMIT_BURST" {
		t.Errorf("EnvName() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		detail string
	}{
		{"empty address", func(c *Config) { c.Server.Address = "" }, "server.address"},
		{"negative timeout", func(c *Config) { c.Server.ReadTimeout = -1 }, "server.read_timeout"},
		{"negative body", func(c *Config) { c.Server.MaxBodyBytes = -1 }, "server.max_body_bytes"},
		{"zero mailbox", func(c *Config) { c.Actor.Mailbox = 0 }, "actor.mailbox"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, "metrics.path"},
		{"negative rps", func(c *Config) { c.RateLimit.RPS = -1 }, "rate_limit.rps"},
		{"zero burst", func(c *Config) { c.RateLimit.RPS = 1; c.RateLimit.Burst = 0 }, "rate_limit.burst"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if codeOf(err) != "E103" {
				t.Fatalf("Validate() error = %v, want E103", err)
			}
			var coded *errors.Error
			stderrors.As(err, &coded)
			if !strings.Contains(coded.Detail, tt.detail) {
				t.Errorf("Detail = %q, want it to mention %q", coded.Detail, tt.detail)
			}
		})
	}

	cfg := New()
	cfg.Metrics.Enabled = false
	cfg.Metrics.Path = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("metrics path checked while disabled: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := New()
	cfg.Server.ShutdownTimeout = Duration(90 * time.Second)
	cfg.RateLimit.RPS = 4
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "shutdown_timeout: 1m30s") {
		t.Errorf("saved file does not use duration strings:\n%s", data)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if diff := cmp.Diff(cfg, loaded, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}

	loaded.Actor.Mailbox = 3
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := New().Save(); err == nil {
		t.Error("Save() without a path succeeded")
	}
}

func TestServerConfig(t *testing.T) {
	cfg := New()
	cfg.Server.Address = ":9999"
	cfg.Actor.Timeout = Duration(time.Second)
	cfg.Live.Enabled = false
	cfg.RateLimit.RPS = 7

	sc := cfg.ServerConfig(nil, nil)
	if sc.Address != ":9999" || sc.ActorTimeout != time.Second || sc.Live.Enabled || sc.RateLimitRPS != 7 {
		t.Errorf("ServerConfig() = %+v", sc)
	}
	if !sc.Metrics.Enabled || sc.Metrics.Path != "/metrics" {
		t.Errorf("ServerConfig().Metrics = %+v", sc.Metrics)
	}
	if err := sc.Validate(); err != nil {
		t.Errorf("ServerConfig().Validate() error = %v", err)
	}
}
