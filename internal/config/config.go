package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/liveview/internal/errors"
	"github.com/vango-dev/liveview/internal/logging"
	"github.com/vango-dev/liveview/pkg/actor"
	"github.com/vango-dev/liveview/pkg/request"
	"github.com/vango-dev/liveview/pkg/server"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "liveview.yaml"

	// EnvFileName is the optional dotenv file loaded before overrides.
	EnvFileName = ".env"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "LIVEVIEW_"

	// DefaultAddress is the default listen address.
	DefaultAddress = ":8080"
)

// Config is the complete liveview.yaml configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Actor     ActorConfig     `yaml:"actor"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Tracing   TracingConfig   `yaml:"tracing"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Live      LiveConfig      `yaml:"live"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address           string   `yaml:"address"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	ReadTimeout       Duration `yaml:"read_timeout"`
	WriteTimeout      Duration `yaml:"write_timeout"`
	IdleTimeout       Duration `yaml:"idle_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes      int64    `yaml:"max_body_bytes"`
}

// ActorConfig contains state actor settings.
type ActorConfig struct {
	// Mailbox is the number of requests that can queue for the actor.
	Mailbox int `yaml:"mailbox"`

	// Timeout bounds one request/reply round trip. Zero disables it.
	Timeout Duration `yaml:"timeout"`
}

// LoggingConfig contains log output settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	TracerName string `yaml:"tracer_name"`
}

// RateLimitConfig contains per-client rate limiting settings.
// Limiting is off while RPS is zero.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// LiveConfig contains live channel settings.
type LiveConfig struct {
	Enabled bool `yaml:"enabled"`
}

// New creates a new Config with default values.
func New() *Config {
	d := server.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Address:           DefaultAddress,
			ReadHeaderTimeout: Duration(d.ReadHeaderTimeout),
			ReadTimeout:       Duration(d.ReadTimeout),
			WriteTimeout:      Duration(d.WriteTimeout),
			IdleTimeout:       Duration(d.IdleTimeout),
			ShutdownTimeout:   Duration(d.ShutdownTimeout),
			MaxBodyBytes:      request.DefaultMaxBodyBytes,
		},
		Actor: ActorConfig{
			Mailbox: actor.DefaultMailbox,
			Timeout: Duration(actor.DefaultTimeout),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      d.Metrics.Path,
			Namespace: d.Metrics.Namespace,
		},
		Tracing: TracingConfig{
			TracerName: d.TracerName,
		},
		RateLimit: RateLimitConfig{
			Burst: 10,
		},
		Live: LiveConfig{
			Enabled: true,
		},
	}
}

// Load reads the configuration for the project in dir: .env, then
// liveview.yaml if present, then LIVEVIEW_* overrides. The result is
// validated.
func Load(dir string) (*Config, error) {
	if err := loadEnvFile(filepath.Join(dir, EnvFileName)); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, ConfigFileName)
	cfg, err := LoadFile(path)
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = New()
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFile loads path into the process environment without replacing
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.New("E105").WithDetail("Could not parse " + path).Wrap(err)
	}
	return nil
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// LoadFile reads configuration from the specified file path. Keys the
// file omits keep their defaults. Environment overrides are not applied.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E101").
			WithDetail("Could not read " + path).
			Wrap(err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		coded := errors.New("E102").
			WithSuggestion("Check that " + filepath.Base(path) + " is valid YAML and durations look like 30s").
			Wrap(err)
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
			line, _ := strconv.Atoi(m[1])
			coded.WithLocation(path, line, 0)
		}
		return nil, coded
	}

	cfg.configPath = path
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("E106").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("E106").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Validate checks that every value can be used.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New("E103").WithDetail(fmt.Sprintf(format, args...))
	}

	if c.Server.Address == "" {
		return invalid("server.address must not be empty")
	}
	for key, d := range map[string]Duration{
		"server.read_header_timeout": c.Server.ReadHeaderTimeout,
		"server.read_timeout":        c.Server.ReadTimeout,
		"server.write_timeout":       c.Server.WriteTimeout,
		"server.idle_timeout":        c.Server.IdleTimeout,
		"server.shutdown_timeout":    c.Server.ShutdownTimeout,
		"actor.timeout":              c.Actor.Timeout,
	} {
		if d < 0 {
			return invalid("%s must not be negative, got %s", key, d)
		}
	}
	if c.Server.MaxBodyBytes < 0 {
		return invalid("server.max_body_bytes must not be negative, got %d", c.Server.MaxBodyBytes)
	}
	if c.Actor.Mailbox < 1 {
		return invalid("actor.mailbox must be at least 1, got %d", c.Actor.Mailbox)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return invalid("logging.level: %v", err)
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return invalid("logging.format: %v", err)
	}
	if c.Metrics.Enabled && (c.Metrics.Path == "" || c.Metrics.Path[0] != '/') {
		return invalid("metrics.path must start with /, got %q", c.Metrics.Path)
	}
	if c.RateLimit.RPS < 0 {
		return invalid("rate_limit.rps must not be negative, got %v", c.RateLimit.RPS)
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		return invalid("rate_limit.burst must be at least 1 when rate_limit.rps is set, got %d", c.RateLimit.Burst)
	}
	return nil
}

// ServerConfig converts the configuration to a server.Config. Metrics
// go to registry when it is non-nil.
func (c *Config) ServerConfig(logger *slog.Logger, registry *prometheus.Registry) *server.Config {
	cfg := server.DefaultConfig()
	cfg.Address = c.Server.Address
	cfg.ReadHeaderTimeout = c.Server.ReadHeaderTimeout.Std()
	cfg.ReadTimeout = c.Server.ReadTimeout.Std()
	cfg.WriteTimeout = c.Server.WriteTimeout.Std()
	cfg.IdleTimeout = c.Server.IdleTimeout.Std()
	cfg.ShutdownTimeout = c.Server.ShutdownTimeout.Std()
	cfg.MaxBodyBytes = c.Server.MaxBodyBytes
	cfg.ActorMailbox = c.Actor.Mailbox
	cfg.ActorTimeout = c.Actor.Timeout.Std()
	cfg.Metrics.Enabled = c.Metrics.Enabled
	cfg.Metrics.Path = c.Metrics.Path
	cfg.Metrics.Namespace = c.Metrics.Namespace
	cfg.Metrics.Registry = registry
	cfg.TracingEnabled = c.Tracing.Enabled
	cfg.TracerName = c.Tracing.TracerName
	cfg.RateLimitRPS = c.RateLimit.RPS
	cfg.RateLimitBurst = c.RateLimit.Burst
	cfg.Live.Enabled = c.Live.Enabled
	cfg.Logger = logger
	return cfg
}
