package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/liveview/pkg/actor"
	"github.com/vango-dev/liveview/pkg/request"
	"github.com/vango-dev/liveview/pkg/response"
)

// LiveConfig configures the live channel.
type LiveConfig struct {
	// Enabled mounts the /_live/ endpoints.
	// Default: true.
	Enabled bool

	// ReadBufferSize is the WebSocket read buffer size.
	// Default: 4096.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size.
	// Default: 4096.
	WriteBufferSize int

	// CheckOrigin is called to validate the request origin.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// WriteTimeout bounds a single frame write.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// MaxMessageSize is the maximum size of an incoming message.
	// Default: 4KB.
	MaxMessageSize int64
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled turns on the metrics middleware and endpoint.
	Enabled bool

	// Path is where the exposition endpoint is mounted.
	// Default: "/metrics".
	Path string

	// Namespace prefixes all metric names.
	// Default: "liveview".
	Namespace string

	// Registry receives the collectors and backs the endpoint.
	// Default: the global Prometheus registry.
	Registry *prometheus.Registry
}

// Config holds configuration for the HTTP server.
type Config struct {
	// Address is the address to listen on (e.g., ":8080" or "localhost:3000").
	// Default: ":8080".
	Address string

	// HTTP timeouts, passed to http.Server.
	ReadHeaderTimeout time.Duration // Default: 5 seconds.
	ReadTimeout       time.Duration // Default: 30 seconds.
	WriteTimeout      time.Duration // Default: 30 seconds.
	IdleTimeout       time.Duration // Default: 120 seconds.

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration

	// MaxBodyBytes caps request bodies.
	// Default: request.DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// ActorMailbox and ActorTimeout configure state actors created by the
	// application through ActorOptions.
	ActorMailbox int           // Default: actor.DefaultMailbox.
	ActorTimeout time.Duration // Default: actor.DefaultTimeout.

	// Fallback produces the response for unmatched requests.
	// Default: response.Err404.
	Fallback func() *response.Response

	// Live configures the live channel.
	Live LiveConfig

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig

	// TracingEnabled turns on the OpenTelemetry middleware.
	TracingEnabled bool

	// TracerName names the tracer. Default: "liveview".
	TracerName string

	// RateLimitRPS and RateLimitBurst enable per-client rate limiting
	// when RateLimitRPS > 0.
	RateLimitRPS   float64
	RateLimitBurst int

	// Logger is the base logger. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   30 * time.Second,
		MaxBodyBytes:      request.DefaultMaxBodyBytes,
		ActorMailbox:      actor.DefaultMailbox,
		ActorTimeout:      actor.DefaultTimeout,
		Fallback:          response.Err404,
		Live: LiveConfig{
			Enabled:         true,
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     SameOriginCheck,
			WriteTimeout:    10 * time.Second,
			MaxMessageSize:  4 * 1024,
		},
		Metrics: MetricsConfig{
			Path:      "/metrics",
			Namespace: "liveview",
		},
		TracerName: "liveview",
	}
}

// applyDefaults fills zero fields from DefaultConfig. Boolean switches
// are left as given.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = d.MaxBodyBytes
	}
	if c.ActorMailbox == 0 {
		c.ActorMailbox = d.ActorMailbox
	}
	if c.ActorTimeout == 0 {
		c.ActorTimeout = d.ActorTimeout
	}
	if c.Fallback == nil {
		c.Fallback = d.Fallback
	}
	if c.Live.ReadBufferSize == 0 {
		c.Live.ReadBufferSize = d.Live.ReadBufferSize
	}
	if c.Live.WriteBufferSize == 0 {
		c.Live.WriteBufferSize = d.Live.WriteBufferSize
	}
	if c.Live.CheckOrigin == nil {
		c.Live.CheckOrigin = d.Live.CheckOrigin
	}
	if c.Live.WriteTimeout == 0 {
		c.Live.WriteTimeout = d.Live.WriteTimeout
	}
	if c.Live.MaxMessageSize == 0 {
		c.Live.MaxMessageSize = d.Live.MaxMessageSize
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.TracerName == "" {
		c.TracerName = d.TracerName
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Validate reports configuration values that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxBodyBytes < 0 {
		errs = append(errs, fmt.Errorf("max body bytes must not be negative, got %d", c.MaxBodyBytes))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must not be negative, got %s", c.ShutdownTimeout))
	}
	if c.ActorMailbox < 0 {
		errs = append(errs, fmt.Errorf("actor mailbox must not be negative, got %d", c.ActorMailbox))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, fmt.Errorf("rate limit rps must not be negative, got %v", c.RateLimitRPS))
	}
	if c.Metrics.Enabled && (c.Metrics.Path == "" || c.Metrics.Path[0] != '/') {
		errs = append(errs, fmt.Errorf("metrics path must start with /, got %q", c.Metrics.Path))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ActorOptions returns the actor options derived from the config.
func (c *Config) ActorOptions(name string) []actor.Option {
	opts := []actor.Option{
		actor.WithName(name),
		actor.WithMailbox(c.ActorMailbox),
		actor.WithTimeout(c.ActorTimeout),
	}
	if c.Logger != nil {
		opts = append(opts, actor.WithLogger(c.Logger))
	}
	return opts
}

// SameOriginCheck validates that the WebSocket request origin matches the host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No Origin header (e.g., same-origin request or curl)
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}
	return originURL.Host == host
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// WithAddress sets the server address and returns the config for chaining.
func (c *Config) WithAddress(addr string) *Config {
	c.Address = addr
	return c
}

// WithMetrics enables metrics on registry and returns the config for chaining.
func (c *Config) WithMetrics(registry *prometheus.Registry) *Config {
	c.Metrics.Enabled = true
	c.Metrics.Registry = registry
	return c
}

// WithLive enables or disables the live channel and returns the config for chaining.
func (c *Config) WithLive(enabled bool) *Config {
	c.Live.Enabled = enabled
	return c
}

// WithLogger sets the logger and returns the config for chaining.
func (c *Config) WithLogger(logger *slog.Logger) *Config {
	c.Logger = logger
	return c
}
