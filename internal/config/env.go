package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vango-dev/liveview/internal/errors"
)

// override binds one configuration key to its setter.
type override struct {
	key string
	set func(c *Config, v string) error
}

func stringField(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func boolField(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func intField(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func durationField(field func(*Config) *Duration) func(*Config, string) error {
	return func(c *Config, v string) error {
		d, err := parseDuration(v)
		if err != nil {
			return err
		}
		*field(c) = Duration(d)
		return nil
	}
}

var overrides = []override{
	{"server.address", stringField(func(c *Config) *string { return &c.Server.Address })},
	{"server.read_header_timeout", durationField(func(c *Config) *Duration { return &c.Server.ReadHeaderTimeout })},
	{"server.read_timeout", durationField(func(c *Config) *Duration { return &c.Server.ReadTimeout })},
	{"server.write_timeout", durationField(func(c *Config) *Duration { return &c.Server.WriteTimeout })},
	{"server.idle_timeout", durationField(func(c *Config) *Duration { return &c.Server.IdleTimeout })},
	{"server.shutdown_timeout", durationField(func(c *Config) *Duration { return &c.Server.ShutdownTimeout })},
	{"server.max_body_bytes", func(c *Config, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		c.Server.MaxBodyBytes = n
		return nil
	}},
	{"actor.mailbox", intField(func(c *Config) *int { return &c.Actor.Mailbox })},
	{"actor.timeout", durationField(func(c *Config) *Duration { return &c.Actor.Timeout })},
	{"logging.level", stringField(func(c *Config) *string { return &c.Logging.Level })},
	{"logging.format", stringField(func(c *Config) *string { return &c.Logging.Format })},
	{"metrics.enabled", boolField(func(c *Config) *bool { return &c.Metrics.Enabled })},
	{"metrics.path", stringField(func(c *Config) *string { return &c.Metrics.Path })},
	{"metrics.namespace", stringField(func(c *Config) *string { return &c.Metrics.Namespace })},
	{"tracing.enabled", boolField(func(c *Config) *bool { return &c.Tracing.Enabled })},
	{"tracing.tracer_name", stringField(func(c *Config) *string { return &c.Tracing.TracerName })},
	{"rate_limit.rps", func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		c.RateLimit.RPS = f
		return nil
	}},
	{"rate_limit.burst", intField(func(c *Config) *int { return &c.RateLimit.Burst })},
	{"live.enabled", boolField(func(c *Config) *bool { return &c.Live.Enabled })},
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Keys returns every configuration key in file order.
func Keys() []string {
	keys := make([]string, len(overrides))
	for i, o := range overrides {
		keys[i] = o.key
	}
	return keys
}

// ApplyEnv applies environment overrides read through lookup, which is
// usually os.LookupEnv. Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, o := range overrides {
		name := EnvName(o.key)
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		if err := o.set(c, strings.TrimSpace(v)); err != nil {
			return errors.New("E104").
				WithDetail(fmt.Sprintf("%s=%q is not a valid %s", name, v, o.key)).
				Wrap(err)
		}
	}
	return nil
}

// Set applies value to key as if it came from the environment.
func (c *Config) Set(key, value string) error {
	known := false
	for _, o := range overrides {
		known = known || o.key == key
	}
	if !known {
		return errors.New("E103").WithDetail(fmt.Sprintf("unknown key %q", key))
	}
	return c.ApplyEnv(func(name string) (string, bool) {
		if name == EnvName(key) {
			return value, true
		}
		return "", false
	})
}
