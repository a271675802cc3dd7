package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultServiceName is reported in the "service" field when SERVICE_NAME is unset.
const DefaultServiceName = "python-service"

// Config holds all service configuration loaded from environment variables.
type Config struct {
	// Reported in every echo response; DefaultServiceName when blank.
	ServiceName string `env:"SERVICE_NAME"`

	Host           string `env:"SERVICE_HOST" envDefault:"0.0.0.0"`
	Port           int    `env:"SERVICE_PORT" envDefault:"8080"`
	GRPCHealthPort int    `env:"GRPC_HEALTH_PORT" envDefault:"0"` // 0 disables the gRPC health server

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from environment variables, falling back to defaults.
func Load() (*Config, error) {
	return load(env.Options{})
}

// load parses with opts; a non-nil opts.Environment replaces the process
// environment.
func load(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// GRPCHealthAddr returns the gRPC health listen address, or "" when disabled.
func (c *Config) GRPCHealthAddr() string {
	if c.GRPCHealthPort == 0 {
		return ""
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(c.GRPCHealthPort))
}

func (c *Config) normalize() {
	c.ServiceName = strings.TrimSpace(c.ServiceName)
	if c.ServiceName == "" {
		c.ServiceName = DefaultServiceName
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))

	origins := c.CORSAllowedOrigins[:0]
	for _, o := range c.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.CORSAllowedOrigins = origins
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("SERVICE_PORT %d out of range", c.Port)
	}
	if c.GRPCHealthPort < 0 || c.GRPCHealthPort > 65535 {
		return fmt.Errorf("GRPC_HEALTH_PORT %d out of range", c.GRPCHealthPort)
	}
	if c.GRPCHealthPort != 0 && c.GRPCHealthPort == c.Port {
		return fmt.Errorf("GRPC_HEALTH_PORT must differ from SERVICE_PORT (%d)", c.Port)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT %q must be json or text", c.LogFormat)
	}
	return nil
}
