package config

import (
	"time"
)

// Config represents the complete configuration for the gateway and its tooling.
// It provides type-safe access to all configuration values with validation.
type Config struct {
	Server     ServerConfig     `koanf:"server"     validate:"required"`
	Webhook    WebhookConfig    `koanf:"webhook"`
	Knowledge  KnowledgeConfig  `koanf:"knowledge"  validate:"required"`
	Monitoring MonitoringConfig `koanf:"monitoring"`
	Runtime    RuntimeConfig    `koanf:"runtime"    validate:"required"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host         string        `koanf:"host"           validate:"required"         env:"HOST"`
	Port         int           `koanf:"port"           validate:"min=1,max=65535"  env:"PORT"`
	ReadTimeout  time.Duration `koanf:"read_timeout"                               env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `koanf:"write_timeout"                              env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"                               env:"SERVER_IDLE_TIMEOUT"`
	MaxBodyBytes int64         `koanf:"max_body_bytes" validate:"min=1"            env:"MAX_BODY_BYTES"`
}

// WebhookConfig contains request signature settings. An empty secret disables
// signature enforcement (development mode).
type WebhookConfig struct {
	Secret SensitiveString `koanf:"secret" env:"GITHUB_WEBHOOK_SECRET" sensitive:"true"`
}

// KnowledgeConfig points at the compiled knowledge artifacts.
type KnowledgeConfig struct {
	Dir string `koanf:"dir" validate:"required" env:"KNOWLEDGE_DIR"`
}

// MonitoringConfig controls the Prometheus metrics endpoint.
type MonitoringConfig struct {
	Enabled bool   `koanf:"enabled" env:"MONITORING_ENABLED"`
	Path    string `koanf:"path"    env:"MONITORING_PATH"`
}

// RuntimeConfig contains runtime behavior configuration.
type RuntimeConfig struct {
	Environment string `koanf:"environment" validate:"oneof=development staging production" env:"RUNTIME_ENVIRONMENT"`
	LogLevel    string `koanf:"log_level"   validate:"oneof=debug info warn error disabled" env:"LOG_LEVEL"`
	LogJSON     bool   `koanf:"log_json"                                                    env:"LOG_JSON"`
}

// Default returns the built-in configuration values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         3000,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Knowledge: KnowledgeConfig{
			Dir: "knowledge",
		},
		Monitoring: MonitoringConfig{
			Enabled: false,
			Path:    "/metrics",
		},
		Runtime: RuntimeConfig{
			Environment: "development",
			LogLevel:    "info",
		},
	}
}

// SignatureRequired reports whether inbound requests must carry a valid signature.
func (c *Config) SignatureRequired() bool {
	return c.Webhook.Secret.Value() != ""
}
