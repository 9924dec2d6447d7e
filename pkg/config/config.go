// Package config loads engine configuration from YAML with environment
// variable overrides. Secrets only come from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for formflow-engine. Values come from a
// YAML file with environment variable overrides; environment always wins.
type Config struct {
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	Guardrail GuardrailConfig `yaml:"guardrail"`
	Provider  ProviderConfig  `yaml:"provider"`
}

// GuardrailConfig controls how guardrail findings are treated. The checks
// themselves are always advisory in the core; these settings tell the
// service layer whether to refuse on critical findings or merely surface
// them.
type GuardrailConfig struct {
	// BlockOnCritical refuses to return compiled SQL when the operation
	// audit reports critical warnings (WHERE-less UPDATE/DELETE).
	BlockOnCritical bool `yaml:"block_on_critical" env:"GUARDRAIL_BLOCK_ON_CRITICAL" env-default:"true"`

	// BlockOnInjection refuses when libinjection flags a collected answer.
	BlockOnInjection bool `yaml:"block_on_injection" env:"GUARDRAIL_BLOCK_ON_INJECTION" env-default:"false"`
}

// ProviderConfig holds connection settings for the optional live schema
// provider. The core never executes generated SQL; this connection is
// introspection-only.
type ProviderConfig struct {
	// Type selects the provider: "postgres", "mssql", or empty for none.
	Type     string `yaml:"type" env:"PROVIDER_TYPE" env-default:""`
	Host     string `yaml:"host" env:"PROVIDER_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"PROVIDER_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"PROVIDER_USER" env-default:""`
	Password string `yaml:"-" env:"PROVIDER_PASSWORD"` // Secret - not in YAML
	Database string `yaml:"database" env:"PROVIDER_DATABASE" env-default:""`
	SSLMode  string `yaml:"ssl_mode" env:"PROVIDER_SSLMODE" env-default:"disable"`
}

// Load reads configuration from the given YAML path with environment
// overrides. A missing file is not an error: everything then comes from
// the environment and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Provider.Type {
	case "", "postgres", "mssql":
	default:
		return fmt.Errorf("provider type %q is not supported", c.Provider.Type)
	}
	if c.Provider.Type != "" && c.Provider.Database == "" {
		return fmt.Errorf("provider database must be set when a provider type is configured")
	}
	return nil
}
