package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "DIAG_AUDIT"

type Config struct {
	Azure AzureConfig `mapstructure:"azure"`
	Audit AuditConfig `mapstructure:"audit"`
	Log   LogConfig   `mapstructure:"log"`
}

type AzureConfig struct {
	// Credential selects the credential chain: "default" or "cli"
	Credential string `mapstructure:"credential"`
	TenantID   string `mapstructure:"tenant_id"`
	// ProfilePath is an ini file with per-profile tenant_id/client_id (default: ~/.azure/config)
	ProfilePath string `mapstructure:"profile_path"`
	Profile     string `mapstructure:"profile"`
	// RequestsPerSecond limits diagnostic setting reads across the whole run
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	MaxRetries        int32   `mapstructure:"max_retries"`
}

type AuditConfig struct {
	Concurrency  int           `mapstructure:"concurrency"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	NoColor bool   `mapstructure:"no_color"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("azure.credential", "default")
	v.SetDefault("azure.tenant_id", "")
	v.SetDefault("azure.profile_path", "")
	v.SetDefault("azure.profile", "default")
	v.SetDefault("azure.requests_per_second", 20.0)
	v.SetDefault("azure.max_retries", 3)
	v.SetDefault("audit.concurrency", 8)
	v.SetDefault("audit.fetch_timeout", "30s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.no_color", false)
}

// LoadConfig reads the optional config file at path, then applies
// DIAG_AUDIT_* environment overrides (e.g. DIAG_AUDIT_AUDIT_CONCURRENCY).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Azure.Credential {
	case "default", "cli":
	default:
		return fmt.Errorf("unsupported azure.credential %q (expected default or cli)", c.Azure.Credential)
	}
	if c.Audit.Concurrency <= 0 {
		return fmt.Errorf("audit.concurrency must be positive, got %d", c.Audit.Concurrency)
	}
	if c.Audit.FetchTimeout <= 0 {
		return fmt.Errorf("audit.fetch_timeout must be positive, got %s", c.Audit.FetchTimeout)
	}
	if c.Azure.RequestsPerSecond <= 0 {
		return fmt.Errorf("azure.requests_per_second must be positive, got %v", c.Azure.RequestsPerSecond)
	}
	return nil
}
