package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jymfony/scriba/runtime/sidechannel"
)

// EnvPrefix prefixes environment overrides, e.g. SCRIBA_PROVIDER_DRIVER.
const EnvPrefix = "SCRIBA"

// Config represents the scriba configuration
type Config struct {
	Log      LogConfig               `mapstructure:"log"`
	Provider ProviderConfig          `mapstructure:"provider"`
	Redis    sidechannel.RedisConfig `mapstructure:"redis"`
	Server   ServerConfig            `mapstructure:"server"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// ProviderConfig selects the reflection data backend
type ProviderConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	Compress bool   `mapstructure:"compress"`
	DSN      string `mapstructure:"dsn"`
	Table    string `mapstructure:"table"`
}

// ServerConfig represents introspection server configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SideChannel returns the backend configuration for sidechannel.Open.
func (c *Config) SideChannel() sidechannel.Config {
	return sidechannel.Config{
		Driver:   c.Provider.Driver,
		Path:     c.Provider.Path,
		Compress: c.Provider.Compress,
		DSN:      c.Provider.DSN,
		Table:    c.Provider.Table,
		Redis:    c.Redis,
	}
}

// Load loads the configuration from scriba.yml or scriba.yaml in the working
// directory, falling back to defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	redis := sidechannel.DefaultRedisConfig()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("provider.driver", sidechannel.DriverFile)
	v.SetDefault("provider.path", sidechannel.DefaultPath)
	v.SetDefault("provider.compress", false)
	v.SetDefault("provider.dsn", "")
	v.SetDefault("provider.table", sidechannel.DefaultTable)
	v.SetDefault("redis.addr", redis.Addr)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", redis.Prefix)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 7070)

	v.SetConfigName("scriba")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment overrides: SCRIBA_PROVIDER_DRIVER and so on
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	known := false
	for _, d := range sidechannel.Drivers() {
		if cfg.Provider.Driver == d {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("provider.driver must be one of %s, got: %s",
			strings.Join(sidechannel.Drivers(), ", "), cfg.Provider.Driver)
	}

	switch cfg.Provider.Driver {
	case sidechannel.DriverSQLite, sidechannel.DriverPostgres, sidechannel.DriverPgx:
		if cfg.Provider.DSN == "" {
			return fmt.Errorf("provider.dsn is required for driver %s", cfg.Provider.Driver)
		}
	case sidechannel.DriverFile:
		if cfg.Provider.Path == "" {
			return fmt.Errorf("provider.path is required for driver %s", cfg.Provider.Driver)
		}
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", cfg.Server.Port)
	}
	return nil
}
