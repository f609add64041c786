package sidechannel

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Provider drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// DefaultPath is the default side-channel file location.
const DefaultPath = "build/reflection.json"

// Config selects and configures a backend.
type Config struct {
	Driver   string      `mapstructure:"driver"`
	Path     string      `mapstructure:"path"`
	Compress bool        `mapstructure:"compress"`
	DSN      string      `mapstructure:"dsn"`
	Table    string      `mapstructure:"table"`
	Redis    RedisConfig `mapstructure:"-"`
}

// Drivers lists every driver name Open accepts.
func Drivers() []string {
	return []string{DriverMemory, DriverFile, DriverSQLite, DriverPostgres, DriverPgx, DriverRedis}
}

// Open builds the backend described by cfg. SQL tables are created when
// missing.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []Option{WithLogger(logger)}

	logger.Debug("opening reflection provider", zap.String("driver", cfg.Driver))

	switch cfg.Driver {
	case DriverMemory:
		return NewMemory(), nil

	case DriverFile, "":
		path := cfg.Path
		if path == "" {
			path = DefaultPath
		}
		f, err := OpenFile(path, cfg.Compress)
		if err != nil {
			return nil, err
		}
		return f, nil

	case DriverSQLite, DriverPostgres, DriverPgx:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("provider.dsn is required for driver %s", cfg.Driver)
		}
		s, err := OpenSQL(cfg.Driver, cfg.DSN, cfg.Table, opts...)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil

	case DriverRedis:
		r, err := OpenRedis(ctx, cfg.Redis, opts...)
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Driver)
}
