package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jymfony/scriba/internal/catalog"
	"github.com/jymfony/scriba/internal/cli/config"
	"github.com/jymfony/scriba/internal/logging"
	"github.com/jymfony/scriba/runtime/sidechannel"
)

// env holds what every data command needs: configuration, a logger and the
// configured backend.
type env struct {
	cfg     *config.Config
	logger  *zap.Logger
	backend sidechannel.Backend
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, err
	}

	backend, err := sidechannel.Open(ctx, cfg.SideChannel(), logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to open %s provider: %w", cfg.Provider.Driver, err)
	}

	return &env{cfg: cfg, logger: logger, backend: backend}, nil
}

func (e *env) catalog() *catalog.Catalog {
	return catalog.New(e.backend, e.logger)
}

func (e *env) Close() {
	if err := e.backend.Close(); err != nil {
		e.logger.Warn("failed to close provider", zap.Error(err))
	}
	_ = e.logger.Sync()
}
