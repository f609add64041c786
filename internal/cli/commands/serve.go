package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jymfony/scriba/internal/web/introspect"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reflection data over HTTP",
		Long: `Serve reflection data from the configured provider as JSON.

Endpoints:
  GET /classes
  GET /classes/{id}
  GET /classes/{id}/members/{index}/parameters
  GET /classes/{id}/members/{index}/docblock`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			if addr == "" {
				addr = e.cfg.Server.Addr()
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           introspect.NewHandler(e.catalog(), e.logger),
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Second,
				WriteTimeout:      15 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			errc := make(chan error, 1)
			go func() {
				errc <- srv.ListenAndServe()
			}()

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Serving reflection data on http://%s\n", addr)
			e.logger.Info("introspection server started",
				zap.String("addr", addr),
				zap.String("driver", e.cfg.Provider.Driver),
			)

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			e.logger.Info("shutting down introspection server")
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.host and server.port)")
	return cmd
}
