package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/aim/pkg/interfaces/httpapi"
)

const shutdownTimeout = 10 * time.Second

// ServeCommand runs the HTTP API until its context is cancelled
type ServeCommand struct {
	config Config
}

// NewServeCommand creates a new serve command
func NewServeCommand(config Config) *ServeCommand {
	return &ServeCommand{config: config}
}

// Execute starts the server and blocks until ctx is done or the listener fails
func (c *ServeCommand) Execute(ctx context.Context) error {
	rt, err := bootstrap(c.config.ConfigPath, c.config.ScenarioDir, c.config.Verbose)
	if err != nil {
		return err
	}
	defer rt.close()

	threshold := rt.cfg.Reports.FailureRateThreshold
	if c.config.Threshold >= 0 {
		threshold = c.config.Threshold
	}

	server := &http.Server{
		Addr: rt.cfg.HTTP.Addr,
		Handler: httpapi.NewRouter(rt.core, httpapi.Options{
			Logger:               rt.logger,
			Gatherer:             rt.registry,
			FailureRateThreshold: threshold,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Info("http server listening", zap.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	rt.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
