package app

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

// Run serves HTTP and keeps the modules alive until the context is canceled,
// then shuts everything down in reverse dependency order.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger

	var wg sync.WaitGroup

	wg.Add(1)
	go a.RosterModule.Run(ctx, &wg)

	wg.Add(1)
	go a.SessionModule.Run(ctx, &wg)

	errCh := make(chan error, 2)

	go func() {
		logger.InfoContext(ctx, "HTTP server listening", "address", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if a.metricsServer != nil {
		go func() {
			logger.InfoContext(ctx, "metrics server listening", "address", a.metricsServer.Addr)
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		logger.Error("server failed", "error", runErr)
	}

	a.shutdown(&wg)
	return runErr
}

func (a *App) shutdown(wg *sync.WaitGroup) {
	logger := a.Observability.Logger
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", "error", err)
		}
	}

	wg.Wait()

	if err := a.SessionModule.Close(); err != nil {
		logger.Error("session module close failed", "error", err)
	}
	if err := a.RosterModule.Close(); err != nil {
		logger.Error("roster module close failed", "error", err)
	}
	if err := a.EventBus.Close(); err != nil {
		logger.Error("event bus close failed", "error", err)
	}
	if err := a.DB.Close(); err != nil {
		logger.Error("database close failed", "error", err)
	}

	logger.Info("shutdown complete")
}
