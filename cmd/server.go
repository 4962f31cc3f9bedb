package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// APIServer serves route until ctx is cancelled, then drains in-flight
// requests.
func APIServer(ctx context.Context, route *chi.Mux, config *utils.Config, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", config.App.Port),
		Handler:      route,
		ReadTimeout:  time.Duration(config.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(config.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(config.Server.IdleTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server running", zap.String("addr", "http://localhost"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
