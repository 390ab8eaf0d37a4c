package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"actividad-clase/api-service/handlers"
	"actividad-clase/api-service/logging"

	"github.com/spf13/cobra"
)

func newServeCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), f)
		},
	}
}

func runServe(ctx context.Context, f *flags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting ActividadClase API...")
	a, err := newApp(ctx, f)
	if err != nil {
		logging.Logger.Errorf("Event ID: SERVICE_START_FAILED, Description: %v", err)
		return err
	}
	defer a.close(context.Background())

	router := handlers.NewRouter(a.services)
	srv := &http.Server{
		Addr:         a.cfg.Addr(),
		Handler:      handlers.EnableCORS(a.cfg.CORSOrigin, router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Errorf("Event ID: SERVER_FATAL_ERROR, Description: Server failed: %v", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logging.Logger.Info("Event ID: SERVICE_STOP, Description: Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
