// Package server runs the standalone adminpanel API process: the REST API
// over HTTP plus the optional gRPC health endpoint. It handles OS signals
// and shuts both down gracefully.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/adminpanel/internal/logging"
	"github.com/dmitrijs2005/adminpanel/internal/server/config"
	"github.com/dmitrijs2005/adminpanel/internal/server/httpapi"

	gs "github.com/dmitrijs2005/adminpanel/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	handler http.Handler
	health  *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	return NewAppWithLogger(ctx, c, logger)
}

func NewAppWithLogger(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	h, err := httpapi.NewFromConfig(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("api init error: %w", err)
	}

	app := &App{config: c, logger: logger, handler: h}
	if c.EndpointAddrGRPC != "" {
		app.health = gs.NewHealthServer(c.EndpointAddrGRPC, logger)
	}
	return app, nil
}

// Handler returns the REST API handler.
func (app *App) Handler() http.Handler {
	return app.handler
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.health.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// serveHTTP serves the REST API on lis until ctx is cancelled, then drains
// in-flight requests for at most ShutdownTimeout.
func (app *App) serveHTTP(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{Handler: app.handler}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	lis, err := net.Listen("tcp", app.config.EndpointAddrHTTP)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if app.health != nil {
		app.health.SetServing(true)
	}

	if err := app.serveHTTP(ctx, lis); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}

	if app.health != nil {
		app.health.SetServing(false)
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.health != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
}
