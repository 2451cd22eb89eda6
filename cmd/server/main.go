// Command server runs the lending registry: a concurrent HTTP API and,
// unless disabled, an interactive console session over the same state.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"lendhub/internal/api"
	"lendhub/internal/app"
	"lendhub/internal/config"
	"lendhub/internal/console"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	a := app.New(cfg, logger)
	if cfg.Seed {
		if err := a.Seed(context.Background()); err != nil {
			return err
		}
	}

	h := api.NewHandler(a.Catalog, a.Directory, a.Ledger, []byte(cfg.JWTSecret), cfg.TokenTTL, logger)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.NewRouter(h, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.Console {
		// The console runs outside the errgroup: a signal must not wait for a
		// stdin read that may never complete. A finished console still shuts
		// the whole process down via stop().
		go func() {
			sess := console.New(a.Catalog, a.Directory, a.Ledger, logger, os.Stdin, os.Stdout)
			err := sess.Run(ctx)
			if !console.IsExit(err) && !errors.Is(err, context.Canceled) {
				logger.Error("console session failed", "error", err)
			}
			stop()
		}()
	}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
