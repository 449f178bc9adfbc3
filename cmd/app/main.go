package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fooddelivery/cmd"
	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/metrics"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// forcedExitGrace is added to the shutdown timeout before the process is
// killed outright.
const forcedExitGrace = 5 * time.Second

func main() {
	cfg, err := cmd.LoadConfig(".env", os.Args[1:])
	if err != nil {
		os.Exit(configExitCode(err, os.Stderr))
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	if err = run(cfg, logger); err != nil {
		logger.Error("service stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("goodbye")
}

// configExitCode reports a configuration failure on w and returns the exit
// status. go-flags prints its own parse errors and help text, so only
// validation errors are written here.
func configExitCode(err error, w io.Writer) int {
	if flags.WroteHelp(err) {
		return 0
	}
	var flagsErr *flags.Error
	if !errors.As(err, &flagsErr) {
		fmt.Fprintln(w, "configuration error:", err)
	}
	return 2
}

func run(cfg cmd.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Armed once shutdown begins and stopped after every deferred cleanup.
	var forceExit *time.Timer
	defer func() {
		if forceExit != nil {
			forceExit.Stop()
		}
	}()

	db, err := cmd.OpenDatabase(ctx, cfg.DB)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	cache, closeCache, err := cmd.OpenCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeCache(); closeErr != nil {
			logger.Warn("failed to close cache", "error", closeErr)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err = metrics.Register(registry); err != nil {
		return err
	}

	root := cmd.NewCompositionRoot(cfg, db, cache, logger)
	limiter, err := root.CreateRateLimiter()
	if err != nil {
		return err
	}
	trustedProxies, err := cfg.HTTP.ParseTrustedProxies()
	if err != nil {
		return err
	}
	server := httpin.NewServer(root.CreateHTTPHandlers(), logger)
	e := httpin.NewEcho(server, limiter, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		cfg.Log.SlogLevel(), trustedProxies)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(ctx); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "addr", cfg.HTTPAddr())
		if startErr := e.Start(cfg.HTTPAddr()); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)

		forceExit = time.AfterFunc(cfg.ShutdownTimeout+forcedExitGrace, func() {
			logger.Error("shutdown timed out, forcing exit")
			os.Exit(1)
		})

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
