package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"inflation/internal/amqp"
	"inflation/internal/backend"
	"inflation/internal/cli"
	apphttp "inflation/internal/http"
	applog "inflation/internal/log"
	"inflation/internal/services"
	"inflation/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Build the configured rate store.
	factory := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger)
	result, err := factory.CreateStore(ctx, backend.Config{
		Type:         backend.Type(cfg.RatesBackend),
		CSVPath:      cfg.CSVPath,
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize rate store", applog.FieldError, err)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	// A service with no data is useless, so a failed initial load is fatal.
	if err := result.Store.Load(ctx); err != nil {
		logger.Error("Failed to load inflation data", applog.FieldError, err)
		os.Exit(1)
	}

	service := services.NewInflationService(result.Store)
	srv := apphttp.NewServer(":"+cfg.Port, service)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Reload events are optional: without AMQP the table is load-once.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without reload events",
				applog.FieldError, err)
		} else {
			defer amqpClient.Close()
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting inflation server",
			"port", cfg.Port, "backend", cfg.RatesBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	if amqpClient != nil {
		reloadWorker := worker.NewReloadWorker(result.Store)
		g.Go(func() error {
			err := amqpClient.ConsumeRatesReload(gctx, reloadWorker.HandleReloadMessage)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
