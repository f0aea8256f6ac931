package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"kantong/internal/amqp"
	"kantong/internal/cli"
	"kantong/internal/log"
	"kantong/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg, log.ComponentWorker)

	if !cfg.AMQPEnabled() {
		logger.Error("KANTONG_AMQP_URL is required for the worker")
		os.Exit(1)
	}

	logger.Info("Starting kantong-worker",
		log.FieldOperation, log.OpStartup,
		log.FieldBackend, cfg.DataBackend)

	res, err := cli.OpenBackend(context.Background(), logger, cfg)
	if err != nil {
		logger.Error("Failed to open backend", "error", err)
		os.Exit(1)
	}
	defer res.Cleanup()

	// Initialize AMQP client for consuming messages
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, done := cli.GracefulShutdown(logger, 10*time.Second, nil)
	ctx = log.WithContext(ctx, logger)

	budgetWorker := worker.NewBudgetWorker(res.Service, logger.Logger)

	// Catch up on anything that changed while the worker was down
	if _, err := budgetWorker.StartupCheck(ctx); err != nil {
		logger.Error("Failed startup budget check", "error", err)
	}

	go func() {
		err := amqpClient.ConsumeWithReconnect(ctx, budgetWorker.HandleEvent)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("Worker started, waiting for events", "queue", cfg.AMQPQueue)
	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker shutting down", log.FieldOperation, log.OpShutdown)
}
