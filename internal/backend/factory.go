package backend

import (
	"context"
	"fmt"
	"log/slog"

	"kantong/internal/amqp"
	"kantong/internal/services"
	"kantong/internal/storage"
	"kantong/internal/store"
	"kantong/internal/store/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		st  store.Store
		err error
	)
	switch config.Type {
	case SQLiteBackend:
		st, err = storage.NewSQLiteRepository(config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.InfoContext(ctx, "Initialized SQLite backend", "db_path", config.DBPath)
	case MemoryBackend:
		st = memory.New()
		f.logger.InfoContext(ctx, "Initialized memory backend")
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	// A nil *amqp.Client must not end up inside the interface.
	var publisher services.EventPublisher
	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			publisher = client
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	svc := services.NewExpenseService(st, publisher)

	return &BackendResult{
		Service: svc,
		Cleanup: svc.Close,
	}, nil
}
