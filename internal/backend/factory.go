package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"expenses/internal/amqp"
	"expenses/internal/ports"
	"expenses/internal/storage"
	"expenses/internal/store/memory"
)

type DefaultFactory struct {
	logger *slog.Logger
	dialer func(url, exchange, queue string) (ports.EventPublisher, error)
}

func NewFactory(logger *slog.Logger) *DefaultFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
		dialer: func(url, exchange, queue string) (ports.EventPublisher, error) {
			return amqp.NewClient(url, exchange, queue)
		},
	}
}

var _ Factory = (*DefaultFactory)(nil)

// CreateBackend opens the configured store. A broker that cannot be reached
// disables events instead of failing startup.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		store   ports.ExpenseStore
		closers []io.Closer
	)

	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		store = repo
		closers = append(closers, repo)
		f.logger.InfoContext(ctx, "Initialized SQLite backend", "component", "backend", "db_path", config.SQLiteDBPath)

	case MemoryBackend:
		mem, err := memory.NewFromFile(config.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed file: %w", err)
		}
		store = mem
		f.logger.InfoContext(ctx, "Initialized memory backend", "component", "backend", "seed_file", config.SeedFile, "expenses", mem.Len())

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	result := &BackendResult{Store: store}

	if config.AMQPURL != "" {
		pub, err := f.dialer(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", "component", "backend", "error", err)
		} else {
			result.Publisher = pub
			if c, ok := pub.(io.Closer); ok {
				closers = append(closers, c)
			}
			f.logger.InfoContext(ctx, "Initialized AMQP client", "component", "backend", "exchange", config.AMQPExchange, "queue", config.AMQPQueue)
		}
	}

	result.Cleanup = func() error {
		var errs []error
		for _, c := range closers {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
	return result, nil
}
