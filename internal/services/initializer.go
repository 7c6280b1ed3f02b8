package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ticketresale/internal/domain"
)

// initializer remembers, for the life of the process, that schema creation succeeded.
// A restart runs it again, which EnsureSchema tolerates.
type initializer struct {
	mu             sync.Mutex
	done           bool
	schema         domain.SchemaStore
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewInitializer(schema domain.SchemaStore, logger *slog.Logger, timeout time.Duration) domain.SchemaInitializer {
	return &initializer{
		schema:         schema,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// Initialize holds the lock while creating the schema, so concurrent first calls wait for the
// winner instead of racing it. A failure leaves the flag unset and the next call retries.
func (i *initializer) Initialize(ctx context.Context) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.done {
		return true, nil
	}

	ctx, cancel := context.WithTimeout(ctx, i.contextTimeout)
	defer cancel()

	if err := i.schema.EnsureSchema(ctx); err != nil {
		i.logger.ErrorContext(ctx, "database initialization failed", "err", err)
		return false, fmt.Errorf("initialize database: %w", err)
	}
	i.done = true
	i.logger.InfoContext(ctx, "database initialized")
	return false, nil
}
