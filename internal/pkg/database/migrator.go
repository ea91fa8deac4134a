package database

import (
	"context"
	"sync"
)

// Migrator applies migrations once. Failed attempts are retried on the next Ensure,
// so a database that was down at startup is migrated as soon as it is reachable.
type Migrator struct {
	mu    sync.Mutex
	done  bool
	apply func(ctx context.Context) error
}

func NewMigrator(db *DB) *Migrator {
	return &Migrator{apply: func(ctx context.Context) error { return Migrate(ctx, db) }}
}

// Ensure runs the migrations unless a previous call already succeeded.
func (m *Migrator) Ensure(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return nil
	}
	if err := m.apply(ctx); err != nil {
		return err
	}
	m.done = true
	return nil
}

// Done reports whether migrations have been applied.
func (m *Migrator) Done() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}
