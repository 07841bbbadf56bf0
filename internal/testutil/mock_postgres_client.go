package testutil

import (
	"context"

	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/postgres"
	"github.com/flexprice/propbill/internal/types"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

type mockTxKey struct{}

// MockPostgresClient emulates a unit of work over in-memory stores: the stores are
// snapshotted when the outermost transaction opens and restored if fn fails or panics.
type MockPostgresClient struct {
	logger *logger.Logger
	stores []Snapshotter

	// Commits and Rollbacks count finished outermost transactions
	Commits   int
	Rollbacks int
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger, stores ...Snapshotter) *MockPostgresClient {
	return &MockPostgresClient{
		logger: logger,
		stores: stores,
	}
}

// WithTx executes the given function within a transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) (err error) {
	// If we're already in a transaction, reuse it
	if ctx.Value(mockTxKey{}) != nil {
		return fn(ctx)
	}

	restores := make([]func(), 0, len(c.stores))
	for _, s := range c.stores {
		restores = append(restores, s.Snapshot())
	}
	rollback := func() {
		for _, restore := range restores {
			restore()
		}
		c.Rollbacks++
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	txID := types.GenerateUUIDWithPrefix("tx")
	if err = fn(context.WithValue(ctx, mockTxKey{}, txID)); err != nil {
		c.logger.Debugw("rolling back mock transaction", "tx_id", txID, "error", err)
		rollback()
		return err
	}
	c.Commits++
	return nil
}
