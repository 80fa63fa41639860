package writer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantgrid/nse-chain-data/internal/model"
)

// Writer persists capture batches to per-underlying tables.
type Writer struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// New creates a new Writer.
func New(db *pgxpool.Pool, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{db: db, logger: logger}
}

// Write inserts all rows of batch into its underlying's table in one
// transaction and returns the row count. Any row failure rolls back the
// whole batch.
func (w *Writer) Write(ctx context.Context, batch model.CaptureBatch) (int, error) {
	if !batch.Underlying.Valid() {
		return 0, fmt.Errorf("unknown underlying %q", batch.Underlying)
	}
	if len(batch.Rows) == 0 {
		return 0, nil
	}

	table := batch.Underlying.Policy().Table
	sql := insertSQL(table)

	tx, err := w.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	b := &pgx.Batch{}
	for i := range batch.Rows {
		b.Queue(sql, rowValues(&batch, &batch.Rows[i])...)
	}

	results := tx.SendBatch(ctx, b)
	var execErr error
	for range batch.Rows {
		if _, err := results.Exec(); err != nil {
			execErr = err
			break
		}
	}
	if err := results.Close(); err != nil && execErr == nil {
		execErr = err
	}
	if execErr != nil {
		return 0, fmt.Errorf("insert batch into %s: %w", table, execErr)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit batch: %w", err)
	}

	w.logger.Info("inserted option chain batch",
		"batch_id", batch.ID,
		"table", table,
		"expiry", batch.ExpiryDate,
		"rows", len(batch.Rows),
	)
	return len(batch.Rows), nil
}
