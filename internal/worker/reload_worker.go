package worker

import (
	"context"
	"fmt"
	"log/slog"

	"inflation/internal/amqp"
	applog "inflation/internal/log"
	"inflation/internal/rates"
)

// ReloadWorker applies reload events to the rate store. Each event
// rebuilds the table from the source and publishes it as a new snapshot;
// in-flight calculations keep the snapshot they started with.
type ReloadWorker struct {
	store rates.Store
}

func NewReloadWorker(store rates.Store) *ReloadWorker {
	return &ReloadWorker{store: store}
}

// HandleReloadMessage processes a single rates reload message from AMQP.
func (w *ReloadWorker) HandleReloadMessage(ctx context.Context, msg *amqp.RatesReloadMessage) error {
	slog.InfoContext(ctx, "Processing rates reload message",
		applog.FieldSource, msg.Source,
		"published_at", msg.Timestamp)

	if err := w.store.Load(ctx); err != nil {
		return fmt.Errorf("reload rate table: %w", err)
	}

	table, err := w.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot after reload: %w", err)
	}

	slog.InfoContext(ctx, "Rate table reloaded",
		applog.FieldSource, msg.Source,
		applog.FieldRecords, table.Len(),
		applog.FieldVersion, table.Version())
	return nil
}
