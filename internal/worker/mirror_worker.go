// Package worker consumes wallet change events and mirrors them into the
// Google Sheets journal.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/HeitorVic/my-wallet/internal/events"
	applog "github.com/HeitorVic/my-wallet/internal/log"
)

// Journal is what the worker needs from the sheets mirror
type Journal interface {
	AppendEvent(ctx context.Context, event *events.TransactionEvent) error
}

// MirrorWorker appends every consumed event to the journal
type MirrorWorker struct {
	journal Journal
}

func NewMirrorWorker(journal Journal) *MirrorWorker {
	return &MirrorWorker{journal: journal}
}

// HandleEvent mirrors a single event. Returning an error requeues the
// delivery on the broker.
func (w *MirrorWorker) HandleEvent(ctx context.Context, event *events.TransactionEvent) error {
	if event.Op != events.OpCreated && event.Op != events.OpUpdated && event.Op != events.OpDeleted {
		// Unknown ops are dropped, not requeued
		slog.WarnContext(ctx, "skipping event with unknown op", applog.FieldOperation, event.Op)
		return nil
	}

	if err := w.journal.AppendEvent(ctx, event); err != nil {
		return fmt.Errorf("append event to journal: %w", err)
	}

	slog.InfoContext(ctx, "mirrored transaction event",
		applog.FieldOperation, event.Op,
		applog.FieldOwner, event.Owner,
		applog.FieldTransaction, event.Transaction.ID)

	return nil
}

// Run consumes events until the context is canceled, reconnecting to the
// broker as needed.
func (w *MirrorWorker) Run(ctx context.Context, amqpURL, exchange, queue string, reconnectBase time.Duration) error {
	return events.ConsumeWithReconnect(ctx, amqpURL, exchange, queue, reconnectBase, func(event *events.TransactionEvent) error {
		return w.HandleEvent(ctx, event)
	})
}
