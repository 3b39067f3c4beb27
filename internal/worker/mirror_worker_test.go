package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/HeitorVic/my-wallet/internal/core"
	"github.com/HeitorVic/my-wallet/internal/events"
)

type fakeJournal struct {
	appended []*events.TransactionEvent
	err      error
}

func (f *fakeJournal) AppendEvent(ctx context.Context, event *events.TransactionEvent) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, event)
	return nil
}

func testEvent(op string) *events.TransactionEvent {
	return events.NewTransactionEvent(op, "alice", core.Transaction{
		ID:          "abc-123",
		Description: "Mercado",
		Amount:      50,
		Type:        core.Expense,
		Category:    "Alimentação",
		Method:      core.MethodDebit,
		Date:        core.NewDate(2024, 1, 15),
	})
}

func TestMirrorWorker_HandleEvent(t *testing.T) {
	journal := &fakeJournal{}
	w := NewMirrorWorker(journal)

	if err := w.HandleEvent(context.Background(), testEvent(events.OpCreated)); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if len(journal.appended) != 1 {
		t.Fatalf("journal has %d rows, want 1", len(journal.appended))
	}
	if journal.appended[0].Transaction.ID != "abc-123" {
		t.Errorf("mirrored id = %s, want abc-123", journal.appended[0].Transaction.ID)
	}
}

func TestMirrorWorker_UnknownOpDropped(t *testing.T) {
	journal := &fakeJournal{}
	w := NewMirrorWorker(journal)

	if err := w.HandleEvent(context.Background(), testEvent("renamed")); err != nil {
		t.Fatalf("HandleEvent() error = %v, want nil for unknown op", err)
	}
	if len(journal.appended) != 0 {
		t.Errorf("journal has %d rows, want 0", len(journal.appended))
	}
}

func TestMirrorWorker_JournalErrorPropagates(t *testing.T) {
	wantErr := errors.New("sheet unavailable")
	w := NewMirrorWorker(&fakeJournal{err: wantErr})

	err := w.HandleEvent(context.Background(), testEvent(events.OpDeleted))
	if !errors.Is(err, wantErr) {
		t.Errorf("HandleEvent() error = %v, want wrapped %v", err, wantErr)
	}
}
