package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/HeitorVic/my-wallet/internal/core"
	"github.com/HeitorVic/my-wallet/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "wallet.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func draft(desc string, amount float64, day int) core.Draft {
	return core.Draft{
		Description: desc,
		Amount:      amount,
		Type:        core.Expense,
		Category:    "Alimentação",
		Method:      core.MethodDebit,
		Date:        core.NewDate(2024, 1, day),
	}
}

func TestStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "alice", core.Draft{
		Description: "Salário",
		Amount:      5000,
		Type:        core.Income,
		Category:    "Salário",
		Method:      core.MethodDebit,
		Date:        core.NewDate(2024, 1, 5),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	list, err := s.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("List() returned %d records, want 1", len(list))
	}

	got := list[0]
	if got.ID != created.ID {
		t.Errorf("ID = %s, want %s", got.ID, created.ID)
	}
	if got.Description != "Salário" || got.Amount != 5000 || got.Type != core.Income {
		t.Errorf("stored record = %+v", got)
	}
	if got.Date.ISO() != "2024-01-05" {
		t.Errorf("Date = %s, want 2024-01-05", got.Date.ISO())
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not persisted")
	}
}

func TestStore_ListOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Create(ctx, "alice", draft("Antiga", 10, 5))
	s.Create(ctx, "alice", draft("Recente", 20, 25))
	s.Create(ctx, "alice", draft("Meio", 30, 15))

	list, err := s.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var got []string
	for _, tx := range list {
		got = append(got, tx.Description)
	}
	want := []string{"Recente", "Meio", "Antiga"}
	if len(got) != len(want) {
		t.Fatalf("List() returned %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List() order = %v, want %v", got, want)
		}
	}
}

func TestStore_CreateManyRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateMany(ctx, "alice", []core.Draft{
		draft("Parcela (1/2)", 50, 10),
		{Description: "", Amount: 50, Type: core.Expense, Category: "Outros", Method: core.MethodDebit, Date: core.NewDate(2024, 2, 10)},
	})
	if !errors.Is(err, core.ErrEmptyDescription) {
		t.Fatalf("CreateMany() error = %v, want ErrEmptyDescription", err)
	}

	list, _ := s.List(ctx, "alice")
	if len(list) != 0 {
		t.Errorf("failed CreateMany() persisted %d records, want 0", len(list))
	}
}

func TestStore_UpdateDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tx, _ := s.Create(ctx, "alice", draft("Mercado", 50, 10))

	updated, err := s.Update(ctx, "alice", tx.ID, draft("Feira", 80, 12))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Description != "Feira" || updated.Amount != 80 {
		t.Errorf("Update() = %+v, want Feira/80", updated)
	}

	if _, err := s.Update(ctx, "bob", tx.ID, draft("Feira", 80, 12)); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Update() across owners error = %v, want ErrNotFound", err)
	}

	if err := s.Delete(ctx, "alice", tx.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "alice", tx.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestStore_Subscribe(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sub, err := s.Subscribe(ctx, "alice")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer sub.Stop()

	snap := waitSnapshot(t, sub)
	if len(snap) != 0 {
		t.Fatalf("first snapshot has %d records, want 0", len(snap))
	}

	s.Create(ctx, "alice", draft("Mercado", 50, 10))
	snap = waitSnapshot(t, sub)
	if len(snap) != 1 || snap[0].Description != "Mercado" {
		t.Fatalf("snapshot after create = %+v, want [Mercado]", snap)
	}
}

func TestStore_Preferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	prefs, err := s.Preferences(ctx, "alice")
	if err != nil {
		t.Fatalf("Preferences() error = %v", err)
	}
	if prefs != store.DefaultPreferences() {
		t.Errorf("Preferences() before save = %+v, want defaults", prefs)
	}

	want := store.Preferences{Theme: "light", PrivacyMode: true}
	if err := s.SavePreferences(ctx, "alice", want); err != nil {
		t.Fatalf("SavePreferences() error = %v", err)
	}
	// Overwrite path
	want.PrivacyMode = false
	if err := s.SavePreferences(ctx, "alice", want); err != nil {
		t.Fatalf("SavePreferences() overwrite error = %v", err)
	}

	got, _ := s.Preferences(ctx, "alice")
	if got != want {
		t.Errorf("Preferences() = %+v, want %+v", got, want)
	}
}

func waitSnapshot(t *testing.T, sub store.Subscription) []core.Transaction {
	t.Helper()
	select {
	case snap, ok := <-sub.Snapshots():
		if !ok {
			t.Fatal("snapshot channel closed unexpectedly")
		}
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}
