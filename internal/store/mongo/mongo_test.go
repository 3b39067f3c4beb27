package mongo

import (
	"errors"
	"testing"
	"time"

	"github.com/HeitorVic/my-wallet/internal/core"
)

func TestTransactionDocMapping(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tx := core.Transaction{
		ID:          "abc",
		Description: "Mercado",
		Amount:      123.45,
		Type:        core.Expense,
		Category:    "Alimentação",
		Method:      core.MethodCredit,
		Date:        core.NewDate(2024, 2, 29),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	doc := fromTransaction("alice", tx)
	if doc.Owner != "alice" {
		t.Errorf("Owner = %s, want alice", doc.Owner)
	}
	if doc.Date != "2024-02-29" {
		t.Errorf("Date = %s, want 2024-02-29", doc.Date)
	}

	back, err := doc.toTransaction()
	if err != nil {
		t.Fatalf("toTransaction() error = %v", err)
	}
	if back.ID != tx.ID || back.Description != tx.Description || back.Amount != tx.Amount ||
		back.Type != tx.Type || back.Category != tx.Category || back.Method != tx.Method {
		t.Errorf("round trip = %+v, want %+v", back, tx)
	}
	if !back.Date.Equal(tx.Date.Time) {
		t.Errorf("Date = %s, want %s", back.Date.ISO(), tx.Date.ISO())
	}
	if !back.CreatedAt.Equal(tx.CreatedAt) || !back.UpdatedAt.Equal(tx.UpdatedAt) {
		t.Errorf("timestamps = %v/%v, want %v", back.CreatedAt, back.UpdatedAt, now)
	}
}

func TestTransactionDocBadDate(t *testing.T) {
	doc := transactionDoc{ID: "abc", Date: "29/02/2024"}
	if _, err := doc.toTransaction(); !errors.Is(err, core.ErrInvalidDate) {
		t.Errorf("toTransaction() error = %v, want ErrInvalidDate", err)
	}
}
