package core

import "testing"

func TestSplitInstallments(t *testing.T) {
	d := Draft{
		Description: "Notebook",
		Amount:      300,
		Type:        Expense,
		Category:    "Pessoal",
		Method:      MethodCredit,
		Date:        NewDate(2024, 1, 15),
	}

	parts, err := SplitInstallments(d, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 3 {
		t.Fatalf("got %d parts, want 3", len(parts))
	}

	wantDates := []string{"2024-01-15", "2024-02-15", "2024-03-15"}
	wantDescs := []string{"Notebook (1/3)", "Notebook (2/3)", "Notebook (3/3)"}
	for i, p := range parts {
		if p.Amount != 100 {
			t.Errorf("part %d amount = %v, want 100", i, p.Amount)
		}
		if p.Date.ISO() != wantDates[i] {
			t.Errorf("part %d date = %s, want %s", i, p.Date.ISO(), wantDates[i])
		}
		if p.Description != wantDescs[i] {
			t.Errorf("part %d description = %q, want %q", i, p.Description, wantDescs[i])
		}
		if p.Method != MethodCredit || p.Type != Expense || p.Category != "Pessoal" {
			t.Errorf("part %d lost fields: %+v", i, p)
		}
	}
}

func TestSplitInstallmentsUnevenDivision(t *testing.T) {
	d := Draft{
		Description: "Sofá",
		Amount:      100,
		Type:        Expense,
		Category:    "Moradia",
		Method:      MethodCredit,
		Date:        NewDate(2024, 3, 1),
	}
	parts, err := SplitInstallments(d, 3)
	if err != nil {
		t.Fatal(err)
	}
	// The division is intentionally not re-normalized; each part is the
	// exact quotient even when it is not representable in whole cents.
	for i, p := range parts {
		if p.Amount != 100.0/3.0 {
			t.Errorf("part %d amount = %v, want %v", i, p.Amount, 100.0/3.0)
		}
	}
}

func TestSplitInstallmentsRejectsSmallCounts(t *testing.T) {
	d := Draft{
		Description: "x",
		Amount:      10,
		Type:        Expense,
		Category:    "Outros",
		Method:      MethodCredit,
		Date:        NewDate(2024, 1, 1),
	}
	for _, n := range []int{-1, 0, 1} {
		if _, err := SplitInstallments(d, n); err != ErrInvalidInstallments {
			t.Errorf("n=%d: got %v, want ErrInvalidInstallments", n, err)
		}
	}
}
