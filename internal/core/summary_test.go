package core

import "testing"

func tx(desc string, amount float64, tt TransactionType, category, method, date string) Transaction {
	d, err := ParseISODate(date)
	if err != nil {
		panic(err)
	}
	return Transaction{
		Description: desc,
		Amount:      amount,
		Type:        tt,
		Category:    category,
		Method:      method,
		Date:        d,
	}
}

func TestSummarize(t *testing.T) {
	list := []Transaction{
		tx("mercado", 100, Expense, "Alimentação", MethodDebit, "2024-01-10"),
		tx("salário", 500, Income, "Salário", MethodDebit, "2024-01-05"),
		tx("uber", 50, Expense, "Transporte", MethodDebit, "2024-02-03"),
	}

	jan := Summarize(list, 2024, 1)
	if jan.Income != 500 || jan.Expense != 100 || jan.Balance != 400 {
		t.Errorf("Jan 2024: got %+v", jan)
	}

	feb := Summarize(list, 2024, 2)
	if feb.Expense != 50 || feb.Income != 0 || feb.Balance != -50 {
		t.Errorf("Feb 2024: got %+v", feb)
	}
}

func TestSummarizeCreditExpense(t *testing.T) {
	list := []Transaction{
		tx("tv", 300, Expense, "Lazer", MethodCredit, "2024-01-10"),
		tx("mercado", 100, Expense, "Alimentação", MethodDebit, "2024-01-12"),
		tx("estorno", 300, Income, "Outras Receitas", MethodCredit, "2024-01-14"),
	}
	s := Summarize(list, 2024, 1)
	if s.CreditExpense != 300 {
		t.Errorf("CreditExpense = %v, want 300 (income on credit must not count)", s.CreditExpense)
	}
	if s.Expense != 400 {
		t.Errorf("Expense = %v, want 400", s.Expense)
	}
}

func TestBreakdown(t *testing.T) {
	list := []Transaction{
		tx("ônibus", 40, Expense, "Transporte", MethodDebit, "2024-01-08"),
		tx("mercado", 35, Expense, "Alimentação", MethodDebit, "2024-01-10"),
		tx("padaria", 25, Expense, "Alimentação", MethodDebit, "2024-01-11"),
		tx("salário", 500, Income, "Salário", MethodDebit, "2024-01-05"),
		tx("cinema", 50, Expense, "Lazer", MethodDebit, "2024-02-01"),
	}
	got := Breakdown(list, 2024, 1)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2 (no zero-filled categories)", len(got))
	}
	if got[0].Category != "Alimentação" || got[0].Total != 60 {
		t.Errorf("entry 0 = %+v, want Alimentação 60", got[0])
	}
	if got[1].Category != "Transporte" || got[1].Total != 40 {
		t.Errorf("entry 1 = %+v, want Transporte 40", got[1])
	}
}

func TestBreakdownEmpty(t *testing.T) {
	if got := Breakdown(nil, 2024, 1); len(got) != 0 {
		t.Errorf("empty list produced %v", got)
	}
}

func TestFilterMonth(t *testing.T) {
	list := []Transaction{
		tx("a", 10, Expense, "Alimentação", MethodDebit, "2024-01-05"),
		tx("b", 20, Expense, "Transporte", MethodCredit, "2024-01-20"),
		tx("c", 30, Expense, "Alimentação", MethodCredit, "2024-01-10"),
		tx("d", 40, Expense, "Alimentação", MethodDebit, "2024-02-01"),
	}

	all := FilterMonth(list, 2024, 1, "", "")
	if len(all) != 3 {
		t.Fatalf("month filter: got %d, want 3", len(all))
	}
	// Newest first.
	if all[0].Description != "b" || all[1].Description != "c" || all[2].Description != "a" {
		t.Errorf("order = %s,%s,%s", all[0].Description, all[1].Description, all[2].Description)
	}

	food := FilterMonth(list, 2024, 1, "Alimentação", "")
	if len(food) != 2 {
		t.Errorf("category filter: got %d, want 2", len(food))
	}

	credit := FilterMonth(list, 2024, 1, "Alimentação", MethodCredit)
	if len(credit) != 1 || credit[0].Description != "c" {
		t.Errorf("combined filter: got %+v", credit)
	}
}
