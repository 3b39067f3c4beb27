package core

import "sort"

type (
	// MonthSummary is the dashboard's headline numbers for one month.
	MonthSummary struct {
		Income        float64
		Expense       float64
		Balance       float64
		CreditExpense float64
	}

	// CategoryTotal is one slice of the category breakdown chart.
	CategoryTotal struct {
		Category string
		Total    float64
	}
)

// InMonth reports whether the transaction's UTC calendar date falls in the
// given year and month (1-12).
func InMonth(t Transaction, year, month int) bool {
	return t.Date.Year() == year && t.Date.Month() == month
}

// MonthTransactions filters the list to one month, preserving input order.
func MonthTransactions(list []Transaction, year, month int) []Transaction {
	var out []Transaction
	for _, t := range list {
		if InMonth(t, year, month) {
			out = append(out, t)
		}
	}
	return out
}

// Summarize derives the month's totals from the full transaction list.
// Sums are plain additions, so the result does not depend on input order;
// rounding happens only at display time.
func Summarize(list []Transaction, year, month int) MonthSummary {
	var s MonthSummary
	for _, t := range list {
		if !InMonth(t, year, month) {
			continue
		}
		switch t.Type {
		case Income:
			s.Income += t.Amount
		case Expense:
			s.Expense += t.Amount
			if t.Method == MethodCredit {
				s.CreditExpense += t.Amount
			}
		}
	}
	s.Balance = s.Income - s.Expense
	return s
}

// Breakdown groups the month's expenses by category, summing amounts, and
// returns the totals sorted descending. Categories without expenses in the
// month are omitted rather than zero-filled.
func Breakdown(list []Transaction, year, month int) []CategoryTotal {
	sums := make(map[string]float64)
	var order []string
	for _, t := range list {
		if t.Type != Expense || !InMonth(t, year, month) {
			continue
		}
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.Amount
	}
	out := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryTotal{Category: cat, Total: sums[cat]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

// FilterMonth is the dashboard list view: the month's transactions,
// optionally narrowed to one category and one method (empty string means
// no filter), newest date first.
func FilterMonth(list []Transaction, year, month int, category, method string) []Transaction {
	var out []Transaction
	for _, t := range list {
		if !InMonth(t, year, month) {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		if method != "" && t.Method != method {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}
