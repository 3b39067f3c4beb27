// Package categories is the static registry of expense and income
// categories, payment methods and month names. The registry only drives
// display metadata (icon name, color group) and filter options; stored
// category values are never validated against it.
package categories

import "github.com/HeitorVic/my-wallet/internal/core"

// Category is one registry entry. Icon names follow the lucide set used by
// the web client; ColorKey selects the palette group.
type Category struct {
	ID       string `json:"id"`
	Icon     string `json:"icon"`
	ColorKey string `json:"colorKey"`
}

// FallbackID is the designated catch-all: Lookup resolves every unknown
// identifier to this entry so display code never deals with a miss.
const FallbackID = "Outros"

var ExpenseCategories = []Category{
	{ID: "Alimentação", Icon: "coffee", ColorKey: "orange"},
	{ID: "Moradia", Icon: "home", ColorKey: "blue"},
	{ID: "Transporte", Icon: "car", ColorKey: "indigo"},
	{ID: "Lazer", Icon: "shopping-bag", ColorKey: "pink"},
	{ID: "Saúde", Icon: "heart-pulse", ColorKey: "red"},
	{ID: "Educação", Icon: "graduation-cap", ColorKey: "purple"},
	{ID: "Assinaturas", Icon: "refresh-cw", ColorKey: "sky"},
	{ID: "Presentes", Icon: "gift", ColorKey: "rose"},
	{ID: "Pessoal", Icon: "briefcase", ColorKey: "amber"},
	{ID: "Investimento", Icon: "gem", ColorKey: "teal"},
	{ID: "Reserva", Icon: "shield", ColorKey: "lime"},
	{ID: FallbackID, Icon: "more-horizontal", ColorKey: "gray"},
}

var IncomeCategories = []Category{
	{ID: "Salário", Icon: "banknote", ColorKey: "emerald"},
	{ID: "Investimento", Icon: "gem", ColorKey: "teal"},
	{ID: "Reserva", Icon: "shield", ColorKey: "lime"},
	{ID: "Presentes", Icon: "gift", ColorKey: "rose"},
	{ID: "Pessoal", Icon: "briefcase", ColorKey: "amber"},
	{ID: "Outras Receitas", Icon: "more-horizontal", ColorKey: "gray"},
}

// PaymentMethods is the fixed method list; core.MethodDebit is the default
// for transactions imported without one.
var PaymentMethods = []string{
	core.MethodDebit,
	core.MethodCredit,
	"PIX",
	"Dinheiro",
	"Transferência Interna",
}

// MonthNames holds the Portuguese month names, January first; statement
// export filenames are built from these.
var MonthNames = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthName returns the display name for month 1-12, or "" out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MonthNames[month-1]
}

// All returns the de-duplicated union of expense and income categories,
// keyed by first occurrence. Some identifiers (Presentes, Investimento,
// Reserva, Pessoal) appear in both lists; the union backs the filter
// options, where each may appear only once.
func All() []Category {
	seen := make(map[string]struct{}, len(ExpenseCategories)+len(IncomeCategories))
	out := make([]Category, 0, len(ExpenseCategories)+len(IncomeCategories))
	for _, list := range [][]Category{ExpenseCategories, IncomeCategories} {
		for _, c := range list {
			if _, ok := seen[c.ID]; ok {
				continue
			}
			seen[c.ID] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// Lookup resolves a category identifier to its registry entry. Unknown
// identifiers resolve to the fallback entry; the function is total and
// never fails.
func Lookup(id string) Category {
	for _, c := range All() {
		if c.ID == id {
			return c
		}
	}
	for _, c := range ExpenseCategories {
		if c.ID == FallbackID {
			return c
		}
	}
	// Unreachable while the fallback entry stays in the registry.
	return Category{ID: FallbackID, Icon: "more-horizontal", ColorKey: "gray"}
}

// ValidMethod reports whether m is in the fixed payment-method set.
func ValidMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// DefaultFor returns the initial form category for a transaction type.
func DefaultFor(tt core.TransactionType) string {
	if tt == core.Income {
		return IncomeCategories[0].ID
	}
	return ExpenseCategories[0].ID
}
