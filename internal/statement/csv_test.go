package statement

import (
	"bytes"
	"strings"
	"testing"

	"github.com/HeitorVic/my-wallet/internal/core"
)

func mustDate(t *testing.T, s string) core.Date {
	t.Helper()
	d, err := core.ParseISODate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestFilename(t *testing.T) {
	if got := Filename(2024, 1); got != "extrato_Janeiro_2024.csv" {
		t.Errorf("Filename = %q", got)
	}
	if got := Filename(2023, 12); got != "extrato_Dezembro_2023.csv" {
		t.Errorf("Filename = %q", got)
	}
}

func TestEncode(t *testing.T) {
	list := []core.Transaction{
		{
			Description: `Café "especial"`,
			Amount:      12.5,
			Type:        core.Expense,
			Category:    "Alimentação",
			Method:      core.MethodCredit,
			Date:        mustDate(t, "2024-01-05"),
		},
		{
			Description: "Salário",
			Amount:      3500,
			Type:        core.Income,
			Category:    "Salário",
			Date:        mustDate(t, "2024-01-01"),
		},
	}
	data := Encode(list)

	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("output missing UTF-8 BOM")
	}
	lines := strings.Split(strings.TrimPrefix(string(data), "\uFEFF"), "\n")
	if lines[0] != Header {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != `05/01/2024;"Café ""especial""";Alimentação;Despesa;Crédito;12,50` {
		t.Errorf("row 1 = %q", lines[1])
	}
	// Missing method exports as the placeholder.
	if lines[2] != `01/01/2024;"Salário";Salário;Receita;-;3500,00` {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestDecode(t *testing.T) {
	csv := "\uFEFF" + Header + "\n" +
		`15/01/2024;"Mercado";Alimentação;Despesa;Débito;150,75` + "\n" +
		"\n" + // blank line skipped
		`16/01/2024;broken row` + "\n" + // too few columns
		`20/02/2024;"Fora do mês";Lazer;Despesa;PIX;10,00` + "\n" + // wrong month
		`05/01/2024;"Bônus";Salário;Receita;-;500,00`

	drafts := Decode([]byte(csv), 2024, 1)
	if len(drafts) != 2 {
		t.Fatalf("got %d drafts, want 2", len(drafts))
	}

	d := drafts[0]
	if d.Description != "Mercado" || d.Amount != 150.75 || d.Type != core.Expense {
		t.Errorf("draft 0 = %+v", d)
	}
	if d.Date.ISO() != "2024-01-15" {
		t.Errorf("draft 0 date = %s", d.Date.ISO())
	}

	b := drafts[1]
	if b.Type != core.Income || b.Amount != 500 {
		t.Errorf("draft 1 = %+v", b)
	}
	// Placeholder method maps back to the debit default.
	if b.Method != core.MethodDebit {
		t.Errorf("draft 1 method = %q, want %q", b.Method, core.MethodDebit)
	}
}

func TestDecodeMonthScoping(t *testing.T) {
	csv := Header + "\n" +
		`01/03/2024;"a";Outros;Despesa;PIX;1,00` + "\n" +
		`31/03/2024;"b";Outros;Despesa;PIX;2,00` + "\n" +
		`01/04/2024;"c";Outros;Despesa;PIX;3,00` + "\n" +
		`01/03/2023;"d";Outros;Despesa;PIX;4,00`

	drafts := Decode([]byte(csv), 2024, 3)
	if len(drafts) != 2 {
		t.Fatalf("got %d drafts, want 2 (out-of-month rows must not count)", len(drafts))
	}
}

func TestRoundTrip(t *testing.T) {
	orig := []core.Transaction{
		{
			Description: `Jantar "aniversário"`,
			Amount:      89.9,
			Type:        core.Expense,
			Category:    "Lazer",
			Method:      "PIX",
			Date:        mustDate(t, "2024-06-07"),
		},
		{
			Description: "Freela",
			Amount:      1200,
			Type:        core.Income,
			Category:    "Outras Receitas",
			Method:      core.MethodDebit,
			Date:        mustDate(t, "2024-06-20"),
		},
	}

	drafts := Decode(Encode(orig), 2024, 6)
	if len(drafts) != len(orig) {
		t.Fatalf("got %d drafts, want %d", len(drafts), len(orig))
	}
	for i, d := range drafts {
		o := orig[i]
		if d.Description != o.Description || d.Amount != o.Amount ||
			d.Type != o.Type || d.Category != o.Category ||
			d.Method != o.Method || d.Date.ISO() != o.Date.ISO() {
			t.Errorf("record %d: got %+v, want %+v", i, d, o)
		}
	}
}
