// Package statement encodes and decodes the CSV bank-statement format the
// wallet exchanges with spreadsheets: semicolon-delimited, UTF-8 with a
// byte-order mark, Brazilian dates and decimal commas.
package statement

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/HeitorVic/my-wallet/internal/categories"
	"github.com/HeitorVic/my-wallet/internal/core"
)

// Header is the fixed first row of every statement file.
const Header = "Data;Descrição;Categoria;Tipo;Método;Valor"

const (
	labelIncome  = "Receita"
	labelExpense = "Despesa"

	// missingMethod stands in for an absent payment method on export and
	// maps back to the debit default on import.
	missingMethod = "-"
)

// bom is prepended so spreadsheet applications detect UTF-8.
var bom = []byte{0xEF, 0xBB, 0xBF}

// Filename builds the download name for a month's statement,
// e.g. "extrato_Janeiro_2024.csv".
func Filename(year, month int) string {
	return fmt.Sprintf("extrato_%s_%d.csv", categories.MonthName(month), year)
}

// Encode renders transactions as a statement file. The column order is
// fixed; only the description is quoted (with internal quotes doubled),
// matching what the import side expects. Rows keep the input order.
func Encode(list []core.Transaction) []byte {
	var b strings.Builder
	b.Write(bom)
	b.WriteString(Header)
	for _, t := range list {
		b.WriteByte('\n')
		b.WriteString(encodeRow(t))
	}
	return []byte(b.String())
}

func encodeRow(t core.Transaction) string {
	method := t.Method
	if method == "" {
		method = missingMethod
	}
	label := labelExpense
	if t.Type == core.Income {
		label = labelIncome
	}
	cols := []string{
		fmt.Sprintf("%02d/%02d/%04d", t.Date.Day(), t.Date.Month(), t.Date.Year()),
		`"` + strings.ReplaceAll(t.Description, `"`, `""`) + `"`,
		t.Category,
		label,
		method,
		strings.Replace(strconv.FormatFloat(t.Amount, 'f', 2, 64), ".", ",", 1),
	}
	return strings.Join(cols, ";")
}

// Decode parses a statement file into drafts for the given month. The
// header row is discarded; blank lines and rows with fewer than six
// columns are skipped; rows dated outside (year, month) are silently
// discarded — an import is always scoped to the month being viewed. A
// missing method becomes the debit default.
func Decode(data []byte, year, month int) []core.Draft {
	text := strings.TrimPrefix(string(data), string(bom))
	lines := strings.Split(text, "\n")
	if len(lines) > 0 {
		lines = lines[1:] // header
	}

	var drafts []core.Draft
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, ";")
		if len(cols) < 6 {
			continue
		}
		d, ok := decodeRow(cols, year, month)
		if !ok {
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts
}

func decodeRow(cols []string, year, month int) (core.Draft, bool) {
	day, m, y, ok := parseBRDate(cols[0])
	if !ok || m != month || y != year {
		return core.Draft{}, false
	}

	tt := core.Expense
	if strings.TrimSpace(cols[3]) == labelIncome {
		tt = core.Income
	}

	method := strings.TrimSpace(cols[4])
	if method == missingMethod || method == "" {
		method = core.MethodDebit
	}

	return core.Draft{
		Description: unquote(cols[1]),
		Amount:      core.ParseAmount(cols[5]),
		Type:        tt,
		Category:    strings.TrimSpace(cols[2]),
		Method:      method,
		Date:        core.NewDate(y, m, day),
	}, true
}

// parseBRDate reads day/month/year with or without zero padding.
func parseBRDate(s string) (day, month, year int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var err error
	if day, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, false
	}
	if month, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, false
	}
	if year, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, 0, false
	}
	return day, month, year, true
}

func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.ReplaceAll(s, `""`, `"`)
}
