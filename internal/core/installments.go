package core

import (
	"errors"
	"fmt"
)

// ErrInvalidInstallments rejects split requests with fewer than two parts.
var ErrInvalidInstallments = errors.New("installment count must be at least 2")

// SplitInstallments turns one credit purchase into n sibling drafts, one
// calendar month apart starting at the draft's date. Each part carries
// amount/n — the division is deliberately not re-normalized to currency
// precision, so the parts may drift from the total by a fraction of a
// cent — and the description gains an "(i/n)" suffix. The siblings share
// no linkage once created: editing or deleting one never touches the rest.
func SplitInstallments(d Draft, n int) ([]Draft, error) {
	if n < 2 {
		return nil, ErrInvalidInstallments
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	part := d.Amount / float64(n)
	out := make([]Draft, n)
	for i := 0; i < n; i++ {
		out[i] = d
		out[i].Amount = part
		out[i].Description = fmt.Sprintf("%s (%d/%d)", d.Description, i+1, n)
		out[i].Date = d.Date.AddMonths(i)
	}
	return out, nil
}
