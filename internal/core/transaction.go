package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

// Payment methods the ledger recognizes. The full display list lives in the
// categories registry; these two carry semantics (defaulting and credit-card
// aggregation) and are needed here.
const (
	MethodDebit  = "Débito"
	MethodCredit = "Crédito"
)

type (
	TransactionType string

	// Date is a calendar day. Bucketing always uses the UTC month and
	// year, so a transaction dated the 1st can never slide into the
	// previous month for a viewer in a western timezone.
	Date struct {
		time.Time
	}

	// Transaction is a single ledger document. Amount is a positive
	// magnitude; the sign is implied by Type.
	Transaction struct {
		ID          string          `json:"id"`
		Description string          `json:"description"`
		Amount      float64         `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Method      string          `json:"method"`
		Date        Date            `json:"date"`
		CreatedAt   time.Time       `json:"createdAt"`
		UpdatedAt   time.Time       `json:"updatedAt"`
	}

	// Draft is the user-entered part of a transaction, before the store
	// assigns an ID and timestamps.
	Draft struct {
		Description string          `json:"description"`
		Amount      float64         `json:"amount"`
		Type        TransactionType `json:"type"`
		Category    string          `json:"category"`
		Method      string          `json:"method"`
		Date        Date            `json:"date"`
	}
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrNegativeAmount   = errors.New("negative amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidDate      = errors.New("invalid date")
)

// NewDate creates a Date from year, month, day. Out-of-range values
// normalize the way time.Date does (month 13 rolls into January).
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseISODate decodes a YYYY-MM-DD string into a UTC calendar day.
func ParseISODate(s string) (Date, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// ISO renders the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return d.Time.Format("2006-01-02")
}

// MarshalJSON renders the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.ISO() + `"`), nil
}

// UnmarshalJSON accepts a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseISODate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month, 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// AddMonths moves the date n calendar months forward, keeping the day of
// month where possible. Overflow normalizes (Jan 31 + 1 month = Mar 2/3),
// matching how installment dates have always been produced.
func (d Date) AddMonths(n int) Date {
	return NewDate(d.Year(), d.Month()+n, d.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (tt TransactionType) Valid() bool {
	return tt == Expense || tt == Income
}

func (dr Draft) Validate() error {
	if len(strings.TrimSpace(dr.Description)) == 0 {
		return ErrEmptyDescription
	}
	if dr.Amount < 0 {
		return ErrNegativeAmount
	}
	if !dr.Type.Valid() {
		return ErrInvalidType
	}
	return dr.Date.Validate()
}
