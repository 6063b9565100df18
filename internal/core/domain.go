package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar day. Aggregation never looks at time-of-day,
	// so every Date is normalized to midnight UTC.
	Date struct {
		time.Time
	}

	// ExpenseRecord is one spending event in the ledger.
	ExpenseRecord struct {
		ID          string `json:"id"`
		Amount      Money  `json:"amount"`
		Category    string `json:"category"`
		Description string `json:"description,omitempty"`
		Date        Date   `json:"date"`
	}

	// FinancialGoal is the user's saving target.
	FinancialGoal struct {
		Description string `json:"description"`
		Amount      Money  `json:"amount"`
	}

	// ExpensePatch carries the fields of a partial update. Nil fields
	// are left untouched by the merge.
	ExpensePatch struct {
		Amount      *Money
		Category    *string
		Description *string
		Date        *Date
	}
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrEmptyCategory  = errors.New("empty category")
	ErrInvalidDate    = errors.New("invalid date")
)

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// MarshalJSON encodes the date as "2006-01-02".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// UnmarshalJSON decodes a "2006-01-02" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return ErrInvalidDate
	}
	d.Time = t
	return nil
}

// Validate checks the invariants the ledger enforces on stored records.
// Category membership in the UI's fixed set is a presentation concern;
// the ledger only requires a non-empty label and a non-negative amount.
func (e ExpenseRecord) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if e.Amount.Cents < 0 {
		return ErrNegativeAmount
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Apply merges the set fields of the patch into the record.
func (e ExpenseRecord) Apply(p ExpensePatch) ExpenseRecord {
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	return e
}
