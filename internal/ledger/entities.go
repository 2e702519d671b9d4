// Package ledger holds the budgeting domain: transactions, the per-request
// store and the monthly aggregation, insight and distribution rules.
package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/tinoosan/smartbudget/internal/dictionary"
)

// Kind tells whether a transaction adds to or takes from the balance.
type Kind string

const (
	// KindIncome records money received.
	KindIncome Kind = "income"
	// KindExpense records money spent.
	KindExpense Kind = "expense"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool { return k == KindIncome || k == KindExpense }

const (
	// IncomeCategory is the fixed category of every income transaction.
	IncomeCategory = dictionary.IncomeCategory
	// DefaultCategory is used for expenses that match no rule.
	DefaultCategory = dictionary.DefaultCategory
	// NoExpenses is returned by TopCategory and Distribute for periods without expenses.
	NoExpenses = dictionary.NoExpenses
)

// Transaction is one immutable ledger record.
type Transaction struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Description string
	// Date is a calendar date; only year, month and day are meaningful.
	Date     time.Time
	Category string
	Kind     Kind
}

// NewIncome builds an income transaction. Income is never categorised from text.
func NewIncome(amount decimal.Decimal, description string, date time.Time) Transaction {
	return Transaction{
		ID:          uuid.New(),
		Amount:      amount,
		Description: description,
		Date:        CalendarDate(date),
		Category:    IncomeCategory,
		Kind:        KindIncome,
	}
}

// NewExpense builds an expense transaction. An empty category becomes DefaultCategory.
func NewExpense(amount decimal.Decimal, description string, date time.Time, category string) Transaction {
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	return Transaction{
		ID:          uuid.New(),
		Amount:      amount,
		Description: description,
		Date:        CalendarDate(date),
		Category:    category,
		Kind:        KindExpense,
	}
}

// CalendarDate drops the clock and location of t, keeping its wall-clock date.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, strings.TrimSpace(s))
}

// User owns transactions. Email is stored trimmed and lower-cased.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
