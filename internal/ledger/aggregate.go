package ledger

import (
	"fmt"
	"sort"

	"github.com/govalues/decimal"
	"github.com/tinoosan/smartbudget/internal/errs"
)

var (
	zero    = decimal.MustNew(0, 0)
	hundred = decimal.MustNew(100, 0)
	circle  = decimal.MustNew(360, 0)
)

// MonthlySummary holds the income and expense totals of one period.
type MonthlySummary struct {
	Period       Period
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
}

// Balance returns TotalIncome - TotalExpense without rounding.
func (s MonthlySummary) Balance() (decimal.Decimal, error) {
	b, err := sub(s.TotalIncome, s.TotalExpense)
	if err != nil {
		return zero, fmt.Errorf("balance: %w", err)
	}
	return b, nil
}

// add returns a+b. Plain Add rounds away fractional digits once the result
// needs more than 19 significant digits; AddExact at the operands' scale
// reports that loss instead, and it surfaces as ErrOverflow.
func add(a, b decimal.Decimal) (decimal.Decimal, error) {
	r, err := a.AddExact(b, max(a.Scale(), b.Scale()))
	if err != nil {
		return zero, fmt.Errorf("%w: %v", errs.ErrOverflow, err)
	}
	return r, nil
}

// sub returns a-b with the same exactness guarantee as add.
func sub(a, b decimal.Decimal) (decimal.Decimal, error) {
	r, err := a.SubExact(b, max(a.Scale(), b.Scale()))
	if err != nil {
		return zero, fmt.Errorf("%w: %v", errs.ErrOverflow, err)
	}
	return r, nil
}

// CategoryTotal is one entry of CategoryTotals in iteration order.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// CategoryTotals maps an expense category to its accumulated amount for one period.
// Categories without expenses are absent.
type CategoryTotals map[string]decimal.Decimal

// Items returns the totals ordered by ascending category name.
func (c CategoryTotals) Items() []CategoryTotal {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]CategoryTotal, 0, len(names))
	for _, name := range names {
		out = append(out, CategoryTotal{Category: name, Amount: c[name]})
	}
	return out
}

// Sum adds up every category.
func (c CategoryTotals) Sum() (decimal.Decimal, error) {
	total := zero
	for _, it := range c.Items() {
		var err error
		if total, err = add(total, it.Amount); err != nil {
			return zero, fmt.Errorf("sum categories: %w", err)
		}
	}
	return total, nil
}

// Top returns the category with the largest total, NoExpenses when empty.
// Equal totals resolve to the alphabetically smallest category.
func (c CategoryTotals) Top() string {
	top, best := NoExpenses, zero
	for i, it := range c.Items() {
		if i == 0 || it.Amount.Cmp(best) > 0 {
			top, best = it.Category, it.Amount
		}
	}
	return top
}

// Summarize totals the income and expenses dated within p.
func Summarize(txns []Transaction, p Period) (MonthlySummary, error) {
	sum := MonthlySummary{Period: p, TotalIncome: zero, TotalExpense: zero}
	for _, t := range txns {
		if !p.Contains(t.Date) {
			continue
		}
		var err error
		switch t.Kind {
		case KindIncome:
			sum.TotalIncome, err = add(sum.TotalIncome, t.Amount)
		case KindExpense:
			sum.TotalExpense, err = add(sum.TotalExpense, t.Amount)
		}
		if err != nil {
			return MonthlySummary{}, fmt.Errorf("summarize %s: %w", p, err)
		}
	}
	return sum, nil
}

// CategoryTotalsFor groups the expenses dated within p by category.
func CategoryTotalsFor(txns []Transaction, p Period) (CategoryTotals, error) {
	out := CategoryTotals{}
	for _, t := range txns {
		if t.Kind != KindExpense || !p.Contains(t.Date) {
			continue
		}
		cur, ok := out[t.Category]
		if !ok {
			cur = zero
		}
		next, err := add(cur, t.Amount)
		if err != nil {
			return nil, fmt.Errorf("category %q in %s: %w", t.Category, p, err)
		}
		out[t.Category] = next
	}
	return out, nil
}

// TopCategory returns the biggest expense category of p, or NoExpenses.
func TopCategory(txns []Transaction, p Period) (string, error) {
	totals, err := CategoryTotalsFor(txns, p)
	if err != nil {
		return "", err
	}
	return totals.Top(), nil
}
