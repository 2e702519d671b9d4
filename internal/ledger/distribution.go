package ledger

import (
	"fmt"
	"sort"

	"github.com/govalues/decimal"
	"github.com/tinoosan/smartbudget/internal/errs"
)

// Palette is the fixed colour cycle assigned to slices by position.
var Palette = []string{
	"#4f46e5", "#16a34a", "#dc2626", "#f59e0b",
	"#0891b2", "#db2777", "#7c3aed", "#65a30d",
}

// Slice is one category's share of the period's expenses.
type Slice struct {
	Category string
	Amount   decimal.Decimal
	// Percentage is for display, one fractional digit.
	Percentage decimal.Decimal
	// StartAngle and EndAngle are degrees with two fractional digits.
	StartAngle decimal.Decimal
	EndAngle   decimal.Decimal
	ColorIndex int
	Color      string
	Empty      bool
}

// EmptySlice is the single slice returned when there is nothing to split.
func EmptySlice() Slice {
	return Slice{
		Category:   NoExpenses,
		Amount:     zero,
		Percentage: zero.Pad(1),
		StartAngle: zero.Pad(2),
		EndAngle:   circle.Pad(2),
		Color:      Palette[0],
		Empty:      true,
	}
}

// Distribute splits totals into slices ordered by descending amount; equal
// amounts keep alphabetical order. Angles are derived from the running
// cumulative amount, so the last slice always ends at exactly 360.
func Distribute(totals CategoryTotals) ([]Slice, error) {
	total, err := totals.Sum()
	if err != nil {
		return nil, err
	}
	if !total.IsPos() {
		return []Slice{EmptySlice()}, nil
	}
	items := totals.Items()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Amount.Cmp(items[j].Amount) > 0
	})

	out := make([]Slice, 0, len(items))
	cum, start := zero, zero.Pad(2)
	for i, it := range items {
		pct, err := share(it.Amount, hundred, total)
		if err != nil {
			return nil, fmt.Errorf("percentage of %q: %w", it.Category, err)
		}
		if cum, err = add(cum, it.Amount); err != nil {
			return nil, fmt.Errorf("cumulative amount: %w", err)
		}
		end, err := share(cum, circle, total)
		if err != nil {
			return nil, fmt.Errorf("angle of %q: %w", it.Category, err)
		}
		idx := i % len(Palette)
		out = append(out, Slice{
			Category:   it.Category,
			Amount:     it.Amount,
			Percentage: pct.Round(1).Pad(1),
			StartAngle: start,
			EndAngle:   end.Round(2).Pad(2),
			ColorIndex: idx,
			Color:      Palette[idx],
		})
		start = out[i].EndAngle
	}
	return out, nil
}

// share computes part*scale/total.
func share(part, scale, total decimal.Decimal) (decimal.Decimal, error) {
	n, err := part.Mul(scale)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", errs.ErrOverflow, err)
	}
	q, err := n.Quo(total)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", errs.ErrOverflow, err)
	}
	return q, nil
}

// Span returns EndAngle - StartAngle.
func (s Slice) Span() decimal.Decimal {
	d, err := s.EndAngle.Sub(s.StartAngle)
	if err != nil {
		return zero
	}
	return d
}
