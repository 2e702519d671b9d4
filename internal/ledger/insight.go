package ledger

import (
	"fmt"

	"github.com/govalues/decimal"
	"github.com/tinoosan/smartbudget/internal/errs"
)

// Status is the qualitative reading of the expense ratio.
type Status string

const (
	StatusMaximumAttention Status = "maximum attention"
	StatusCautionZone      Status = "caution zone"
	StatusHealthy          Status = "healthy situation"
)

// AddIncomeMessage is the insight for periods without income.
const AddIncomeMessage = "Add income to receive more useful financial recommendations."

var (
	attentionThreshold = decimal.MustNew(90, 0)
	cautionThreshold   = decimal.MustNew(70, 0)
)

// ExpenseRatio returns expense*100/income rounded to one fractional digit.
// ok is false when income is not positive; the ratio is then undefined.
func ExpenseRatio(income, expense decimal.Decimal) (ratio decimal.Decimal, ok bool, err error) {
	if !income.IsPos() {
		return zero, false, nil
	}
	scaled, err := expense.Mul(hundred)
	if err != nil {
		return zero, false, fmt.Errorf("expense ratio: %w: %v", errs.ErrOverflow, err)
	}
	ratio, err = scaled.Quo(income)
	if err != nil {
		return zero, false, fmt.Errorf("expense ratio: %w: %v", errs.ErrOverflow, err)
	}
	return ratio.Round(1).Pad(1), true, nil
}

// StatusFor classifies a rounded ratio. Lower bounds are inclusive.
func StatusFor(ratio decimal.Decimal) Status {
	switch {
	case ratio.Cmp(attentionThreshold) >= 0:
		return StatusMaximumAttention
	case ratio.Cmp(cautionThreshold) >= 0:
		return StatusCautionZone
	default:
		return StatusHealthy
	}
}

// Insight renders the one-sentence assessment of a period.
func Insight(income, expense decimal.Decimal, topCategory string) (string, error) {
	ratio, ok, err := ExpenseRatio(income, expense)
	if err != nil {
		return "", err
	}
	if !ok {
		return AddIncomeMessage, nil
	}
	return fmt.Sprintf("You are in a %s: expenses at %s%% of your income this month. The category with the biggest impact was %s.",
		StatusFor(ratio), ratio, topCategory), nil
}
