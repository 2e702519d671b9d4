// Package currency renders ledger amounts in a configured ISO 4217 currency.
package currency

import (
	"fmt"

	"github.com/govalues/decimal"
	"github.com/govalues/money"
)

// Format renders d as "<CODE> <amount>" rounded half-to-even and padded to the
// currency's minor units, e.g. "BRL 3940.10". Unknown codes fall back to the
// bare decimal.
func Format(code string, d decimal.Decimal) string {
	curr, err := money.ParseCurr(code)
	if err != nil {
		return d.String()
	}
	minor := d.Round(curr.Scale()).Pad(curr.Scale())
	a, err := money.ParseAmount(curr.Code(), minor.String())
	if err != nil {
		return minor.String()
	}
	return a.String()
}

// CheckMinorUnits reports an error when d has more fractional digits than
// the currency allows, e.g. 1.005 in BRL.
func CheckMinorUnits(code string, d decimal.Decimal) error {
	curr, err := money.ParseCurr(code)
	if err != nil {
		return err
	}
	if d.Scale() > curr.Scale() {
		return fmt.Errorf("amount has more decimal places than %s allows", curr.Code())
	}
	return nil
}
