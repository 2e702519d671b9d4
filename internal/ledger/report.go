package ledger

import "github.com/govalues/decimal"

// Report is the full monthly view of a set of transactions.
type Report struct {
	Period      Period
	Summary     MonthlySummary
	Balance     decimal.Decimal
	TopCategory string
	Insight     string
	// HasRatio is false when the period has no income.
	HasRatio     bool
	ExpenseRatio decimal.Decimal
	Status       Status
	Totals       []CategoryTotal
	Slices       []Slice
}

// BuildReport runs every aggregation for p over txns.
func BuildReport(txns []Transaction, p Period) (Report, error) {
	if err := p.Validate(); err != nil {
		return Report{}, err
	}
	sum, err := Summarize(txns, p)
	if err != nil {
		return Report{}, err
	}
	balance, err := sum.Balance()
	if err != nil {
		return Report{}, err
	}
	totals, err := CategoryTotalsFor(txns, p)
	if err != nil {
		return Report{}, err
	}
	slices, err := Distribute(totals)
	if err != nil {
		return Report{}, err
	}
	top := totals.Top()
	insight, err := Insight(sum.TotalIncome, sum.TotalExpense, top)
	if err != nil {
		return Report{}, err
	}
	ratio, ok, err := ExpenseRatio(sum.TotalIncome, sum.TotalExpense)
	if err != nil {
		return Report{}, err
	}
	r := Report{
		Period:       p,
		Summary:      sum,
		Balance:      balance,
		TopCategory:  top,
		Insight:      insight,
		HasRatio:     ok,
		ExpenseRatio: ratio,
		Totals:       totals.Items(),
		Slices:       slices,
	}
	if ok {
		r.Status = StatusFor(ratio)
	}
	return r, nil
}

// Report builds the report of p from the store's current contents.
func (s *Store) Report(p Period) (Report, error) {
	return BuildReport(s.All(), p)
}
