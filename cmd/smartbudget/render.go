package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/tinoosan/smartbudget/internal/currency"
	"github.com/tinoosan/smartbudget/internal/ledger"
)

// printReport writes the plain-text monthly report.
func printReport(w io.Writer, code string, r ledger.Report) error {
	fmt.Fprintf(w, "Period:       %s\n", r.Period)
	fmt.Fprintf(w, "Income:       %s\n", currency.Format(code, r.Summary.TotalIncome))
	fmt.Fprintf(w, "Expenses:     %s\n", currency.Format(code, r.Summary.TotalExpense))
	fmt.Fprintf(w, "Balance:      %s\n", currency.Format(code, r.Balance))
	fmt.Fprintf(w, "Top category: %s\n", r.TopCategory)
	if r.HasRatio {
		fmt.Fprintf(w, "Expense ratio: %s%% (%s)\n", r.ExpenseRatio, r.Status)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Distribution:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  CATEGORY\tAMOUNT\tSHARE\tANGLES\tCOLOR")
	for _, s := range r.Slices {
		fmt.Fprintf(tw, "  %s\t%s\t%s%%\t%s-%s\t%s\n",
			s.Category, currency.Format(code, s.Amount), s.Percentage, s.StartAngle, s.EndAngle, s.Color)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	_, err := fmt.Fprintln(w, r.Insight)
	return err
}
