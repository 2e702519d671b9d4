package main

import (
	"time"

	"github.com/govalues/decimal"
	"github.com/spf13/cobra"

	"github.com/tinoosan/smartbudget/internal/ledger"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Print the report of a sample month kept in memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, closeCat, err := buildCategorizer(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeCat()

			today := ledger.CalendarDate(time.Now())
			st := ledger.NewStore(ledger.NewIncome(decimal.MustParse("4500.00"), "Salary", today))
			for _, e := range []struct{ amount, desc string }{
				{"120.00", "Uber to work"},
				{"350.00", "Grocery store"},
				{"89.90", "Streaming subscription"},
			} {
				st.Record(ledger.NewExpense(decimal.MustParse(e.amount), e.desc, today, cat.Categorize(ctx, e.desc)))
			}
			rep, err := st.Report(ledger.PeriodOf(today))
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), a.cfg.Currency, rep)
		},
	}
}
