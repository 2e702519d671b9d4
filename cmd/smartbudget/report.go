package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinoosan/smartbudget/internal/errs"
	"github.com/tinoosan/smartbudget/internal/ledger"
	"github.com/tinoosan/smartbudget/internal/service/budget"
	"github.com/tinoosan/smartbudget/internal/service/user"
)

func newReportCmd(a *app) *cobra.Command {
	var email, period string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a user's monthly report from the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := ledger.PeriodOf(time.Now())
			if period != "" {
				var err error
				if p, err = ledger.ParsePeriod(period); err != nil {
					return err
				}
			}
			st, closeStore, err := openStore(ctx, a.cfg.Storage, a.logger)
			if err != nil {
				return err
			}
			defer closeStore()
			cat, closeCat, err := buildCategorizer(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeCat()

			u, err := st.UserByEmail(ctx, user.NormalizeEmail(email))
			if errors.Is(err, errs.ErrNotFound) {
				return fmt.Errorf("no user with email %q", email)
			}
			if err != nil {
				return err
			}
			rep, err := budget.New(st, st, cat, budget.WithLogger(a.logger)).Report(ctx, u.ID, p)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), a.cfg.Currency, rep)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the user to report on")
	cmd.Flags().StringVar(&period, "period", "", "month as YYYY-MM (default: current month)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
