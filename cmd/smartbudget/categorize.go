package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCategorizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categorize <description>",
		Short: "Print the category picked for an expense description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, closeCat, err := buildCategorizer(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeCat()
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cat.Categorize(cmd.Context(), strings.Join(args, " ")))
			return err
		},
	}
}
