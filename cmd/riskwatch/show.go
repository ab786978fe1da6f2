package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <customer-id>",
		Short: "Print a customer's risk report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := timeoutCtx(context.Background())
			defer cancel()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := a.dashboard()
			if err != nil {
				return err
			}
			stored, err := svc.CustomerReport(ctx, args[0], time.Now())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(stored.Body)
			return err
		},
	}
}
