package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/riskwatch/internal/models"
)

func notifyCmd() *cobra.Command {
	var severities []string
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send a Telegram digest of unread alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := timeoutCtx(context.Background())
			defer cancel()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			tg, err := a.telegram()
			if err != nil {
				return err
			}
			if tg == nil {
				return errors.New("telegram is disabled; set telegram.enabled")
			}

			var want []models.Status
			for _, s := range severities {
				st, err := models.ParseStatus(s)
				if err != nil {
					return err
				}
				want = append(want, st)
			}
			svc, err := a.dashboard()
			if err != nil {
				return err
			}
			rows, err := svc.UnreadAlerts(ctx, want...)
			if err != nil {
				return err
			}
			if err := tg.SendDigest(rows); err != nil {
				return fmt.Errorf("failed to send digest: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %d alerts\n", len(rows))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&severities, "severity", []string{"Critical", "High"}, "severities to include")
	return cmd
}
