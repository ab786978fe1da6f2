package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/riskwatch/internal/api"
	"github.com/rewired-gh/riskwatch/internal/logger"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API and answer Telegram commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			svc, err := a.dashboard()
			if err != nil {
				return err
			}
			tg, err := a.telegram()
			if err != nil {
				return err
			}

			if err := svc.Load(ctx); err != nil {
				logger.Error("Initial dashboard load failed: %v", err)
				if tg != nil {
					if err := tg.SendError(err); err != nil {
						logger.Warn("Failed to send error notification: %v", err)
					}
				}
			}
			if tg != nil {
				tg.ListenForCommands(ctx, svc)
			}

			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			srv := api.NewServer(svc, api.Options{
				Name:         a.cfg.Server.Name,
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
			})
			err = srv.ListenAndServe(ctx, addr)
			logger.Info("Shutdown complete")
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
