package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/riskwatch/internal/config"
	"github.com/rewired-gh/riskwatch/internal/logger"
	"github.com/rewired-gh/riskwatch/internal/storage"
)

func seedCmd() *cobra.Command {
	var (
		count int
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the SQLite store contents with fixture customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != config.DriverSQLite {
				return fmt.Errorf("seed needs storage.driver=sqlite, got %s", cfg.Storage.Driver)
			}
			if cmd.Flags().Changed("count") {
				cfg.Fixtures.SyntheticCount = count
			}
			if cmd.Flags().Changed("seed") {
				cfg.Fixtures.Seed = seed
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			db, err := storage.New(cfg.Storage.DBPath)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer db.Close()

			ctx, cancel := timeoutCtx(context.Background())
			defer cancel()
			recs := population(cfg)
			if err := db.Seed(ctx, recs); err != nil {
				return fmt.Errorf("failed to seed storage: %w", err)
			}
			logger.Info("Seeded %d customers", len(recs))
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d customers\n", len(recs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 88, "number of synthetic customers")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "generator seed (0 = time-based)")
	return cmd
}
