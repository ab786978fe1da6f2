package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rewired-gh/riskwatch/internal/config"
	"github.com/rewired-gh/riskwatch/internal/dashboard"
	"github.com/rewired-gh/riskwatch/internal/fixtures"
	"github.com/rewired-gh/riskwatch/internal/logger"
	"github.com/rewired-gh/riskwatch/internal/models"
	"github.com/rewired-gh/riskwatch/internal/staff"
	"github.com/rewired-gh/riskwatch/internal/storage"
	"github.com/rewired-gh/riskwatch/internal/telegram"
)

// app bundles what every subcommand needs.
type app struct {
	cfg   *config.Config
	store storage.Store
	close func() error
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	if configPath != "" {
		logger.Info("Configuration loaded from %s", configPath)
	}
	return cfg, nil
}

func population(cfg *config.Config) []models.CustomerRecord {
	return fixtures.Build(fixtures.NewGenerator(cfg.Fixtures.Seed), cfg.Fixtures.SyntheticCount)
}

// newApp loads configuration and opens the store, seeding an empty SQLite
// database from fixtures.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.Storage.Driver == config.DriverMemory {
		recs := population(cfg)
		logger.Info("Using in-memory store with %d customers", len(recs))
		return &app{cfg: cfg, store: storage.NewMemory(recs...), close: func() error { return nil }}, nil
	}

	db, err := storage.New(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	n, err := db.Count(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	if n == 0 {
		recs := population(cfg)
		if err := db.Seed(ctx, recs); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed storage: %w", err)
		}
		logger.Info("Seeded empty store with %d customers", len(recs))
	} else {
		logger.Info("Opened store with %d customers", n)
	}
	return &app{cfg: cfg, store: db, close: db.Close}, nil
}

func (a *app) Close() {
	if err := a.close(); err != nil {
		logger.Error("Failed to close storage: %v", err)
	}
}

func (a *app) dashboard() (*dashboard.Service, error) {
	dir, err := staff.New(a.cfg.Staff.Employees, a.cfg.Staff.Teams)
	if err != nil {
		return nil, fmt.Errorf("invalid staff directory: %w", err)
	}
	d := a.cfg.Dashboard
	return dashboard.NewService(a.store, dashboard.Options{
		LoadDelay:             d.LoadDelay,
		CustomersPageSize:     d.CustomersPageSize,
		AlertsPageSize:        d.AlertsPageSize,
		InterventionsPageSize: d.InterventionsPageSize,
		Staff:                 dir,
		ReportArchiveSize:     d.ReportArchiveSize,
	}), nil
}

// telegram returns nil when notifications are disabled.
func (a *app) telegram() (*telegram.Client, error) {
	t := a.cfg.Telegram
	if !t.Enabled {
		logger.Debug("Telegram notifications disabled")
		return nil, nil
	}
	client, err := telegram.NewClient(t.BotToken, t.ChatID, t.MaxRetries, t.RetryDelayBase)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram client: %w", err)
	}
	logger.Info("Telegram client initialized successfully")
	return client, nil
}

func timeoutCtx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 30*time.Second)
}
