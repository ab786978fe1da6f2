// Package storage holds the customer record store: an ordered in-memory
// implementation and a SQLite-backed one.
package storage

import (
	"context"
	"errors"
	"slices"

	"github.com/rewired-gh/riskwatch/internal/derive"
	"github.com/rewired-gh/riskwatch/internal/models"
)

// ErrNotFound is returned by Get when no customer has the requested ID.
var ErrNotFound = errors.New("customer not found")

// Store is the read side every consumer of customer records depends on.
// All returns records in stable insertion order.
type Store interface {
	All(ctx context.Context) ([]models.CustomerRecord, error)
	Get(ctx context.Context, id string) (*models.CustomerRecord, error)
}

// withAlertIDs returns rec with every missing alert ID assigned. The
// caller's alert slice is never modified.
func withAlertIDs(rec models.CustomerRecord) models.CustomerRecord {
	if !slices.ContainsFunc(rec.Alerts, func(a models.Alert) bool { return a.ID == "" }) {
		return rec
	}
	rec.Alerts = slices.Clone(rec.Alerts)
	derive.AssignAlertIDs(&rec)
	return rec
}
