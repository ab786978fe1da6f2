// Package aggregate projects customer records into the dashboard, alert feed
// and intervention log row sets. Builders are read-only and recompute from
// scratch on every call.
package aggregate

import (
	"time"

	"github.com/rewired-gh/riskwatch/internal/derive"
	"github.com/rewired-gh/riskwatch/internal/models"
)

// DefaultReferenceTime anchors every derived timestamp so output does not
// depend on the wall clock.
var DefaultReferenceTime = time.Date(2026, time.February, 16, 9, 30, 0, 0, time.UTC)

// Timestamp layouts of derived row fields.
const (
	TriggeredAtLayout = "2006-01-02 15:04"
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04"
)

// Options tune the builders. The zero value uses DefaultRoster and
// DefaultReferenceTime.
type Options struct {
	Roster        derive.Roster
	ReferenceTime time.Time
}

func (o Options) roster() derive.Roster {
	if o.Roster == nil {
		return derive.DefaultRoster
	}
	return o.Roster
}

func (o Options) reference() time.Time {
	if o.ReferenceTime.IsZero() {
		return DefaultReferenceTime
	}
	return o.ReferenceTime
}

func riskFactors(rec *models.CustomerRecord) int {
	return rec.RiskAssessment.KeyFactors.BehavioralRiskFactors
}

// BuildDashboardRows returns one row per record in store order.
func BuildDashboardRows(records []models.CustomerRecord, opts Options) []models.DashboardRow {
	roster := opts.roster()
	rows := make([]models.DashboardRow, 0, len(records))
	for i := range records {
		rec := &records[i]
		row := models.DashboardRow{
			ID:         rec.ID,
			Name:       rec.Name,
			Flag:       rec.Surfaced(),
			Reason:     models.NoValue,
			FlagType:   models.NoValue,
			AssignedTo: roster.Assign(rec.ID, rec.Status()),
			Status:     rec.Status(),
		}
		if row.Flag {
			first := rec.Alerts[0].Message
			row.Reason = first
			row.FlagType = derive.ClassifyAlert(first, riskFactors(rec))
		}
		rows = append(rows, row)
	}
	return rows
}
