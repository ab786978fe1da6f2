package aggregate

import (
	"sort"
	"time"

	"github.com/rewired-gh/riskwatch/internal/derive"
	"github.com/rewired-gh/riskwatch/internal/models"
)

// Minutes between successive derived alert timestamps.
const (
	alertCustomerStep = 47
	alertIndexStep    = 360
)

// BuildAlertFeed flattens the alerts of every surfaced customer into feed rows,
// sorted unread first, then by severity, then newest first. Alerts stored
// without an ID get derive.AlertID of their position.
func BuildAlertFeed(records []models.CustomerRecord, opts Options) []models.AlertRow {
	roster := opts.roster()
	ref := opts.reference()
	var rows []models.AlertRow
	for i := range records {
		rec := &records[i]
		if !rec.Surfaced() {
			continue
		}
		n := derive.NumericSuffix(rec.ID)
		assigned := roster.Assign(rec.ID, rec.Status())
		for j, a := range rec.Alerts {
			c := derive.Classify(a.Message, riskFactors(rec))
			offset := time.Duration(n*alertCustomerStep+j*alertIndexStep) * time.Minute
			id := a.ID
			if id == "" {
				id = derive.AlertID(rec.ID, j)
			}
			row := models.AlertRow{
				ID:           id,
				CustomerID:   rec.ID,
				CustomerName: rec.Name,
				Type:         c.Category,
				Severity:     rec.Status(),
				Message:      a.Message,
				Signal:       c.Signal,
				TriggeredAt:  ref.Add(-offset).Format(TriggeredAtLayout),
				AssignedTo:   assigned,
				Status:       models.AlertInProgress,
				Channel:      derive.ChannelForAlertType(a.Type),
				Read:         j > 0,
			}
			if j == 0 {
				row.Status = models.AlertOpen
			}
			rows = append(rows, row)
		}
	}
	SortAlertFeed(rows)
	if rows == nil {
		rows = []models.AlertRow{}
	}
	return rows
}

// SortAlertFeed orders rows in place: unread before read, then by severity
// weight, then by triggeredAt descending.
func SortAlertFeed(rows []models.AlertRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Read != b.Read {
			return !a.Read
		}
		if wa, wb := a.Severity.Weight(), b.Severity.Weight(); wa != wb {
			return wa < wb
		}
		return a.TriggeredAt > b.TriggeredAt
	})
}
