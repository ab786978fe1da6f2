package derive

import (
	"fmt"
	"strings"

	"github.com/rewired-gh/riskwatch/internal/models"
)

// CustomerPrefix is stripped from customer IDs when building alert IDs.
const CustomerPrefix = "USR-"

// AlertID is the stable identifier of the index-th (0-based) alert of a
// customer: ALT-<customer id without USR->-<1-based index>. Distinct
// customer IDs always yield distinct alert IDs.
func AlertID(customerID string, index int) string {
	return fmt.Sprintf("ALT-%s-%02d", strings.TrimPrefix(customerID, CustomerPrefix), index+1)
}

// AssignAlertIDs fills in missing alert identifiers in place.
func AssignAlertIDs(rec *models.CustomerRecord) {
	for i := range rec.Alerts {
		if rec.Alerts[i].ID == "" {
			rec.Alerts[i].ID = AlertID(rec.ID, i)
		}
	}
}
