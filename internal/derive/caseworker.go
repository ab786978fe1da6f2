package derive

import (
	"strconv"
	"strings"

	"github.com/rewired-gh/riskwatch/internal/models"
)

// DefaultRoster is the round-robin caseworker list.
var DefaultRoster = Roster{"Amit Verma", "Rahul Sharma", "Sneha Iyer"}

// Roster is an ordered caseworker list indexed by customer number.
type Roster []string

// Assign picks the caseworker for a customer. Low status customers and an
// empty roster yield models.Unassigned.
func (r Roster) Assign(customerID string, status models.Status) string {
	if status == models.StatusLow || len(r) == 0 {
		return models.Unassigned
	}
	return r[NumericSuffix(customerID)%len(r)]
}

// AssignCaseworker assigns from DefaultRoster.
func AssignCaseworker(customerID string, status models.Status) string {
	return DefaultRoster.Assign(customerID, status)
}

// NumericSuffix returns the trailing run of digits in id as an integer,
// or 0 when id has no digit suffix.
func NumericSuffix(id string) int {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	n, err := strconv.Atoi(strings.TrimLeft(id[i:], "0"))
	if err != nil {
		return 0
	}
	return n
}
