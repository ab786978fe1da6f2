package models

import "fmt"

// Status is the primary severity classification of a customer.
type Status string

const (
	StatusCritical Status = "Critical"
	StatusHigh     Status = "High"
	StatusMedium   Status = "Medium"
	StatusLow      Status = "Low"
)

// Statuses lists every valid status in severity order.
var Statuses = []Status{StatusCritical, StatusHigh, StatusMedium, StatusLow}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusCritical, StatusHigh, StatusMedium, StatusLow:
		return true
	}
	return false
}

// Weight is the sort ordinal used to rank statuses: Critical=0 through Low=3.
// Unknown values sort after Low.
func (s Status) Weight() int {
	switch s {
	case StatusCritical:
		return 0
	case StatusHigh:
		return 1
	case StatusMedium:
		return 2
	case StatusLow:
		return 3
	}
	return 4
}

// ParseStatus converts a label into a Status.
func ParseStatus(label string) (Status, error) {
	s := Status(label)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", label)
	}
	return s, nil
}

// Alert types as carried on the raw customer alerts.
const (
	AlertTypeCritical = "critical"
	AlertTypeWarning  = "warning"
	AlertTypeInfo     = "info"
)
