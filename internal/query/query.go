// Package query filters and paginates row sets. Functions are pure; the
// caller owns search text, filters and the current page, and resets the page
// to 1 whenever a filter changes.
package query

import (
	"strings"

	"github.com/rewired-gh/riskwatch/internal/models"
)

// All is the category filter value that disables filtering.
const All = "All"

// Default page sizes per view.
const (
	DashboardPageSize     = 8
	AlertsPageSize        = 5
	InterventionsPageSize = 6
)

// DashboardFilter selects dashboard rows.
type DashboardFilter struct {
	Search string
	Status string
}

// AlertFilter selects alert feed rows.
type AlertFilter struct {
	Search   string
	Severity string
	Status   string
}

// InterventionFilter selects intervention log rows.
type InterventionFilter struct {
	Search  string
	Outcome string
	Analyst string
}

// matcher holds the lowered search text.
type matcher struct {
	needle string
}

func newMatcher(search string) matcher {
	return matcher{needle: strings.ToLower(strings.TrimSpace(search))}
}

// matches reports whether the needle is a substring of any field.
func (m matcher) matches(fields ...string) bool {
	if m.needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), m.needle) {
			return true
		}
	}
	return false
}

func active(filter string) bool {
	return filter != "" && filter != All
}

func equals(filter, value string) bool {
	return !active(filter) || filter == value
}

func filter[T any](rows []T, keep func(*T) bool) []T {
	out := make([]T, 0, len(rows))
	for i := range rows {
		if keep(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}

// FilterDashboard searches name, id and flag type, and filters by status.
func FilterDashboard(rows []models.DashboardRow, f DashboardFilter) []models.DashboardRow {
	m := newMatcher(f.Search)
	if m.needle == "" && !active(f.Status) {
		return rows
	}
	return filter(rows, func(r *models.DashboardRow) bool {
		return equals(f.Status, string(r.Status)) && m.matches(r.Name, r.ID, r.FlagType)
	})
}

// FilterAlerts searches customer name, id, type and signal, and filters by
// severity and workflow status.
func FilterAlerts(rows []models.AlertRow, f AlertFilter) []models.AlertRow {
	m := newMatcher(f.Search)
	if m.needle == "" && !active(f.Severity) && !active(f.Status) {
		return rows
	}
	return filter(rows, func(r *models.AlertRow) bool {
		return equals(f.Severity, string(r.Severity)) &&
			equals(f.Status, r.Status) &&
			m.matches(r.CustomerName, r.ID, r.Type, r.Signal)
	})
}

// FilterInterventions searches id, analyst, customer, recommendation and
// decision, and filters by analyst outcome and analyst.
func FilterInterventions(rows []models.InterventionRow, f InterventionFilter) []models.InterventionRow {
	m := newMatcher(f.Search)
	if m.needle == "" && !active(f.Outcome) && !active(f.Analyst) {
		return rows
	}
	return filter(rows, func(r *models.InterventionRow) bool {
		return equals(f.Outcome, r.AnalystOutcome) &&
			equals(f.Analyst, r.Analyst) &&
			m.matches(r.ID, r.Analyst, r.CustomerName, r.CustomerID, r.AIRecommendation, r.AnalystDecision)
	})
}
