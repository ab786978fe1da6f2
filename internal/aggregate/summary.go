package aggregate

import "github.com/rewired-gh/riskwatch/internal/models"

// DashboardStats backs the customer overview cards.
type DashboardStats struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	High     int `json:"high"`
	Flagged  int `json:"flagged"`
}

// AlertStats backs the alert feed cards. Open counts every row not yet resolved.
type AlertStats struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Open     int `json:"open"`
	Unread   int `json:"unread"`
}

// InterventionStats backs the intervention log cards.
type InterventionStats struct {
	Total             int     `json:"total"`
	Agreed            int     `json:"agreed"`
	Overrides         int     `json:"overrides"`
	AverageConfidence float64 `json:"averageConfidence"`
}

// SummarizeDashboard counts customers by status and flag.
func SummarizeDashboard(rows []models.DashboardRow) DashboardStats {
	s := DashboardStats{Total: len(rows)}
	for _, r := range rows {
		switch r.Status {
		case models.StatusCritical:
			s.Critical++
		case models.StatusHigh:
			s.High++
		}
		if r.Flag {
			s.Flagged++
		}
	}
	return s
}

// SummarizeAlerts counts critical, unresolved and unread alert rows.
func SummarizeAlerts(rows []models.AlertRow) AlertStats {
	s := AlertStats{Total: len(rows)}
	for _, r := range rows {
		if r.Severity == models.StatusCritical {
			s.Critical++
		}
		if r.Status != models.AlertResolved {
			s.Open++
		}
		if !r.Read {
			s.Unread++
		}
	}
	return s
}

// SummarizeInterventions splits the log into agreed and overridden
// decisions and averages the AI confidence. An empty log averages to 0.
func SummarizeInterventions(rows []models.InterventionRow) InterventionStats {
	s := InterventionStats{Total: len(rows)}
	if len(rows) == 0 {
		return s
	}
	sum := 0
	for _, r := range rows {
		if r.AnalystChanged {
			s.Overrides++
		} else {
			s.Agreed++
		}
		sum += r.AIConfidence
	}
	s.AverageConfidence = float64(sum) / float64(len(rows))
	return s
}

// OpenCasesByAnalyst counts dashboard rows per assigned caseworker, leaving
// out unassigned customers.
func OpenCasesByAnalyst(rows []models.DashboardRow) map[string]int {
	out := make(map[string]int)
	for _, r := range rows {
		if r.AssignedTo == models.Unassigned {
			continue
		}
		out[r.AssignedTo]++
	}
	return out
}
