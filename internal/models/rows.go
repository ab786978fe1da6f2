package models

// Placeholder shown in dashboard cells when a customer has nothing to report.
const NoValue = "—"

// Unassigned is the caseworker sentinel for customers without an intervention.
const Unassigned = "Unassigned"

// DashboardRow is one customer line on the dashboard table.
type DashboardRow struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Flag       bool   `json:"flag"`
	Reason     string `json:"reason"`
	FlagType   string `json:"flagType"`
	AssignedTo string `json:"assignedTo"`
	Status     Status `json:"status"`
}

// Alert row workflow states.
const (
	AlertOpen       = "Open"
	AlertInProgress = "In Progress"
	AlertResolved   = "Resolved"
)

// AlertRow is one entry of the alert feed.
type AlertRow struct {
	ID           string `json:"id"`
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
	Type         string `json:"type"`
	Severity     Status `json:"severity"`
	Message      string `json:"message"`
	Signal       string `json:"signal"`
	TriggeredAt  string `json:"triggeredAt"`
	AssignedTo   string `json:"assignedTo"`
	Status       string `json:"status"`
	Channel      string `json:"channel"`
	Read         bool   `json:"read"`
}

// Analyst outcomes on an intervention.
const (
	OutcomeAgreed     = "Agreed with AI"
	OutcomeEscalated  = "Override — Escalated"
	OutcomeDowngraded = "Override — Downgraded"
)

// InterventionRow is one entry of the intervention log.
type InterventionRow struct {
	ID               string   `json:"id"`
	CustomerID       string   `json:"customerId"`
	CustomerName     string   `json:"customerName"`
	FlagType         string   `json:"flagType"`
	Status           Status   `json:"-"`
	Date             string   `json:"date"`
	Time             string   `json:"time"`
	Analyst          string   `json:"analyst"`
	AIRiskScore      int      `json:"aiRiskScore"`
	AIConfidence     int      `json:"aiConfidence"`
	AIRecommendation string   `json:"aiRecommendation"`
	AIReason         string   `json:"aiReason"`
	AISignals        []string `json:"aiSignals"`
	AnalystDecision  string   `json:"analystDecision"`
	AnalystOutcome   string   `json:"analystOutcome"`
	AnalystNote      string   `json:"analystNote"`
	AnalystChanged   bool     `json:"analystChanged"`
	FinalStatus      string   `json:"finalStatus"`
}
