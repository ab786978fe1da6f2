package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewired-gh/riskwatch/internal/derive"
	"github.com/rewired-gh/riskwatch/internal/fixtures"
	"github.com/rewired-gh/riskwatch/internal/models"
)

func population() []models.CustomerRecord {
	return fixtures.Build(fixtures.NewGenerator(11), fixtures.DefaultSyntheticCount)
}

func TestBuildDashboardRows(t *testing.T) {
	recs := population()
	rows := BuildDashboardRows(recs, Options{})
	require.Len(t, rows, len(recs))

	for i, row := range rows {
		assert.Equal(t, recs[i].ID, row.ID, "store order")
		if row.Status == models.StatusLow {
			assert.False(t, row.Flag, row.ID)
			assert.Equal(t, models.NoValue, row.Reason, row.ID)
			assert.Equal(t, models.NoValue, row.FlagType, row.ID)
			assert.Equal(t, models.Unassigned, row.AssignedTo, row.ID)
		}
	}

	first := rows[0]
	assert.Equal(t, "USR-001", first.ID)
	assert.True(t, first.Flag)
	assert.Equal(t, "Missed 3 consecutive EMI payments", first.Reason)
	assert.Equal(t, derive.CategoryPaymentDefault, first.FlagType)
	assert.Equal(t, "Rahul Sharma", first.AssignedTo)
	assert.Equal(t, models.StatusCritical, first.Status)
}

func TestBuildDashboardRowsCustomRoster(t *testing.T) {
	rows := BuildDashboardRows(fixtures.HandAuthored(), Options{Roster: derive.Roster{"Solo"}})
	for _, row := range rows {
		if row.Status != models.StatusLow {
			assert.Equal(t, "Solo", row.AssignedTo)
		}
	}
}

func TestBuildersDoNotMutate(t *testing.T) {
	recs := fixtures.HandAuthored()
	before := fixtures.HandAuthored()
	BuildDashboardRows(recs, Options{})
	BuildAlertFeed(recs, Options{})
	BuildInterventionLog(recs, Options{})
	assert.Equal(t, before, recs)
}

func TestBuildAlertFeedOrdering(t *testing.T) {
	rows := BuildAlertFeed(population(), Options{})
	require.NotEmpty(t, rows)

	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		assert.False(t, prev.Read && !cur.Read, "read row %s precedes unread %s", prev.ID, cur.ID)
		if prev.Read == cur.Read {
			assert.LessOrEqual(t, prev.Severity.Weight(), cur.Severity.Weight(), "%s before %s", prev.ID, cur.ID)
			if prev.Severity == cur.Severity {
				assert.GreaterOrEqual(t, prev.TriggeredAt, cur.TriggeredAt)
			}
		}
	}
}

func TestBuildAlertFeedRows(t *testing.T) {
	recs := fixtures.HandAuthored()
	rows := BuildAlertFeed(recs, Options{})
	assert.Len(t, rows, 24)

	byID := map[string]models.AlertRow{}
	for _, r := range rows {
		assert.NotEqual(t, models.StatusLow, r.Severity)
		byID[r.ID] = r
	}
	require.Len(t, byID, 24, "alert IDs must be unique")

	first := byID["ALT-001-01"]
	assert.Equal(t, "USR-001", first.CustomerID)
	assert.Equal(t, "Aryan Mehta", first.CustomerName)
	assert.Equal(t, derive.CategoryPaymentDefault, first.Type)
	assert.Equal(t, "EMI Miss", first.Signal)
	assert.Equal(t, models.StatusCritical, first.Severity)
	assert.Equal(t, "2026-02-16 08:43", first.TriggeredAt)
	assert.Equal(t, models.AlertOpen, first.Status)
	assert.Equal(t, derive.ChannelSMS, first.Channel)
	assert.False(t, first.Read)
	assert.Equal(t, "Rahul Sharma", first.AssignedTo)

	second := byID["ALT-001-02"]
	assert.True(t, second.Read)
	assert.Equal(t, models.AlertInProgress, second.Status)
	assert.Equal(t, "2026-02-16 02:43", second.TriggeredAt)

	assert.Equal(t, derive.ChannelCall, byID["ALT-002-01"].Channel)
	assert.Equal(t, derive.ChannelEmail, byID["ALT-005-03"].Channel)

	// Unread Critical rows lead the feed, newest first.
	assert.Equal(t, "ALT-001-01", rows[0].ID)
	assert.Equal(t, "ALT-007-01", rows[1].ID)
}

func TestBuildAlertFeedReferenceTime(t *testing.T) {
	ref := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows := BuildAlertFeed(fixtures.HandAuthored()[:1], Options{ReferenceTime: ref})
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-12-31 23:13", rows[0].TriggeredAt)
}

func TestLowCustomerWithoutAlertsExcluded(t *testing.T) {
	recs := []models.CustomerRecord{
		{ID: "USR-050", Name: "Calm", Profile: models.Profile{Status: models.StatusLow}, Alerts: []models.Alert{}},
		{ID: "USR-051", Name: "Quiet", Profile: models.Profile{Status: models.StatusHigh}, Alerts: []models.Alert{}},
		{ID: "USR-052", Name: "Low but noisy", Profile: models.Profile{Status: models.StatusLow},
			Alerts: []models.Alert{{ID: "ALT-052-01", Type: models.AlertTypeInfo, Message: "Minor payment delays"}}},
	}
	assert.Empty(t, BuildAlertFeed(recs, Options{}))
	assert.Empty(t, BuildInterventionLog(recs, Options{}))

	rows := BuildDashboardRows(recs, Options{})
	for _, r := range rows {
		assert.False(t, r.Flag, r.ID)
		assert.Equal(t, models.NoValue, r.Reason, r.ID)
	}
}

func TestBuildInterventionLog(t *testing.T) {
	rows := BuildInterventionLog(fixtures.HandAuthored(), Options{})
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.CustomerID
	}
	assert.Equal(t, []string{
		"USR-001", "USR-007",
		"USR-002", "USR-004", "USR-010",
		"USR-005", "USR-008", "USR-012",
	}, ids)

	agreed := rows[0]
	assert.Equal(t, "INT-001", agreed.ID)
	assert.Equal(t, "2026-02-16", agreed.Date)
	assert.Equal(t, "06:20", agreed.Time)
	assert.Equal(t, "Rahul Sharma", agreed.Analyst)
	assert.Equal(t, 84, agreed.AIRiskScore)
	assert.Equal(t, 84, agreed.AIConfidence)
	assert.Equal(t, derive.ActionImmediateOutreach, agreed.AIRecommendation)
	assert.Equal(t, agreed.AIRecommendation, agreed.AnalystDecision)
	assert.Equal(t, models.OutcomeAgreed, agreed.AnalystOutcome)
	assert.False(t, agreed.AnalystChanged)
	assert.Empty(t, agreed.AnalystNote)
	assert.Equal(t, "Follow-up Scheduled", agreed.FinalStatus)
	assert.Equal(t, []string{"EMI Miss", "Salary Delay", "Lending Apps", "Risk 85%"}, agreed.AISignals)
	assert.Contains(t, agreed.AIReason, derive.CategoryPaymentDefault)

	downgraded := rows[1]
	assert.Equal(t, "INT-007", downgraded.ID)
	assert.Equal(t, 88, downgraded.AIRiskScore)
	assert.Equal(t, derive.ActionImmediateEscalation, downgraded.AIRecommendation)
	assert.Equal(t, derive.ActionImmediateOutreach, downgraded.AnalystDecision)
	assert.Equal(t, models.OutcomeDowngraded, downgraded.AnalystOutcome)
	assert.True(t, downgraded.AnalystChanged)
	assert.NotEmpty(t, downgraded.AnalystNote)
	assert.Equal(t, "Monitoring", downgraded.FinalStatus)

	escalated := rows[5]
	assert.Equal(t, "INT-005", escalated.ID)
	assert.Equal(t, 56, escalated.AIRiskScore)
	assert.Equal(t, derive.ActionSoftOutreachSMS, escalated.AIRecommendation)
	assert.Equal(t, derive.ActionImmediateOutreach, escalated.AnalystDecision)
	assert.Equal(t, models.OutcomeEscalated, escalated.AnalystOutcome)
	assert.Equal(t, "Product Offered", escalated.FinalStatus)
}

func TestBuildInterventionLogBounds(t *testing.T) {
	rows := BuildInterventionLog(population(), Options{})
	require.NotEmpty(t, rows)
	for i, r := range rows {
		assert.GreaterOrEqual(t, r.AIRiskScore, 1)
		assert.LessOrEqual(t, r.AIRiskScore, 99)
		assert.LessOrEqual(t, r.AIConfidence, 97)
		assert.NotEqual(t, models.StatusLow, r.Status)
		if i > 0 {
			assert.LessOrEqual(t, rows[i-1].Status.Weight(), r.Status.Weight())
		}
	}
}

func TestEscalateDowngradeLadder(t *testing.T) {
	assert.Equal(t, derive.ActionRestructuring, escalate(derive.ActionImmediateEscalation))
	assert.Equal(t, derive.ActionRestructuring, escalate(derive.ActionRestructuring))
	assert.Equal(t, derive.ActionNoActionMonitor, downgrade(derive.ActionSoftOutreachEmail))
	assert.Equal(t, derive.ActionNoActionMonitor, downgrade(derive.ActionNoActionMonitor))
}

func TestSummaries(t *testing.T) {
	recs := fixtures.HandAuthored()
	dash := SummarizeDashboard(BuildDashboardRows(recs, Options{}))
	assert.Equal(t, DashboardStats{Total: 12, Critical: 2, High: 3, Flagged: 8}, dash)

	alerts := BuildAlertFeed(recs, Options{})
	as := SummarizeAlerts(alerts)
	assert.Equal(t, AlertStats{Total: 24, Critical: 6, Open: 24, Unread: 8}, as)

	is := SummarizeInterventions(BuildInterventionLog(recs, Options{}))
	assert.Equal(t, 8, is.Total)
	assert.Equal(t, 3, is.Overrides)
	assert.Equal(t, 5, is.Agreed)
	assert.Greater(t, is.AverageConfidence, 62.0)

	assert.Equal(t, InterventionStats{}, SummarizeInterventions(nil))
}

func TestOpenCasesByAnalyst(t *testing.T) {
	cases := OpenCasesByAnalyst(BuildDashboardRows(fixtures.HandAuthored(), Options{}))
	// 001,004,007,010 -> Rahul; 002,005,008 -> Sneha; 012 -> Amit.
	assert.Equal(t, map[string]int{"Rahul Sharma": 4, "Sneha Iyer": 3, "Amit Verma": 1}, cases)
}

func TestBuildAlertFeedAssignsMissingIDs(t *testing.T) {
	recs := []models.CustomerRecord{
		{ID: "USR-201", Name: "First", Profile: models.Profile{Status: models.StatusHigh},
			Alerts: []models.Alert{{Type: models.AlertTypeWarning, Message: "Salary delayed"}}},
		{ID: "USR-202", Name: "Second", Profile: models.Profile{Status: models.StatusCritical},
			Alerts: []models.Alert{
				{Type: models.AlertTypeCritical, Message: "EMI missed"},
				{ID: "ALT-KEPT", Type: models.AlertTypeInfo, Message: "Utility bill late"},
			}},
	}
	rows := BuildAlertFeed(recs, Options{})
	require.Len(t, rows, 3)

	ids := map[string]string{}
	for _, r := range rows {
		require.NotEmpty(t, r.ID)
		ids[r.ID] = r.CustomerID
	}
	assert.Equal(t, map[string]string{
		"ALT-201-01": "USR-201",
		"ALT-202-01": "USR-202",
		"ALT-KEPT":   "USR-202",
	}, ids)
}
