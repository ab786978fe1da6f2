package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rewired-gh/riskwatch/internal/models"
)

func TestClassifyAlert_EachRule(t *testing.T) {
	tests := []struct {
		message string
		want    string
		signal  string
	}{
		{"Missed 3 consecutive EMI payments", CategoryPaymentDefault, "EMI Miss"},
		{"Salary delayed by 12 days", CategoryIncomeIrregularity, "Salary Delay"},
		{"Auto-debit failed 2 times this month", CategoryAutoDebitFailure, "Auto-debit"},
		{"Credit utilisation above 90%", CategoryCreditOveruse, "Credit Util."},
		{"Credit utilization high", CategoryCreditOveruse, "Credit Util."},
		{"Savings account balance declining rapidly", CategorySavingsDepletion, "Savings Drop"},
		{"Increased cash withdrawals detected", CategoryBehaviouralAnomaly, "ATM Surge"},
		{"Lending app usage detected", CategoryDebtStacking, "Lending Apps"},
		{"Utility bills unpaid for 45 days", CategoryBillDefault, "Utility Bills"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got := Classify(tt.message, 0)
			assert.Equal(t, tt.want, got.Category)
			assert.Equal(t, tt.signal, got.Signal)
		})
	}
}

func TestClassifyAlert_PriorityOrder(t *testing.T) {
	// Matches both the payment and salary rules; the earlier rule wins.
	assert.Equal(t, CategoryPaymentDefault, ClassifyAlert("EMI missed after salary delay", 0))
	// Matches savings and withdrawal rules.
	assert.Equal(t, CategorySavingsDepletion, ClassifyAlert("Savings drained by cash withdrawals", 0))
	// "credit" alone is not enough for Credit Overuse.
	assert.Equal(t, CategoryRiskMonitoring, ClassifyAlert("Credit score declining steadily", 10))
}

func TestClassifyAlert_Fallbacks(t *testing.T) {
	assert.Equal(t, CategoryElevatedRisk, ClassifyAlert("High risk of default detected", ElevatedRiskThreshold))
	assert.Equal(t, CategoryRiskMonitoring, ClassifyAlert("High risk of default detected", ElevatedRiskThreshold-1))
	assert.Equal(t, CategoryRiskMonitoring, ClassifyAlert("", 0))
}

func TestClassifyAlert_CaseInsensitive(t *testing.T) {
	assert.Equal(t, CategoryAutoDebitFailure, ClassifyAlert("AUTO-DEBIT FAILED", 0))
}

func TestClassifyAlert_Deterministic(t *testing.T) {
	for _, msg := range []string{"Missed 3 consecutive EMI payments", "Net worth turned negative", "Payment delays detected"} {
		assert.Equal(t, ClassifyAlert(msg, 75), ClassifyAlert(msg, 75))
	}
}

func TestRulesOrder(t *testing.T) {
	want := []string{
		CategoryPaymentDefault,
		CategoryIncomeIrregularity,
		CategoryAutoDebitFailure,
		CategoryCreditOveruse,
		CategorySavingsDepletion,
		CategoryBehaviouralAnomaly,
		CategoryDebtStacking,
		CategoryBillDefault,
	}
	got := make([]string, len(Rules))
	for i, r := range Rules {
		got[i] = r.Category
	}
	assert.Equal(t, want, got)
}

func TestAssignCaseworker(t *testing.T) {
	assert.Equal(t, DefaultRoster[1%len(DefaultRoster)], AssignCaseworker("USR-001", models.StatusCritical))
	assert.Equal(t, "Rahul Sharma", AssignCaseworker("USR-001", models.StatusCritical))
	assert.Equal(t, "Sneha Iyer", AssignCaseworker("USR-002", models.StatusHigh))
	assert.Equal(t, "Amit Verma", AssignCaseworker("USR-003", models.StatusMedium))
	assert.Equal(t, models.Unassigned, AssignCaseworker("USR-003", models.StatusLow))
	assert.Equal(t, models.Unassigned, Roster(nil).Assign("USR-001", models.StatusHigh))
	assert.Equal(t, "Solo", Roster{"Solo"}.Assign("USR-077", models.StatusHigh))
}

func TestNumericSuffix(t *testing.T) {
	tests := map[string]int{
		"USR-001": 1,
		"USR-100": 100,
		"USR-000": 0,
		"USR":     0,
		"":        0,
		"42":      42,
	}
	for id, want := range tests {
		assert.Equal(t, want, NumericSuffix(id), id)
	}
}

func TestScoreToRecommendation(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{100, ActionImmediateEscalation},
		{85, ActionImmediateEscalation},
		{84, ActionImmediateOutreach},
		{70, ActionImmediateOutreach},
		{69, ActionSoftOutreachSMS},
		{55, ActionSoftOutreachSMS},
		{54, ActionSoftOutreachEmail},
		{0, ActionSoftOutreachEmail},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreToRecommendation(tt.pct), "pct=%d", tt.pct)
	}
}

func TestDeriveFinalStatus(t *testing.T) {
	tests := []struct {
		outcome Outcome
		pct     int
		want    string
	}{
		{OutcomeAgreed, 85, "Hardship Programme"},
		{OutcomeAgreed, 70, "Follow-up Scheduled"},
		{OutcomeAgreed, 55, "Monitoring"},
		{OutcomeAgreed, 54, "Awaiting Response"},
		{OutcomeEscalated, 90, "Intervention Applied"},
		{OutcomeEscalated, 72, "Payment Plan Offered"},
		{OutcomeEscalated, 58, "Product Offered"},
		{OutcomeEscalated, 40, "Follow-up Scheduled"},
		{OutcomeDowngraded, 70, "Monitoring"},
		{OutcomeDowngraded, 61, "Closed — No Risk"},
		{OutcomeDowngraded, 54, "Closed — False Positive"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveFinalStatus(tt.outcome, tt.pct), "outcome=%d pct=%d", tt.outcome, tt.pct)
	}
}

func TestChannelForAlertType(t *testing.T) {
	assert.Equal(t, ChannelCall, ChannelForAlertType(models.AlertTypeCritical))
	assert.Equal(t, ChannelSMS, ChannelForAlertType(models.AlertTypeWarning))
	assert.Equal(t, ChannelEmail, ChannelForAlertType(models.AlertTypeInfo))
	assert.Equal(t, ChannelPush, ChannelForAlertType(""))
}

func TestTransactionRiskFlag(t *testing.T) {
	assert.Equal(t, TxFlagCritical, TransactionRiskFlag("EMI Payment - MISSED"))
	assert.Equal(t, TxFlagCritical, TransactionRiskFlag("Auto-debit Failed - Insufficient Balance"))
	assert.Equal(t, TxFlagHigh, TransactionRiskFlag("Utility Bill - Late Payment"))
	assert.Equal(t, TxFlagMedium, TransactionRiskFlag("Payday Loan - MoneyTap"))
	assert.Equal(t, TxFlagWatch, TransactionRiskFlag("ATM Withdrawal"))
	assert.Equal(t, TxFlagNormal, TransactionRiskFlag("Grocery Shopping"))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "High Stress", StressLevel(71))
	assert.Equal(t, "Medium Stress", StressLevel(70))
	assert.Equal(t, "Low Stress", StressLevel(40))
	assert.Equal(t, "Excellent", CreditScoreBucket(750))
	assert.Equal(t, "Good", CreditScoreBucket(700))
	assert.Equal(t, "Fair", CreditScoreBucket(699))
	assert.Equal(t, "Medium", RepaymentRisk(55))
}

func TestAlertID(t *testing.T) {
	assert.Equal(t, "ALT-045-02", AlertID("USR-045", 1))
	assert.Equal(t, "ALT-nodigits-01", AlertID("nodigits", 0))
	assert.NotEqual(t, AlertID("USR-001", 0), AlertID("CUS-001", 0))
	assert.Equal(t, "ALT-CUS-001-01", AlertID("CUS-001", 0))
}

func TestAssignAlertIDs(t *testing.T) {
	rec := models.CustomerRecord{ID: "USR-201", Alerts: []models.Alert{
		{Message: "a"},
		{ID: "KEEP", Message: "b"},
		{Message: "c"},
	}}
	AssignAlertIDs(&rec)
	assert.Equal(t, "ALT-201-01", rec.Alerts[0].ID)
	assert.Equal(t, "KEEP", rec.Alerts[1].ID)
	assert.Equal(t, "ALT-201-03", rec.Alerts[2].ID)
}
