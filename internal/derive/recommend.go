package derive

import "github.com/rewired-gh/riskwatch/internal/models"

// Recommended outreach actions, most urgent first.
const (
	ActionImmediateEscalation = "Immediate Escalation — Call"
	ActionImmediateOutreach   = "Immediate Outreach — Call"
	ActionSoftOutreachSMS     = "Soft Outreach — SMS"
	ActionSoftOutreachEmail   = "Soft Outreach — Email"
	ActionNoActionMonitor     = "No Action — Monitor"
	ActionRestructuring       = "Payment Holiday + Restructuring"
)

// Threshold ladder shared by recommendation and final status. Each bound is inclusive.
const (
	TierCritical = 85
	TierHigh     = 70
	TierMedium   = 55
)

// ScoreToRecommendation maps a risk percentage to an outreach action.
func ScoreToRecommendation(pct int) string {
	switch {
	case pct >= TierCritical:
		return ActionImmediateEscalation
	case pct >= TierHigh:
		return ActionImmediateOutreach
	case pct >= TierMedium:
		return ActionSoftOutreachSMS
	}
	return ActionSoftOutreachEmail
}

// Outcome is the analyst's stance relative to the machine recommendation.
type Outcome int

const (
	OutcomeAgreed Outcome = iota
	OutcomeEscalated
	OutcomeDowngraded
)

// DeriveFinalStatus picks the display status of an intervention.
func DeriveFinalStatus(outcome Outcome, pct int) string {
	switch outcome {
	case OutcomeEscalated:
		switch {
		case pct >= TierCritical:
			return "Intervention Applied"
		case pct >= TierHigh:
			return "Payment Plan Offered"
		case pct >= TierMedium:
			return "Product Offered"
		}
		return "Follow-up Scheduled"
	case OutcomeDowngraded:
		switch {
		case pct >= TierHigh:
			return "Monitoring"
		case pct >= TierMedium:
			return "Closed — No Risk"
		}
		return "Closed — False Positive"
	}
	switch {
	case pct >= TierCritical:
		return "Hardship Programme"
	case pct >= TierHigh:
		return "Follow-up Scheduled"
	case pct >= TierMedium:
		return "Monitoring"
	}
	return "Awaiting Response"
}

// Outreach channels.
const (
	ChannelSMS   = "SMS"
	ChannelEmail = "Email"
	ChannelPush  = "Push"
	ChannelCall  = "Call"
)

// ChannelForAlertType maps a raw alert severity tag to an outreach channel.
func ChannelForAlertType(alertType string) string {
	switch alertType {
	case models.AlertTypeCritical:
		return ChannelCall
	case models.AlertTypeWarning:
		return ChannelSMS
	case models.AlertTypeInfo:
		return ChannelEmail
	}
	return ChannelPush
}

// StressLevel labels a risk percentage.
func StressLevel(pct int) string {
	switch {
	case pct > 70:
		return "High Stress"
	case pct > 40:
		return "Medium Stress"
	}
	return "Low Stress"
}

// RepaymentRisk labels repayment risk for a risk percentage.
func RepaymentRisk(pct int) string {
	switch {
	case pct > 70:
		return "High"
	case pct > 40:
		return "Medium"
	}
	return "Low"
}

// CreditScoreBucket labels a credit score.
func CreditScoreBucket(score int) string {
	switch {
	case score >= 750:
		return "Excellent"
	case score >= 700:
		return "Good"
	}
	return "Fair"
}
