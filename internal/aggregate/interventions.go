package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/rewired-gh/riskwatch/internal/derive"
	"github.com/rewired-gh/riskwatch/internal/models"
)

const interventionStep = 190 // minutes per customer number

// BuildInterventionLog returns one intervention per surfaced customer, most
// severe first and newest first within a severity.
func BuildInterventionLog(records []models.CustomerRecord, opts Options) []models.InterventionRow {
	roster := opts.roster()
	ref := opts.reference()
	var rows []models.InterventionRow
	for i := range records {
		rec := &records[i]
		if !rec.Surfaced() {
			continue
		}
		rows = append(rows, intervention(rec, roster, ref))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if wa, wb := a.Status.Weight(), b.Status.Weight(); wa != wb {
			return wa < wb
		}
		return a.Date+" "+a.Time > b.Date+" "+b.Time
	})
	if rows == nil {
		rows = []models.InterventionRow{}
	}
	return rows
}

func intervention(rec *models.CustomerRecord, roster derive.Roster, ref time.Time) models.InterventionRow {
	n := derive.NumericSuffix(rec.ID)
	pct := rec.RiskAssessment.RiskPercentage
	factors := riskFactors(rec)
	first := derive.Classify(rec.Alerts[0].Message, factors)

	score := min(99, max(1, pct+n%5-2))
	confidence := min(97, 62+pct/4+n%6)
	recommendation := derive.ScoreToRecommendation(score)
	at := ref.Add(-time.Duration(n*interventionStep) * time.Minute)

	reason := fmt.Sprintf("%s detected across %d alert(s); risk %d%%, behavioural score %d.",
		first.Category, len(rec.Alerts), pct, factors)

	outcome := outcomeFor(n)
	row := models.InterventionRow{
		ID:               fmt.Sprintf("INT-%03d", n),
		CustomerID:       rec.ID,
		CustomerName:     rec.Name,
		FlagType:         first.Category,
		Status:           rec.Status(),
		Date:             at.Format(DateLayout),
		Time:             at.Format(TimeLayout),
		Analyst:          roster.Assign(rec.ID, rec.Status()),
		AIRiskScore:      score,
		AIConfidence:     confidence,
		AIRecommendation: recommendation,
		AIReason:         reason,
		AISignals:        signals(rec, factors, pct),
		AnalystDecision:  recommendation,
		AnalystOutcome:   outcomeLabel(outcome),
		AnalystChanged:   outcome != derive.OutcomeAgreed,
		FinalStatus:      derive.DeriveFinalStatus(outcome, score),
	}
	switch outcome {
	case derive.OutcomeEscalated:
		row.AnalystDecision = escalate(recommendation)
		row.AnalystNote = fmt.Sprintf("Escalated: %s compounded by %d open alerts; model understates urgency.",
			first.Category, len(rec.Alerts))
	case derive.OutcomeDowngraded:
		row.AnalystDecision = downgrade(recommendation)
		row.AnalystNote = fmt.Sprintf("Downgraded: customer confirmed %s is temporary; monitoring instead.",
			first.Signal)
	}
	return row
}

// outcomeFor gives every fifth customer an escalation and every seventh
// (not already escalated) a downgrade.
func outcomeFor(n int) derive.Outcome {
	switch {
	case n%5 == 0:
		return derive.OutcomeEscalated
	case n%7 == 0:
		return derive.OutcomeDowngraded
	}
	return derive.OutcomeAgreed
}

func outcomeLabel(o derive.Outcome) string {
	switch o {
	case derive.OutcomeEscalated:
		return models.OutcomeEscalated
	case derive.OutcomeDowngraded:
		return models.OutcomeDowngraded
	}
	return models.OutcomeAgreed
}

// signals lists distinct alert signals in alert order, then the risk figure.
func signals(rec *models.CustomerRecord, factors, pct int) []string {
	seen := make(map[string]bool, len(rec.Alerts))
	var out []string
	for _, a := range rec.Alerts {
		s := derive.Classify(a.Message, factors).Signal
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return append(out, fmt.Sprintf("Risk %d%%", pct))
}

var actionLadder = []string{
	derive.ActionRestructuring,
	derive.ActionImmediateEscalation,
	derive.ActionImmediateOutreach,
	derive.ActionSoftOutreachSMS,
	derive.ActionSoftOutreachEmail,
	derive.ActionNoActionMonitor,
}

func ladderIndex(action string) int {
	for i, a := range actionLadder {
		if a == action {
			return i
		}
	}
	return len(actionLadder) - 1
}

func escalate(action string) string {
	return actionLadder[max(0, ladderIndex(action)-1)]
}

func downgrade(action string) string {
	return actionLadder[min(len(actionLadder)-1, ladderIndex(action)+1)]
}
