// Package fixtures builds the customer records the dashboard starts with:
// a hand-authored set plus a pseudo-random synthetic population.
package fixtures

import (
	"math"
	"strings"

	"github.com/rewired-gh/riskwatch/internal/derive"
	"github.com/rewired-gh/riskwatch/internal/models"
)

func emailFor(name string) string {
	return strings.ToLower(strings.Replace(name, " ", ".", 1)) + "@email.com"
}

func round(v float64) float64 {
	return math.Round(v)
}

func cashFlowSeries(income, expenses float64) []models.CashFlowPoint {
	offsets := []float64{-2000, -1000, 0, 500, 1000, 0}
	out := make([]models.CashFlowPoint, len(models.Months))
	for i, m := range models.Months {
		out[i] = models.CashFlowPoint{Month: m, Income: income, Expenses: expenses + offsets[i]}
	}
	return out
}

func liquiditySeries(status models.Status, income float64) []models.LiquidityPoint {
	factors := []float64{1.0, 0.9, 0.8, 0.7, 0.5, 0.4}
	if status == models.StatusLow {
		factors = []float64{1.5, 1.8, 2.1, 2.4, 2.7, 3.0}
	}
	out := make([]models.LiquidityPoint, len(models.Months))
	for i, m := range models.Months {
		out[i] = models.LiquidityPoint{Month: m, Amount: round(income * factors[i])}
	}
	return out
}

func creditHistory(score int) []models.CreditScorePoint {
	deltas := []int{10, 8, 5, 3, 1, 0}
	out := make([]models.CreditScorePoint, len(models.Months))
	for i, m := range models.Months {
		out[i] = models.CreditScorePoint{Month: m, Score: score + deltas[i]}
	}
	return out
}

func paymentSeries(status models.Status, pct int) []models.PaymentPoint {
	out := make([]models.PaymentPoint, len(models.Months))
	if status == models.StatusLow {
		for i, m := range models.Months {
			out[i] = models.PaymentPoint{Month: m, OnTime: 100}
		}
		return out
	}
	p := float64(pct)
	base := []float64{95, 90, 85, 80, 75, 70}
	divisors := []float64{5, 4, 3, 3, 3, 3}
	for i, m := range models.Months {
		late := 100 - base[i] + p/divisors[i]
		out[i] = models.PaymentPoint{Month: m, OnTime: 100 - late, Late: late}
	}
	return out
}

func riskAssessment(status models.Status, pct int) models.RiskAssessment {
	return models.RiskAssessment{
		RiskScore:      string(status),
		RiskPercentage: pct,
		StressLevel:    derive.StressLevel(pct),
		KeyFactors: models.KeyFactors{
			BehavioralRiskFactors: int(round(float64(pct) * 0.9)),
			HighRiskEateries:      int(round(float64(pct) * 0.7)),
			HighRiskRepayment:     derive.RepaymentRisk(pct),
		},
	}
}

// spendingCategories returns the category split; jitter supplies the
// per-category spread in [0,1).
func spendingCategories(status models.Status, jitter func() float64) []models.SpendingCategory {
	type band struct {
		name       string
		base, span float64
	}
	bands := []band{
		{"Investments", 25, 10},
		{"EMI & Loans", 15, 8},
		{"Food & Groceries", 18, 5},
		{"Utilities", 12, 5},
		{"Entertainment", 12, 8},
		{"Others", 8, 5},
	}
	if status == models.StatusCritical || status == models.StatusHigh {
		bands = []band{
			{"EMI & Loans", 30, 10},
			{"Lending Apps", 15, 10},
			{"Food & Groceries", 18, 5},
			{"Cash Withdrawals", 10, 8},
			{"Utilities", 10, 5},
			{"Others", 5, 5},
		}
	}
	out := make([]models.SpendingCategory, len(bands))
	for i, b := range bands {
		out[i] = models.SpendingCategory{Category: b.name, Value: round(b.base + jitter()*b.span)}
	}
	return out
}

func transactions(status models.Status, income float64) []models.Transaction {
	if status == models.StatusCritical || status == models.StatusHigh {
		return []models.Transaction{
			{Date: "2026-02-15", Description: "Quick Loan App Transfer", Amount: -round(income * 0.3), Type: "debit"},
			{Date: "2026-02-13", Description: "ATM Withdrawal", Amount: -round(income * 0.2), Type: "debit"},
			{Date: "2026-02-11", Description: "EMI Payment - Partial", Amount: -round(income * 0.25), Type: "debit"},
			{Date: "2026-02-09", Description: "Utility Bill - Late Fee", Amount: -round(income * 0.08), Type: "debit"},
			{Date: "2026-02-05", Description: "Salary Credit", Amount: income, Type: "credit"},
		}
	}
	return []models.Transaction{
		{Date: "2026-02-15", Description: "Salary Credit", Amount: income, Type: "credit"},
		{Date: "2026-02-14", Description: "Investment - SIP", Amount: -round(income * 0.15), Type: "debit"},
		{Date: "2026-02-13", Description: "EMI Payment - Auto Debit Success", Amount: -round(income * 0.2), Type: "debit"},
		{Date: "2026-02-11", Description: "Credit Card Bill - Full Payment", Amount: -round(income * 0.22), Type: "debit"},
		{Date: "2026-02-09", Description: "Grocery Shopping", Amount: -round(income * 0.08), Type: "debit"},
	}
}

func statusAlerts(status models.Status) []models.Alert {
	switch status {
	case models.StatusCritical:
		return []models.Alert{
			{Type: models.AlertTypeCritical, Message: "High risk of default detected", Date: "1 day ago"},
			{Type: models.AlertTypeWarning, Message: "Multiple missed payments", Date: "3 days ago"},
			{Type: models.AlertTypeWarning, Message: "Lending app usage detected", Date: "5 days ago"},
		}
	case models.StatusHigh:
		return []models.Alert{
			{Type: models.AlertTypeWarning, Message: "Payment delays detected", Date: "2 days ago"},
			{Type: models.AlertTypeWarning, Message: "Credit utilization high", Date: "5 days ago"},
		}
	case models.StatusMedium:
		return []models.Alert{
			{Type: models.AlertTypeInfo, Message: "Minor payment delays", Date: "1 week ago"},
		}
	}
	return []models.Alert{}
}
