// Package derive holds the pure functions that turn a customer record into
// dashboard fields: alert category, caseworker, recommendation and status.
package derive

import "strings"

// Alert categories.
const (
	CategoryPaymentDefault     = "Payment Default"
	CategoryIncomeIrregularity = "Income Irregularity"
	CategoryAutoDebitFailure   = "Auto-debit Failure"
	CategoryCreditOveruse      = "Credit Overuse"
	CategorySavingsDepletion   = "Savings Depletion"
	CategoryBehaviouralAnomaly = "Behavioural Anomaly"
	CategoryDebtStacking       = "Debt Stacking"
	CategoryBillDefault        = "Bill Default"
	CategoryElevatedRisk       = "Elevated Risk Pattern"
	CategoryRiskMonitoring     = "Risk Monitoring"
)

// ElevatedRiskThreshold is the behavioural sub-score at or above which an
// unmatched message is still classified as an elevated risk pattern.
const ElevatedRiskThreshold = 70

// Rule maps a message predicate to a category and a short signal label.
type Rule struct {
	Category string
	Signal   string
	Match    func(lower string) bool
}

func containsAny(words ...string) func(string) bool {
	return func(s string) bool {
		for _, w := range words {
			if strings.Contains(s, w) {
				return true
			}
		}
		return false
	}
}

// Rules is evaluated top to bottom; the first matching rule wins.
// A message matching two rules takes the earlier one.
var Rules = []Rule{
	{CategoryPaymentDefault, "EMI Miss", containsAny("missed", "emi")},
	{CategoryIncomeIrregularity, "Salary Delay", containsAny("salary", "income")},
	{CategoryAutoDebitFailure, "Auto-debit", containsAny("auto-debit")},
	{CategoryCreditOveruse, "Credit Util.", func(s string) bool {
		return strings.Contains(s, "credit") && containsAny("utilisation", "utilization")(s)
	}},
	{CategorySavingsDepletion, "Savings Drop", containsAny("savings", "depleted")},
	{CategoryBehaviouralAnomaly, "ATM Surge", containsAny("withdrawal", "cash")},
	{CategoryDebtStacking, "Lending Apps", containsAny("lending", "loan app")},
	{CategoryBillDefault, "Utility Bills", containsAny("utility", "bill")},
}

// Classification is the outcome of classifying one alert message.
type Classification struct {
	Category string
	Signal   string
}

// Classify returns the category and signal label for an alert message.
func Classify(message string, riskFactors int) Classification {
	lower := strings.ToLower(message)
	for _, r := range Rules {
		if r.Match(lower) {
			return Classification{Category: r.Category, Signal: r.Signal}
		}
	}
	if riskFactors >= ElevatedRiskThreshold {
		return Classification{Category: CategoryElevatedRisk, Signal: "Behaviour Score"}
	}
	return Classification{Category: CategoryRiskMonitoring, Signal: "Watchlist"}
}

// ClassifyAlert returns only the category of an alert message.
func ClassifyAlert(message string, riskFactors int) string {
	return Classify(message, riskFactors).Category
}

// Transaction risk flags used on customer reports.
const (
	TxFlagCritical = "Critical"
	TxFlagHigh     = "High"
	TxFlagMedium   = "Medium"
	TxFlagWatch    = "Watch"
	TxFlagNormal   = "Normal"
)

// TransactionRiskFlag grades a transaction description by keyword.
func TransactionRiskFlag(description string) string {
	lower := strings.ToLower(description)
	switch {
	case containsAny("missed", "failed")(lower):
		return TxFlagCritical
	case containsAny("late", "delayed")(lower):
		return TxFlagHigh
	case containsAny("loan", "lending")(lower):
		return TxFlagMedium
	case containsAny("atm", "withdrawal")(lower):
		return TxFlagWatch
	}
	return TxFlagNormal
}
