// Package models defines the customer records and the row projections served to the dashboard.
package models

import (
	"errors"
	"fmt"
)

// CustomerRecord is one monitored individual.
type CustomerRecord struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Profile            Profile            `json:"profile"`
	FinancialSummary   FinancialSummary   `json:"financialSummary"`
	RiskAssessment     RiskAssessment     `json:"riskAssessment"`
	SavingsRate        SavingsRate        `json:"savingsRate"`
	SpendingCategories []SpendingCategory `json:"spendingCategories"`
	CashFlow           []CashFlowPoint    `json:"cashFlowData"`
	Liquidity          []LiquidityPoint   `json:"liquidityData"`
	CreditScoreHistory []CreditScorePoint `json:"creditScoreHistory"`
	PaymentHistory     []PaymentPoint     `json:"paymentHistory"`
	Alerts             []Alert            `json:"alerts"`
	RecentTransactions []Transaction      `json:"recentTransactions"`
}

type Profile struct {
	CreditScore       int    `json:"creditScore"`
	CreditScoreStatus string `json:"creditScoreStatus"`
	Status            Status `json:"status"`
	AccountNumber     string `json:"accountNumber"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	DateJoined        string `json:"dateJoined"`
	LastUpdated       string `json:"lastUpdated"`
}

// FinancialSummary holds display aggregates. The fields are not required to reconcile.
type FinancialSummary struct {
	TotalAssets      float64 `json:"totalAssets"`
	TotalLiabilities float64 `json:"totalLiabilities"`
	TotalDebt        float64 `json:"totalDebt"`
	TotalTaxCredits  float64 `json:"totalTaxCredits"`
	NetWorth         float64 `json:"netWorth"`
	MonthlyIncome    float64 `json:"monthlyIncome"`
	MonthlyExpenses  float64 `json:"monthlyExpenses"`
}

type RiskAssessment struct {
	RiskScore      string     `json:"riskScore"`
	RiskPercentage int        `json:"riskPercentage"`
	StressLevel    string     `json:"stressLevel"`
	KeyFactors     KeyFactors `json:"keyFactors"`
}

type KeyFactors struct {
	BehavioralRiskFactors int    `json:"behavioralRiskFactors"`
	HighRiskEateries      int    `json:"highRiskEateries"`
	HighRiskRepayment     string `json:"highRiskRepayment"`
}

type SavingsRate struct {
	Current       int `json:"current"`
	Target        int `json:"target"`
	EmergencyFund int `json:"emergencyFund"`
}

type SpendingCategory struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type CashFlowPoint struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

type LiquidityPoint struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

type CreditScorePoint struct {
	Month string `json:"month"`
	Score int    `json:"score"`
}

type PaymentPoint struct {
	Month  string  `json:"month"`
	OnTime float64 `json:"onTime"`
	Late   float64 `json:"late"`
}

// Alert is a raw risk signal on a customer. ID is assigned when the record is
// created and stays with the alert regardless of store ordering.
type Alert struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

type Transaction struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
}

// Months is the fixed label set for every six-point series.
var Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}

// Validate checks required fields and value ranges.
func (c *CustomerRecord) Validate() error {
	if c.ID == "" {
		return errors.New("customer ID must not be empty")
	}
	if c.Name == "" {
		return errors.New("customer name must not be empty")
	}
	if !c.Profile.Status.Valid() {
		return fmt.Errorf("customer %s has invalid status %q", c.ID, c.Profile.Status)
	}
	if p := c.RiskAssessment.RiskPercentage; p < 0 || p > 100 {
		return fmt.Errorf("customer %s risk percentage %d out of range 0-100", c.ID, p)
	}
	seen := make(map[string]bool, len(c.Alerts))
	for _, a := range c.Alerts {
		if a.ID == "" {
			continue
		}
		if seen[a.ID] {
			return fmt.Errorf("customer %s has duplicate alert ID %s", c.ID, a.ID)
		}
		seen[a.ID] = true
	}
	return nil
}

// Status is shorthand for Profile.Status.
func (c *CustomerRecord) Status() Status {
	return c.Profile.Status
}

// Surfaced reports whether the customer contributes to the alert feed and
// intervention log: not Low and at least one alert.
func (c *CustomerRecord) Surfaced() bool {
	return c.Profile.Status != StatusLow && len(c.Alerts) > 0
}
