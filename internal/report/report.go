// Package report renders a plain-text risk report for one customer.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/rewired-gh/riskwatch/internal/derive"
	"github.com/rewired-gh/riskwatch/internal/models"
)

// Financial row states.
const (
	StateNormal   = "Normal"
	StateHigh     = "High"
	StateCritical = "Critical"
)

// FinancialLine is one row of the financial summary table.
type FinancialLine struct {
	Metric string
	Amount float64
	State  string
}

// TransactionLine is one row of the transaction table.
type TransactionLine struct {
	Date        string
	Description string
	Amount      float64
	Flag        string
}

// Report is a customer risk report ready to render.
type Report struct {
	ID             string
	GeneratedAt    time.Time
	Customer       *models.CustomerRecord
	Classification string
	Recommendation string
	Financials     []FinancialLine
	Transactions   []TransactionLine
	Strategy       []string
}

// Build assembles the report for rec as of now.
func Build(rec *models.CustomerRecord, now time.Time) *Report {
	pct := rec.RiskAssessment.RiskPercentage
	r := &Report{
		ID:             uuid.NewString(),
		GeneratedAt:    now,
		Customer:       rec,
		Classification: classify(rec),
		Recommendation: derive.ScoreToRecommendation(pct),
		Financials:     financials(rec.FinancialSummary),
		Strategy:       strategy(pct),
	}
	for _, tx := range rec.RecentTransactions {
		r.Transactions = append(r.Transactions, TransactionLine{
			Date:        tx.Date,
			Description: tx.Description,
			Amount:      tx.Amount,
			Flag:        derive.TransactionRiskFlag(tx.Description),
		})
	}
	return r
}

// classify uses the customer's first alert, as the dashboard does.
func classify(rec *models.CustomerRecord) string {
	if len(rec.Alerts) == 0 {
		return derive.CategoryRiskMonitoring
	}
	return derive.ClassifyAlert(rec.Alerts[0].Message, rec.RiskAssessment.KeyFactors.BehavioralRiskFactors)
}

func financials(f models.FinancialSummary) []FinancialLine {
	expenses := StateNormal
	if f.MonthlyExpenses > f.MonthlyIncome {
		expenses = StateHigh
	}
	netWorth := StateNormal
	if f.NetWorth < 0 {
		netWorth = StateCritical
	}
	return []FinancialLine{
		{"Monthly Income", f.MonthlyIncome, StateNormal},
		{"Monthly Expenses", f.MonthlyExpenses, expenses},
		{"Total Assets", f.TotalAssets, StateNormal},
		{"Total Liabilities", f.TotalLiabilities, StateHigh},
		{"Net Worth", f.NetWorth, netWorth},
		{"Total Debt", f.TotalDebt, StateHigh},
	}
}

func strategy(pct int) []string {
	switch {
	case pct >= derive.TierHigh:
		return []string{
			"Immediate contact within 24 hours: call from the relationship manager",
			"Payment restructuring in days 2-7: EMI moratorium, reduced EMI, late fees waived",
			"Financial counselling: budgeting programme and monthly plan",
			"Monitoring in days 8-60: real-time transaction watch, weekly check-ins",
		}
	case pct >= derive.TierMedium:
		return []string{
			"Soft outreach by SMS with repayment reminders",
			"Offer auto-debit enrolment and due-date alignment with salary credit",
			"Review in 30 days",
		}
	}
	return []string{"Continue routine monitoring"}
}

// Render writes the report as plain text.
func (r *Report) Render(w io.Writer) error {
	c := r.Customer
	pct := c.RiskAssessment.RiskPercentage
	var b strings.Builder

	section := func(title string) {
		fmt.Fprintf(&b, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))
	}

	fmt.Fprintf(&b, "CUSTOMER RISK REPORT\n")
	fmt.Fprintf(&b, "Report ID:      %s\n", r.ID)
	fmt.Fprintf(&b, "Generated:      %s\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Customer:       %s (%s)\n", c.Name, c.ID)
	fmt.Fprintf(&b, "Account:        %s\n", c.Profile.AccountNumber)
	fmt.Fprintf(&b, "Risk Level:     %s (%d%%)\n", c.Status(), pct)
	fmt.Fprintf(&b, "Classification: %s\n", r.Classification)
	fmt.Fprintf(&b, "Recommended:    %s\n", r.Recommendation)

	section("EXECUTIVE SUMMARY")
	fmt.Fprintf(&b, "%s (ID: %s) presents a %s delinquency risk with a %d%% probability of default within the next 30 days.\n",
		c.Name, c.ID, strings.ToLower(string(c.Status())), pct)
	fmt.Fprintf(&b, "- Credit Score: %d (%s)\n", c.Profile.CreditScore, c.Profile.CreditScoreStatus)
	fmt.Fprintf(&b, "- Stress Level: %s\n", c.RiskAssessment.StressLevel)
	fmt.Fprintf(&b, "- Savings Rate: %d%% (target %d%%)\n", c.SavingsRate.Current, c.SavingsRate.Target)

	section("FINANCIAL SUMMARY")
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Metric\tAmount (₹)\tStatus")
	for _, l := range r.Financials {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Metric, FormatINR(l.Amount), l.State)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	section("TRANSACTION PATTERN ANALYSIS")
	if len(r.Transactions) == 0 {
		b.WriteString("No recent transactions.\n")
	} else {
		tw = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Date\tTransaction\tAmount\tRisk Flag")
		for _, t := range r.Transactions {
			amount := t.Amount
			if amount < 0 {
				amount = -amount
			}
			fmt.Fprintf(tw, "%s\t%s\t₹%s\t%s\n", t.Date, t.Description, FormatINR(amount), t.Flag)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	section("RECENT ALERTS")
	if len(c.Alerts) == 0 {
		b.WriteString("No recent alerts.\n")
	}
	for _, a := range c.Alerts {
		fmt.Fprintf(&b, "[%s] %s (%s)\n", strings.ToUpper(a.Type), a.Message, a.Date)
	}

	section("RECOMMENDED INTERVENTION STRATEGY")
	for i, s := range r.Strategy {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
