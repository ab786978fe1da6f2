package fixtures

import (
	"fmt"

	"github.com/rewired-gh/riskwatch/internal/derive"
	"github.com/rewired-gh/riskwatch/internal/models"
)

type handRecord struct {
	id, name      string
	status        models.Status
	creditScore   int
	creditStatus  string
	account       string
	joined        string
	updated       string
	summary       models.FinancialSummary
	risk          int
	behavioural   int
	eateries      int
	repayment     string
	savings       models.SavingsRate
	expenses      [6]float64
	liquidity     [6]float64
	creditHistory [6]int
	onTime        [6]float64
	alerts        []models.Alert
	tx            []models.Transaction
}

func (h handRecord) build(phoneSuffix int) models.CustomerRecord {
	creditStatus := h.creditStatus
	if creditStatus == "" {
		creditStatus = derive.CreditScoreBucket(h.creditScore)
	}
	rec := models.CustomerRecord{
		ID:   h.id,
		Name: h.name,
		Profile: models.Profile{
			CreditScore:       h.creditScore,
			CreditScoreStatus: creditStatus,
			Status:            h.status,
			AccountNumber:     h.account,
			Email:             emailFor(h.name),
			Phone:             phone(phoneSuffix),
			DateJoined:        h.joined,
			LastUpdated:       h.updated,
		},
		FinancialSummary: h.summary,
		RiskAssessment:   riskAssessment(h.status, h.risk),
		SavingsRate:      h.savings,
		Alerts:           append([]models.Alert{}, h.alerts...),
	}
	rec.RiskAssessment.KeyFactors = models.KeyFactors{
		BehavioralRiskFactors: h.behavioural,
		HighRiskEateries:      h.eateries,
		HighRiskRepayment:     h.repayment,
	}
	mid := func() float64 { return 0.5 }
	rec.SpendingCategories = spendingCategories(h.status, mid)

	for i, m := range models.Months {
		rec.CashFlow = append(rec.CashFlow, models.CashFlowPoint{Month: m, Income: h.summary.MonthlyIncome, Expenses: h.expenses[i]})
		rec.Liquidity = append(rec.Liquidity, models.LiquidityPoint{Month: m, Amount: h.liquidity[i]})
		rec.CreditScoreHistory = append(rec.CreditScoreHistory, models.CreditScorePoint{Month: m, Score: h.creditHistory[i]})
		rec.PaymentHistory = append(rec.PaymentHistory, models.PaymentPoint{Month: m, OnTime: h.onTime[i], Late: 100 - h.onTime[i]})
	}
	if h.tx != nil {
		rec.RecentTransactions = append([]models.Transaction{}, h.tx...)
	} else {
		rec.RecentTransactions = transactions(h.status, h.summary.MonthlyIncome)
	}
	derive.AssignAlertIDs(&rec)
	return rec
}

func phone(n int) string {
	return fmt.Sprintf("+91 98765 432%02d", n%100)
}

func summary(assets, liabilities, debt, netWorth, income, expenses float64) models.FinancialSummary {
	return models.FinancialSummary{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		TotalDebt:        debt,
		TotalTaxCredits:  round(income * 1.2),
		NetWorth:         netWorth,
		MonthlyIncome:    income,
		MonthlyExpenses:  expenses,
	}
}

func alert(typ, message, date string) models.Alert {
	return models.Alert{Type: typ, Message: message, Date: date}
}

func tx(date, description string, amount float64) models.Transaction {
	typ := "debit"
	if amount > 0 {
		typ = "credit"
	}
	return models.Transaction{Date: date, Description: description, Amount: amount, Type: typ}
}

var handRecords = []handRecord{
	{
		id: "USR-001", name: "Aryan Mehta", status: models.StatusCritical, creditScore: 650,
		account: "ACC123456789", joined: "Mar 2019", updated: "1 hour ago",
		summary: summary(450000, 380000, 250000, 70000, 45000, 52000),
		risk:    85, behavioural: 75, eateries: 60, repayment: "High",
		savings:       models.SavingsRate{Current: 15, Target: 50, EmergencyFund: 20},
		expenses:      [6]float64{58000, 54000, 51000, 48000, 47000, 52000},
		liquidity:     [6]float64{58000, 45000, 38000, 32000, 28000, 25000},
		creditHistory: [6]int{690, 680, 670, 665, 655, 650},
		onTime:        [6]float64{95, 85, 70, 60, 60, 50},
		alerts: []models.Alert{
			alert(models.AlertTypeWarning, "Missed 3 consecutive EMI payments", "2 days ago"),
			alert(models.AlertTypeWarning, "Salary delayed by 10 days", "3 days ago"),
			alert(models.AlertTypeWarning, "Multiple quick loan app transfers detected", "5 days ago"),
		},
		tx: []models.Transaction{
			tx("2026-02-14", "Salary Credit - Delayed", 45000),
			tx("2026-02-12", "EMI Payment - MISSED", 0),
			tx("2026-02-10", "Quick Loan - KreditBee", -8000),
			tx("2026-02-08", "ATM Withdrawal - Emergency", -10000),
			tx("2026-02-06", "Payday Loan - MoneyTap", -20000),
		},
	},
	{
		id: "USR-002", name: "Priya Nair", status: models.StatusHigh, creditScore: 680, creditStatus: "Good",
		account: "ACC234567890", joined: "Jun 2020", updated: "2 hours ago",
		summary: summary(520000, 280000, 180000, 240000, 52000, 48000),
		risk:    72, behavioural: 68, eateries: 45, repayment: "Medium-High",
		savings:       models.SavingsRate{Current: 8, Target: 50, EmergencyFund: 35},
		expenses:      [6]float64{47000, 46000, 48000, 49000, 47000, 48000},
		liquidity:     [6]float64{82000, 87000, 91000, 94000, 99000, 51000},
		creditHistory: [6]int{695, 692, 690, 688, 685, 680},
		onTime:        [6]float64{100, 100, 95, 90, 85, 70},
		alerts: []models.Alert{
			alert(models.AlertTypeCritical, "Salary delayed by 12 days", "1 day ago"),
			alert(models.AlertTypeWarning, "Increased ATM withdrawals detected", "3 days ago"),
			alert(models.AlertTypeWarning, "Savings account balance declining rapidly", "5 days ago"),
		},
		tx: []models.Transaction{
			tx("2026-02-15", "ATM Withdrawal", -15000),
			tx("2026-02-13", "Credit Card Bill - Partial Payment", -8000),
			tx("2026-02-10", "Utility Bill - Late Payment", -3500),
			tx("2026-02-08", "ATM Withdrawal", -12000),
			tx("2026-02-04", "Grocery Shopping", -6000),
		},
	},
	{
		id: "USR-003", name: "Karan Patel", status: models.StatusLow, creditScore: 750,
		account: "ACC345678901", joined: "Jan 2018", updated: "30 minutes ago",
		summary: summary(850000, 180000, 120000, 670000, 75000, 48000),
		risk:    15, behavioural: 12, eateries: 10, repayment: "Low",
		savings:       models.SavingsRate{Current: 36, Target: 50, EmergencyFund: 85},
		expenses:      [6]float64{46000, 47000, 48000, 49000, 47000, 48000},
		liquidity:     [6]float64{145000, 173000, 200000, 226000, 254000, 281000},
		creditHistory: [6]int{745, 746, 748, 749, 750, 750},
		onTime:        [6]float64{100, 100, 100, 100, 100, 100},
		alerts:        []models.Alert{},
		tx: []models.Transaction{
			tx("2026-02-15", "Salary Credit", 75000),
			tx("2026-02-14", "EMI Payment - Auto Debit Success", -15000),
			tx("2026-02-12", "Mutual Fund SIP", -10000),
			tx("2026-02-10", "Credit Card Bill - Full Payment", -12000),
			tx("2026-02-08", "Restaurant - Weekend Dining", -3500),
		},
	},
	{
		id: "USR-004", name: "Divya Krishnan", status: models.StatusHigh, creditScore: 665,
		account: "ACC456789012", joined: "Sep 2019", updated: "1 hour ago",
		summary: summary(380000, 290000, 220000, 90000, 48000, 49000),
		risk:    70, behavioural: 65, eateries: 50, repayment: "High",
		savings:       models.SavingsRate{Current: 2, Target: 50, EmergencyFund: 18},
		expenses:      [6]float64{47000, 48000, 48500, 49000, 49500, 49000},
		liquidity:     [6]float64{52000, 53000, 52500, 51500, 50000, 49000},
		creditHistory: [6]int{685, 680, 675, 672, 668, 665},
		onTime:        [6]float64{100, 95, 90, 85, 80, 75},
		alerts: []models.Alert{
			alert(models.AlertTypeCritical, "Auto-debit failed 2 times this month", "1 day ago"),
			alert(models.AlertTypeWarning, "Account balance frequently below minimum", "4 days ago"),
			alert(models.AlertTypeWarning, "Credit score declining steadily", "1 week ago"),
		},
		tx: []models.Transaction{
			tx("2026-02-15", "Auto-debit Failed - Insufficient Balance", 0),
			tx("2026-02-13", "ATM Withdrawal", -8000),
			tx("2026-02-10", "Auto-debit Failed - Insufficient Balance", 0),
			tx("2026-02-08", "Utility Bill - Manual Payment", -4500),
			tx("2026-02-05", "Salary Credit", 48000),
		},
	},
	{
		id: "USR-005", name: "Rohit Singh", status: models.StatusMedium, creditScore: 640,
		account: "ACC567890123", joined: "Apr 2020", updated: "3 hours ago",
		summary: summary(420000, 340000, 280000, 80000, 55000, 53000),
		risk:    58, behavioural: 55, eateries: 48, repayment: "Medium",
		savings:       models.SavingsRate{Current: 4, Target: 50, EmergencyFund: 30},
		expenses:      [6]float64{50000, 51000, 52000, 52500, 53000, 53000},
		liquidity:     [6]float64{48000, 52000, 55000, 57500, 59500, 61500},
		creditHistory: [6]int{670, 665, 658, 652, 645, 640},
		onTime:        [6]float64{100, 95, 90, 85, 80, 78},
		alerts: []models.Alert{
			alert(models.AlertTypeWarning, "Credit utilisation above 90%", "2 days ago"),
			alert(models.AlertTypeWarning, "Only minimum credit card payments detected", "5 days ago"),
			alert(models.AlertTypeInfo, "High spending on discretionary categories", "1 week ago"),
		},
		tx: []models.Transaction{
			tx("2026-02-14", "Credit Card Payment - Minimum Due", -5000),
			tx("2026-02-12", "Online Shopping - Electronics", -18000),
			tx("2026-02-10", "Credit Card Payment - Minimum Due", -4500),
			tx("2026-02-08", "Restaurant & Entertainment", -6500),
			tx("2026-02-05", "Salary Credit", 55000),
		},
	},
	{
		id: "USR-006", name: "Ananya Das", status: models.StatusLow, creditScore: 765,
		account: "ACC678901234", joined: "Feb 2019", updated: "45 minutes ago",
		summary: summary(920000, 150000, 95000, 770000, 82000, 52000),
		risk:    12, behavioural: 8, eateries: 5, repayment: "Low",
		savings:       models.SavingsRate{Current: 37, Target: 50, EmergencyFund: 88},
		expenses:      [6]float64{50000, 51000, 52000, 51500, 52500, 52000},
		liquidity:     [6]float64{195000, 226000, 256000, 286500, 316000, 346000},
		creditHistory: [6]int{760, 761, 762, 763, 764, 765},
		onTime:        [6]float64{100, 100, 100, 100, 100, 100},
		alerts:        []models.Alert{},
		tx: []models.Transaction{
			tx("2026-02-15", "Salary Credit", 82000),
			tx("2026-02-14", "Mutual Fund SIP", -15000),
			tx("2026-02-13", "EMI Payment - Auto Debit Success", -12000),
			tx("2026-02-11", "Credit Card Bill - Full Payment", -18000),
			tx("2026-02-09", "Healthcare - Insurance Premium", -8000),
		},
	},
	{
		id: "USR-007", name: "Vikram Joshi", status: models.StatusCritical, creditScore: 655,
		account: "ACC789012345", joined: "Jul 2018", updated: "1 hour ago",
		summary: summary(280000, 320000, 260000, -40000, 42000, 54000),
		risk:    88, behavioural: 82, eateries: 64, repayment: "High",
		savings:       models.SavingsRate{Current: -4, Target: 50, EmergencyFund: 8},
		expenses:      [6]float64{50000, 52000, 53000, 54000, 55000, 54000},
		liquidity:     [6]float64{42000, 35000, 28000, 21000, 14000, 9000},
		creditHistory: [6]int{685, 678, 670, 665, 660, 655},
		onTime:        [6]float64{90, 80, 70, 65, 55, 45},
		alerts: []models.Alert{
			alert(models.AlertTypeCritical, "Savings depleted below threshold", "1 day ago"),
			alert(models.AlertTypeCritical, "Net worth turned negative", "2 days ago"),
			alert(models.AlertTypeWarning, "Multiple lending app transfers detected", "4 days ago"),
		},
	},
	{
		id: "USR-008", name: "Meera Pillai", status: models.StatusMedium, creditScore: 670,
		account: "ACC890123456", joined: "Nov 2019", updated: "2 hours ago",
		summary: summary(480000, 240000, 165000, 240000, 58000, 52000),
		risk:    52, behavioural: 58, eateries: 40, repayment: "Medium",
		savings:       models.SavingsRate{Current: 10, Target: 50, EmergencyFund: 40},
		expenses:      [6]float64{48000, 49000, 50000, 51000, 52000, 52000},
		liquidity:     [6]float64{58000, 52000, 46000, 41000, 35000, 30000},
		creditHistory: [6]int{690, 686, 682, 678, 674, 670},
		onTime:        [6]float64{100, 95, 90, 88, 85, 82},
		alerts: []models.Alert{
			alert(models.AlertTypeWarning, "Increased cash withdrawals detected", "2 days ago"),
			alert(models.AlertTypeInfo, "Cash hoarding behavior pattern identified", "4 days ago"),
			alert(models.AlertTypeInfo, "Credit score declining gradually", "1 week ago"),
		},
	},
	{
		id: "USR-009", name: "Suresh Reddy", status: models.StatusLow, creditScore: 735,
		account: "ACC901234567", joined: "May 2018", updated: "3 hours ago",
		summary: summary(720000, 210000, 140000, 510000, 68000, 46000),
		risk:    18, behavioural: 15, eateries: 12, repayment: "Low",
		savings:       models.SavingsRate{Current: 32, Target: 50, EmergencyFund: 76},
		expenses:      [6]float64{44000, 45000, 46000, 45500, 46500, 46000},
		liquidity:     [6]float64{102000, 122400, 142800, 163200, 183600, 204000},
		creditHistory: [6]int{730, 731, 732, 733, 734, 735},
		onTime:        [6]float64{100, 100, 100, 100, 100, 100},
		alerts:        []models.Alert{},
	},
	{
		id: "USR-010", name: "Kavita Sharma", status: models.StatusHigh, creditScore: 635,
		account: "ACC012345678", joined: "Aug 2020", updated: "1 hour ago",
		summary: summary(350000, 410000, 320000, -60000, 44000, 56000),
		risk:    78, behavioural: 80, eateries: 55, repayment: "High",
		savings:       models.SavingsRate{Current: -3, Target: 50, EmergencyFund: 12},
		expenses:      [6]float64{52000, 54000, 55000, 56000, 57000, 56000},
		liquidity:     [6]float64{44000, 39600, 35200, 30800, 22000, 17600},
		creditHistory: [6]int{665, 658, 650, 645, 640, 635},
		onTime:        [6]float64{85, 75, 70, 65, 60, 55},
		alerts: []models.Alert{
			alert(models.AlertTypeCritical, "Multiple lending app transfers found", "1 day ago"),
			alert(models.AlertTypeWarning, "Debt stacking pattern detected", "3 days ago"),
			alert(models.AlertTypeWarning, "Account balance turned negative", "6 days ago"),
		},
	},
	{
		id: "USR-011", name: "Aditya Kumar", status: models.StatusLow, creditScore: 745,
		account: "ACC123450987", joined: "Dec 2019", updated: "2 hours ago",
		summary: summary(680000, 195000, 125000, 485000, 72000, 50000),
		risk:    14, behavioural: 10, eateries: 8, repayment: "Low",
		savings:       models.SavingsRate{Current: 34, Target: 50, EmergencyFund: 80},
		expenses:      [6]float64{48000, 49000, 50000, 49500, 50500, 50000},
		liquidity:     [6]float64{108000, 129600, 151200, 172800, 194400, 216000},
		creditHistory: [6]int{740, 741, 742, 743, 744, 745},
		onTime:        [6]float64{100, 100, 100, 100, 100, 100},
		alerts:        []models.Alert{},
	},
	{
		id: "USR-012", name: "Neha Gupta", status: models.StatusMedium, creditScore: 660,
		account: "ACC234561098", joined: "Oct 2019", updated: "1 hour ago",
		summary: summary(390000, 270000, 200000, 120000, 49000, 50000),
		risk:    55, behavioural: 52, eateries: 38, repayment: "Medium",
		savings:       models.SavingsRate{Current: 6, Target: 50, EmergencyFund: 32},
		expenses:      [6]float64{48000, 49000, 50000, 50500, 51000, 50000},
		liquidity:     [6]float64{49000, 44100, 39200, 34300, 24500, 19600},
		creditHistory: [6]int{685, 680, 675, 670, 665, 660},
		onTime:        [6]float64{95, 90, 85, 80, 75, 72},
		alerts: []models.Alert{
			alert(models.AlertTypeWarning, "Utility bills unpaid for 45 days", "2 days ago"),
			alert(models.AlertTypeWarning, "Late payment fee added to utility account", "5 days ago"),
			alert(models.AlertTypeInfo, "Credit score declining trend detected", "1 week ago"),
		},
	},
}

// HandAuthored returns fresh copies of the twelve hand-authored customers.
func HandAuthored() []models.CustomerRecord {
	out := make([]models.CustomerRecord, len(handRecords))
	for i, h := range handRecords {
		out[i] = h.build(10 + i)
	}
	return out
}
