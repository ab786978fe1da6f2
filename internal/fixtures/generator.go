package fixtures

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rewired-gh/riskwatch/internal/derive"
	"github.com/rewired-gh/riskwatch/internal/models"
)

// FirstSyntheticIndex is the numeric suffix of the first generated customer.
const FirstSyntheticIndex = 13

// DefaultSyntheticCount is the size of the generated population.
const DefaultSyntheticCount = 88

var syntheticNames = []string{
	"Rajesh Venkat", "Lakshmi Iyer", "Sanjay Desai", "Pooja Chatterjee", "Amit Malhotra",
	"Deepa Nambiar", "Ravi Kulkarni", "Anjali Bose", "Manoj Saxena", "Shreya Kapoor",
	"Venkat Raman", "Nisha Agarwal", "Prakash Shetty", "Ramya Nair", "Harish Rao", "Swati Jain",
	"Krishna Murthy", "Priyanka Das", "Arun Pillai", "Megha Reddy", "Varun Chopra", "Kavya Menon",
	"Raj Kumar Singh", "Sneha Mishra", "Nikhil Varma", "Tanvi Bhatt", "Gopal Krishnan",
	"Preeti Shah", "Sunil Pandey", "Anuradha", "Vijay Bhat", "Ritu Arora", "Ashok Yadav",
	"Madhuri Naik", "Sanjiv Negi", "Pallavi Dutta", "Mohan Lal", "Shilpa Bansal", "Ajay Thakur",
	"Vidya Hegde", "Hemant Joshi", "Smitha Rao", "Ashish Patel", "Radhika Srinivas",
	"Pankaj Tiwari", "Archana Kaur", "Dinesh Pillai", "Neelam Choudhary", "Vivek Mehta",
	"Sarika Dubey", "Gaurav Singh", "Madhavi Nair", "Ramesh Gupta", "Aparna Menon",
	"Manish Verma", "Rekha Pillai", "Vinod Kumar", "Shalini Reddy", "Naveen Sharma", "Divya Nair",
	"Mukesh Agarwal", "Preethi Shenoy", "Sudhir Patil", "Bharti Jha", "Girish Murthy",
	"Sudha Rao", "Bala Krishna", "Nandini Patel", "Anil Deshmukh", "Geeta Iyer", "Ramesh Babu",
	"Shobha Nair", "Kishore Reddy", "Usha Menon", "Ranjan Kumar", "Lata Sharma", "Balaji Raman",
	"Padma Lakshmi", "Santosh Pillai", "Vani Reddy", "Murali Krishnan", "Savita Nair",
	"Praveen Shetty", "Jaya Lakshmi", "Naresh Rao", "Sumitra Iyer", "Venkatesan Pillai",
	"Pushpa Nair",
}

var (
	joinDates   = []string{"Jan 2018", "Feb 2019", "Mar 2020", "Apr 2021"}
	updateTimes = []string{"30 minutes ago", "1 hour ago", "2 hours ago", "3 hours ago"}
)

// RandSource is the subset of *rand.Rand the generator draws from.
type RandSource interface {
	Float64() float64
	IntN(n int) int
}

// Generator produces synthetic customers. It is not safe for concurrent use.
type Generator struct {
	rnd RandSource
}

// NewGenerator returns a generator seeded with seed. A zero seed picks a
// time-based one, so every run produces a different population.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return NewGeneratorFrom(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// NewGeneratorFrom wraps an existing random source.
func NewGeneratorFrom(src RandSource) *Generator {
	return &Generator{rnd: src}
}

type statusProfile struct {
	riskBase, riskSpan     float64
	incomeBase, incomeSpan float64
	scoreBase, scoreSpan   float64
	expenseBase, expSpan   float64
}

var statusProfiles = map[models.Status]statusProfile{
	models.StatusCritical: {80, 15, 35000, 20000, 630, 40, 1.15, 0.15},
	models.StatusHigh:     {65, 15, 40000, 25000, 660, 40, 1.05, 0.1},
	models.StatusMedium:   {45, 20, 45000, 30000, 640, 60, 0.95, 0.1},
	models.StatusLow:      {10, 20, 60000, 40000, 720, 50, 0.6, 0.15},
}

// pickStatus distributes 20% Critical, 25% High, 30% Medium and 25% Low.
func (g *Generator) pickStatus() models.Status {
	r := g.rnd.Float64()
	switch {
	case r < 0.2:
		return models.StatusCritical
	case r < 0.45:
		return models.StatusHigh
	case r < 0.75:
		return models.StatusMedium
	}
	return models.StatusLow
}

// SyntheticName returns the display name of the i-th (0-based) generated customer.
func SyntheticName(i int) string {
	name := syntheticNames[i%len(syntheticNames)]
	if i >= len(syntheticNames) {
		name = fmt.Sprintf("%s %d", name, i/len(syntheticNames)+1)
	}
	return name
}

// Customer builds one synthetic record.
func (g *Generator) Customer(id, name string, status models.Status) models.CustomerRecord {
	p := statusProfiles[status]
	pct := int(round(p.riskBase + g.rnd.Float64()*p.riskSpan))
	income := round(p.incomeBase + g.rnd.Float64()*p.incomeSpan)
	score := int(round(p.scoreBase + g.rnd.Float64()*p.scoreSpan))
	expenses := round(income * (p.expenseBase + g.rnd.Float64()*p.expSpan))
	assets := round(income * (6 + g.rnd.Float64()*6))
	debt := round(income * (2 + g.rnd.Float64()*4))

	rec := models.CustomerRecord{
		ID:   id,
		Name: name,
		Profile: models.Profile{
			CreditScore:       score,
			CreditScoreStatus: derive.CreditScoreBucket(score),
			Status:            status,
			AccountNumber:     g.accountNumber(),
			Email:             emailFor(name),
			Phone:             fmt.Sprintf("+91 %d %d", 98000+g.rnd.IntN(10000), 43000+g.rnd.IntN(1000)),
			DateJoined:        joinDates[g.rnd.IntN(len(joinDates))],
			LastUpdated:       updateTimes[g.rnd.IntN(len(updateTimes))],
		},
		FinancialSummary: models.FinancialSummary{
			TotalAssets:      assets,
			TotalLiabilities: round(debt * 1.2),
			TotalDebt:        debt,
			TotalTaxCredits:  round(income * 1.2),
			NetWorth:         round(assets - debt*1.2),
			MonthlyIncome:    income,
			MonthlyExpenses:  expenses,
		},
		RiskAssessment:     riskAssessment(status, pct),
		SavingsRate:        g.savingsRate(status),
		SpendingCategories: spendingCategories(status, g.rnd.Float64),
		CashFlow:           cashFlowSeries(income, expenses),
		Liquidity:          liquiditySeries(status, income),
		CreditScoreHistory: creditHistory(score),
		PaymentHistory:     paymentSeries(status, pct),
		Alerts:             statusAlerts(status),
		RecentTransactions: transactions(status, income),
	}
	derive.AssignAlertIDs(&rec)
	return rec
}

func (g *Generator) accountNumber() string {
	return fmt.Sprintf("ACC%06d%06d", g.rnd.IntN(1_000_000), g.rnd.IntN(1_000_000))
}

func (g *Generator) savingsRate(status models.Status) models.SavingsRate {
	var current, emergency float64
	switch status {
	case models.StatusLow:
		current = 30 + g.rnd.Float64()*10
		emergency = 70 + g.rnd.Float64()*20
	case models.StatusMedium:
		current = 5 + g.rnd.Float64()*10
		emergency = 30 + g.rnd.Float64()*20
	default:
		current = -5 + g.rnd.Float64()*10
		emergency = 10 + g.rnd.Float64()*15
	}
	return models.SavingsRate{Current: int(round(current)), Target: 50, EmergencyFund: int(round(emergency))}
}

// Generate builds count customers with IDs starting at USR-<startIndex>.
func (g *Generator) Generate(startIndex, count int) []models.CustomerRecord {
	out := make([]models.CustomerRecord, 0, count)
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("USR-%03d", startIndex+i)
		out = append(out, g.Customer(id, SyntheticName(i), g.pickStatus()))
	}
	return out
}

// Build returns the full initial population: the hand-authored customers
// followed by syntheticCount generated ones.
func Build(gen *Generator, syntheticCount int) []models.CustomerRecord {
	out := HandAuthored()
	if syntheticCount <= 0 || gen == nil {
		return out
	}
	return append(out, gen.Generate(FirstSyntheticIndex, syntheticCount)...)
}
