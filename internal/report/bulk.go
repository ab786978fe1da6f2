package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/rewired-gh/riskwatch/internal/derive"
	"github.com/rewired-gh/riskwatch/internal/models"
)

// Bulk report defaults.
const (
	DefaultBulkType    = "Critical Customers"
	DefaultGeneratedBy = "System Auto-Generate"
)

// ErrNoCustomers is returned when a bulk report would list nobody.
var ErrNoCustomers = errors.New("no customers selected")

// BulkRequest selects the customers of a combined report. An empty
// CustomerIDs selects every Critical customer.
type BulkRequest struct {
	CustomerIDs []string `json:"customerIds"`
	ReportType  string   `json:"reportType"`
	GeneratedBy string   `json:"generatedBy"`
}

// BulkLine is one customer in a bulk report.
type BulkLine struct {
	ID             string
	Name           string
	Status         models.Status
	RiskPercentage int
	Classification string
	Recommendation string
}

// Bulk lists several customers with their classification and next action.
type Bulk struct {
	ID          string
	Type        string
	GeneratedBy string
	GeneratedAt time.Time
	Customers   []BulkLine
}

// BuildBulk assembles a bulk report over recs in the given order.
func BuildBulk(req BulkRequest, recs []*models.CustomerRecord, now time.Time) (*Bulk, error) {
	if len(recs) == 0 {
		return nil, ErrNoCustomers
	}
	b := &Bulk{
		ID:          uuid.NewString(),
		Type:        strings.TrimSpace(req.ReportType),
		GeneratedBy: strings.TrimSpace(req.GeneratedBy),
		GeneratedAt: now,
	}
	if b.Type == "" {
		b.Type = DefaultBulkType
	}
	if b.GeneratedBy == "" {
		b.GeneratedBy = DefaultGeneratedBy
	}
	for _, rec := range recs {
		pct := rec.RiskAssessment.RiskPercentage
		b.Customers = append(b.Customers, BulkLine{
			ID:             rec.ID,
			Name:           rec.Name,
			Status:         rec.Status(),
			RiskPercentage: pct,
			Classification: classify(rec),
			Recommendation: derive.ScoreToRecommendation(pct),
		})
	}
	return b, nil
}

// Render writes the bulk report as plain text.
func (b *Bulk) Render(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", strings.ToUpper(b.Type))
	fmt.Fprintf(&sb, "Report ID:       %s\n", b.ID)
	fmt.Fprintf(&sb, "Generated by:    %s\n", b.GeneratedBy)
	fmt.Fprintf(&sb, "Date:            %s\n", b.GeneratedAt.Format("January 02, 2006"))
	fmt.Fprintf(&sb, "Total Customers: %d\n", len(b.Customers))

	fmt.Fprintf(&sb, "\nCUSTOMER LIST\n=============\n")
	fmt.Fprintf(&sb, "This report contains %d customers identified as high-risk based on AI analysis.\n\n", len(b.Customers))
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCustomer ID\tName\tRisk\tClassification\tRecommended Action")
	for i, c := range b.Customers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s (%d%%)\t%s\t%s\n",
			i+1, c.ID, c.Name, c.Status, c.RiskPercentage, c.Classification, c.Recommendation)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	sb.WriteString("\nFor detailed individual reports, use the customer report endpoint.\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
