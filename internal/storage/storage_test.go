package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rewired-gh/riskwatch/internal/derive"
	"github.com/rewired-gh/riskwatch/internal/fixtures"
	"github.com/rewired-gh/riskwatch/internal/models"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testCustomer(id string, status models.Status, messages ...string) models.CustomerRecord {
	rec := models.CustomerRecord{
		ID:   id,
		Name: "Test " + id,
		Profile: models.Profile{
			Status:      status,
			CreditScore: 700,
		},
		RiskAssessment: models.RiskAssessment{RiskScore: string(status), RiskPercentage: 50},
		Alerts:         []models.Alert{},
	}
	for _, m := range messages {
		rec.Alerts = append(rec.Alerts, models.Alert{Type: models.AlertTypeWarning, Message: m, Date: "1 day ago"})
	}
	derive.AssignAlertIDs(&rec)
	return rec
}

func stores(t *testing.T, records ...models.CustomerRecord) map[string]Store {
	t.Helper()
	sq := newTestSQLite(t)
	if err := sq.Seed(context.Background(), records); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return map[string]Store{
		"memory": NewMemory(records...),
		"sqlite": sq,
	}
}

func TestStore_AllPreservesOrder(t *testing.T) {
	recs := []models.CustomerRecord{
		testCustomer("USR-010", models.StatusHigh, "Salary delayed"),
		testCustomer("USR-002", models.StatusLow),
		testCustomer("USR-005", models.StatusCritical, "EMI missed", "Loan app transfer"),
	}
	for name, s := range stores(t, recs...) {
		t.Run(name, func(t *testing.T) {
			got, err := s.All(context.Background())
			if err != nil {
				t.Fatalf("All: %v", err)
			}
			if len(got) != 3 {
				t.Fatalf("got %d records, want 3", len(got))
			}
			for i, want := range []string{"USR-010", "USR-002", "USR-005"} {
				if got[i].ID != want {
					t.Errorf("record %d: got %s, want %s", i, got[i].ID, want)
				}
			}
			if len(got[2].Alerts) != 2 || got[2].Alerts[1].Message != "Loan app transfer" {
				t.Errorf("alerts not preserved: %+v", got[2].Alerts)
			}
			if got[1].Alerts == nil {
				t.Error("expected empty, non-nil alerts for customer without alerts")
			}
		})
	}
}

func TestStore_GetNotFound(t *testing.T) {
	for name, s := range stores(t, testCustomer("USR-001", models.StatusLow)) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), "USR-999")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("got %v, want ErrNotFound", err)
			}
		})
	}
}

func TestSQLite_RoundTripFixtures(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()
	recs := fixtures.Build(fixtures.NewGenerator(3), 20)
	if err := s.Seed(ctx, recs); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != len(recs) {
		t.Errorf("Count = %d, want %d", n, len(recs))
	}

	got, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if !reflect.DeepEqual(got, recs) {
		t.Error("records changed after a round trip through SQLite")
	}

	one, err := s.Get(ctx, "USR-001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(*one, recs[0]) {
		t.Errorf("Get(USR-001) = %+v, want %+v", *one, recs[0])
	}
}

func TestSQLite_SeedReplaces(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()
	if err := s.Seed(ctx, []models.CustomerRecord{testCustomer("USR-001", models.StatusHigh, "a")}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := s.Seed(ctx, []models.CustomerRecord{testCustomer("USR-002", models.StatusMedium, "b")}); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	got, _ := s.All(ctx)
	if len(got) != 1 || got[0].ID != "USR-002" {
		t.Errorf("got %+v, want only USR-002", got)
	}
}

func TestSQLite_PutKeepsPosition(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()
	recs := []models.CustomerRecord{
		testCustomer("USR-001", models.StatusHigh, "a"),
		testCustomer("USR-002", models.StatusLow),
	}
	if err := s.Seed(ctx, recs); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	updated := testCustomer("USR-001", models.StatusCritical, "a", "b")
	if err := s.Put(ctx, updated); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, testCustomer("USR-003", models.StatusMedium)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, _ := s.All(ctx)
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	if got[0].ID != "USR-001" || got[0].Status() != models.StatusCritical || len(got[0].Alerts) != 2 {
		t.Errorf("USR-001 not replaced in place: %+v", got[0])
	}
	if got[2].ID != "USR-003" {
		t.Errorf("new record not appended: %s", got[2].ID)
	}
}

func TestSQLite_RejectsInvalid(t *testing.T) {
	s := newTestSQLite(t)
	bad := testCustomer("USR-001", models.Status("Unknown"))
	if err := s.Put(context.Background(), bad); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestStore_AssignsMissingAlertIDs(t *testing.T) {
	a := testCustomer("USR-001", models.StatusHigh, "EMI missed", "Salary delayed")
	b := testCustomer("CUS-001", models.StatusHigh, "EMI missed")
	for _, rec := range []*models.CustomerRecord{&a, &b} {
		for i := range rec.Alerts {
			rec.Alerts[i].ID = ""
		}
	}
	for name, s := range stores(t, a, b) {
		t.Run(name, func(t *testing.T) {
			got, err := s.All(context.Background())
			if err != nil {
				t.Fatalf("All: %v", err)
			}
			want := [][]string{{"ALT-001-01", "ALT-001-02"}, {"ALT-CUS-001-01"}}
			for i, ids := range want {
				for j, id := range ids {
					if got[i].Alerts[j].ID != id {
						t.Errorf("%s alert %d ID = %q, want %q", got[i].ID, j, got[i].Alerts[j].ID, id)
					}
				}
			}
		})
	}
	if a.Alerts[0].ID != "" {
		t.Error("caller's alerts were modified")
	}
}

func TestMemory_PutReplaces(t *testing.T) {
	m := NewMemory(testCustomer("USR-001", models.StatusLow), testCustomer("USR-002", models.StatusLow))
	if err := m.Put(context.Background(), testCustomer("USR-001", models.StatusHigh, "x")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if m.Count() != 2 {
		t.Errorf("Count = %d, want 2", m.Count())
	}
	got, _ := m.Get(context.Background(), "USR-001")
	if got.Status() != models.StatusHigh {
		t.Errorf("status = %s, want High", got.Status())
	}
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMemory().All(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
