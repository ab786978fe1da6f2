package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/rewired-gh/riskwatch/internal/models"
)

// SQLite persists customer records. Scalar fields used for listing live in
// columns; the nested record parts are stored as a JSON payload, and alerts
// get their own table keyed by customer and position. Alerts written without
// an ID get one from derive.AlertID.
type SQLite struct {
	db *sql.DB
}

// record is the JSON payload column: everything except the alerts.
type record struct {
	Profile            models.Profile            `json:"profile"`
	FinancialSummary   models.FinancialSummary   `json:"financialSummary"`
	RiskAssessment     models.RiskAssessment     `json:"riskAssessment"`
	SavingsRate        models.SavingsRate        `json:"savingsRate"`
	SpendingCategories []models.SpendingCategory `json:"spendingCategories"`
	CashFlow           []models.CashFlowPoint    `json:"cashFlowData"`
	Liquidity          []models.LiquidityPoint   `json:"liquidityData"`
	CreditScoreHistory []models.CreditScorePoint `json:"creditScoreHistory"`
	PaymentHistory     []models.PaymentPoint     `json:"paymentHistory"`
	RecentTransactions []models.Transaction      `json:"recentTransactions"`
}

// New opens or creates the SQLite database at dbPath.
// An empty dbPath defaults to $TMPDIR/riskwatch/data.db.
func New(dbPath string) (*SQLite, error) {
	if dbPath == "" {
		dbPath = filepath.Join(os.TempDir(), "riskwatch", "data.db")
	}
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer; also keeps :memory: on one connection
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id              TEXT PRIMARY KEY,
			seq             INTEGER NOT NULL UNIQUE,
			name            TEXT NOT NULL,
			status          TEXT NOT NULL,
			risk_percentage INTEGER NOT NULL,
			payload         TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS alerts (
			customer_id TEXT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
			position    INTEGER NOT NULL,
			id          TEXT NOT NULL,
			type        TEXT NOT NULL,
			message     TEXT NOT NULL,
			date        TEXT NOT NULL,
			PRIMARY KEY (customer_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_id ON alerts(id)`,
		`CREATE INDEX IF NOT EXISTS idx_customers_status ON customers(status)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Seed replaces every stored customer with records, preserving their order.
func (s *SQLite) Seed(ctx context.Context, records []models.CustomerRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM customers`); err != nil {
		return fmt.Errorf("failed to clear customers: %w", err)
	}
	for i := range records {
		rec := withAlertIDs(records[i])
		if err := insert(ctx, tx, &rec, int64(i)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Put inserts a new record at the end of the order, or replaces an existing
// one keeping its position.
func (s *SQLite) Put(ctx context.Context, rec models.CustomerRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var seq int64
	err = tx.QueryRowContext(ctx, `SELECT seq FROM customers WHERE id = ?`, rec.ID).Scan(&seq)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq)+1, 0) FROM customers`).Scan(&seq); err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to look up customer: %w", err)
	default:
		if _, err := tx.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, rec.ID); err != nil {
			return fmt.Errorf("failed to replace customer: %w", err)
		}
	}
	rec = withAlertIDs(rec)
	if err := insert(ctx, tx, &rec, seq); err != nil {
		return err
	}
	return tx.Commit()
}

func insert(ctx context.Context, tx *sql.Tx, rec *models.CustomerRecord, seq int64) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid customer: %w", err)
	}
	payload, err := json.Marshal(record{
		Profile:            rec.Profile,
		FinancialSummary:   rec.FinancialSummary,
		RiskAssessment:     rec.RiskAssessment,
		SavingsRate:        rec.SavingsRate,
		SpendingCategories: rec.SpendingCategories,
		CashFlow:           rec.CashFlow,
		Liquidity:          rec.Liquidity,
		CreditScoreHistory: rec.CreditScoreHistory,
		PaymentHistory:     rec.PaymentHistory,
		RecentTransactions: rec.RecentTransactions,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal customer %s: %w", rec.ID, err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO customers (id, seq, name, status, risk_percentage, payload)
		VALUES (?,?,?,?,?,?)`,
		rec.ID, seq, rec.Name, string(rec.Profile.Status), rec.RiskAssessment.RiskPercentage, string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to insert customer %s: %w", rec.ID, err)
	}
	for i, a := range rec.Alerts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO alerts (id, customer_id, position, type, message, date)
			VALUES (?,?,?,?,?,?)`,
			a.ID, rec.ID, i, a.Type, a.Message, a.Date,
		)
		if err != nil {
			return fmt.Errorf("failed to insert alert %s: %w", a.ID, err)
		}
	}
	return nil
}

func (s *SQLite) All(ctx context.Context) ([]models.CustomerRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+customerCols+` FROM customers ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	var out []models.CustomerRecord
	for rows.Next() {
		rec, err := scanCustomer(rows.Scan)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	alerts, err := s.alertsByCustomer(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Alerts = alerts[out[i].ID]
		if out[i].Alerts == nil {
			out[i].Alerts = []models.Alert{}
		}
	}
	if out == nil {
		out = []models.CustomerRecord{}
	}
	return out, nil
}

func (s *SQLite) Get(ctx context.Context, id string) (*models.CustomerRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+customerCols+` FROM customers WHERE id = ?`, id)
	rec, err := scanCustomer(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	alerts, err := s.alertsByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Alerts = alerts[id]
	if rec.Alerts == nil {
		rec.Alerts = []models.Alert{}
	}
	return rec, nil
}

// Count returns the number of stored customers.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return n, nil
}

// alertsByCustomer loads alerts grouped by customer, in position order.
// An empty customerID loads all of them.
func (s *SQLite) alertsByCustomer(ctx context.Context, customerID string) (map[string][]models.Alert, error) {
	q := `SELECT id, customer_id, type, message, date FROM alerts`
	var args []any
	if customerID != "" {
		q += ` WHERE customer_id = ?`
		args = append(args, customerID)
	}
	q += ` ORDER BY customer_id, position`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.Alert)
	for rows.Next() {
		var a models.Alert
		var cid string
		if err := rows.Scan(&a.ID, &cid, &a.Type, &a.Message, &a.Date); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		out[cid] = append(out[cid], a)
	}
	return out, rows.Err()
}

const customerCols = `id, name, status, risk_percentage, payload`

func scanCustomer(scan func(...any) error) (*models.CustomerRecord, error) {
	var (
		rec     models.CustomerRecord
		status  string
		pct     int
		payload string
	)
	if err := scan(&rec.ID, &rec.Name, &status, &pct, &payload); err != nil {
		return nil, err
	}
	var p record
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customer %s: %w", rec.ID, err)
	}
	rec.Profile = p.Profile
	rec.Profile.Status = models.Status(status)
	rec.FinancialSummary = p.FinancialSummary
	rec.RiskAssessment = p.RiskAssessment
	rec.RiskAssessment.RiskPercentage = pct
	rec.SavingsRate = p.SavingsRate
	rec.SpendingCategories = p.SpendingCategories
	rec.CashFlow = p.CashFlow
	rec.Liquidity = p.Liquidity
	rec.CreditScoreHistory = p.CreditScoreHistory
	rec.PaymentHistory = p.PaymentHistory
	rec.RecentTransactions = p.RecentTransactions
	return &rec, nil
}
