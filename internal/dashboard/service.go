// Package dashboard serves the three dashboard views over a record store.
// Aggregates are built once and cached until Invalidate; analyst actions
// (read, resolve, assign) are kept in an in-memory overlay and never written
// back to the store.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rewired-gh/riskwatch/internal/aggregate"
	"github.com/rewired-gh/riskwatch/internal/logger"
	"github.com/rewired-gh/riskwatch/internal/models"
	"github.com/rewired-gh/riskwatch/internal/query"
	"github.com/rewired-gh/riskwatch/internal/report"
	"github.com/rewired-gh/riskwatch/internal/staff"
	"github.com/rewired-gh/riskwatch/internal/storage"
)

// ErrUnknownRow is returned when an action targets an alert or customer the
// current view does not contain.
var ErrUnknownRow = errors.New("unknown row")

// ErrNoStaff is returned by staff operations on a service without a directory.
var ErrNoStaff = errors.New("no staff directory configured")

// Options configure a Service.
type Options struct {
	Aggregate aggregate.Options
	// LoadDelay is slept before building aggregates on a cold cache.
	LoadDelay time.Duration

	CustomersPageSize     int
	AlertsPageSize        int
	InterventionsPageSize int

	// Staff, when set, supplies the rotation roster unless Aggregate.Roster
	// is given, and restricts manual assignment to available employees.
	Staff *staff.Directory
	// ReportArchiveSize bounds the reports kept for download.
	ReportArchiveSize int
}

func (o *Options) applyDefaults() {
	if o.Aggregate.Roster == nil && o.Staff != nil {
		o.Aggregate.Roster = o.Staff.Roster()
	}
	if o.CustomersPageSize <= 0 {
		o.CustomersPageSize = query.DashboardPageSize
	}
	if o.AlertsPageSize <= 0 {
		o.AlertsPageSize = query.AlertsPageSize
	}
	if o.InterventionsPageSize <= 0 {
		o.InterventionsPageSize = query.InterventionsPageSize
	}
}

// DashboardQuery, AlertQuery and InterventionQuery select one page of a view.
// A zero Page means the first page; a zero PageSize uses the configured size.
type DashboardQuery struct {
	query.DashboardFilter
	Page     int
	PageSize int
}

type AlertQuery struct {
	query.AlertFilter
	Page     int
	PageSize int
}

type InterventionQuery struct {
	query.InterventionFilter
	Page     int
	PageSize int
}

// snapshot is one build of all three aggregates.
type snapshot struct {
	customers     []models.DashboardRow
	alerts        []models.AlertRow
	interventions []models.InterventionRow
	builtAt       time.Time
}

type overlay struct {
	read     map[string]bool
	resolved map[string]bool
	assigned map[string]string // customer ID -> analyst
}

func newOverlay() overlay {
	return overlay{
		read:     make(map[string]bool),
		resolved: make(map[string]bool),
		assigned: make(map[string]string),
	}
}

// Service is safe for concurrent use.
type Service struct {
	store   storage.Store
	opts    Options
	reports *report.Archive

	mu      sync.RWMutex
	snap    *snapshot
	overlay overlay
}

func NewService(store storage.Store, opts Options) *Service {
	opts.applyDefaults()
	return &Service{
		store:   store,
		opts:    opts,
		reports: report.NewArchive(opts.ReportArchiveSize),
		overlay: newOverlay(),
	}
}

// Load builds the aggregates unless a cached build exists.
func (s *Service) Load(ctx context.Context) error {
	_, err := s.load(ctx)
	return err
}

func (s *Service) load(ctx context.Context) (*snapshot, error) {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap != nil {
		return s.snap, nil
	}

	if s.opts.LoadDelay > 0 {
		t := time.NewTimer(s.opts.LoadDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	start := time.Now()
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	s.snap = &snapshot{
		customers:     aggregate.BuildDashboardRows(records, s.opts.Aggregate),
		alerts:        aggregate.BuildAlertFeed(records, s.opts.Aggregate),
		interventions: aggregate.BuildInterventionLog(records, s.opts.Aggregate),
		builtAt:       time.Now(),
	}
	logger.Info("Built dashboard views: %d customers, %d alerts, %d interventions in %v",
		len(s.snap.customers), len(s.snap.alerts), len(s.snap.interventions), time.Since(start))
	return s.snap, nil
}

// Invalidate drops the cached aggregates; the next read rebuilds them.
// The overlay survives so analyst actions are not lost across reloads.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
	logger.Debug("Dashboard cache invalidated")
}

// views returns copies of the cached rows with the overlay applied.
func (s *Service) views(ctx context.Context) (*snapshot, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := &snapshot{
		customers:     slices.Clone(snap.customers),
		alerts:        slices.Clone(snap.alerts),
		interventions: slices.Clone(snap.interventions),
		builtAt:       snap.builtAt,
	}
	o := s.overlay
	for i := range out.customers {
		if a, ok := o.assigned[out.customers[i].ID]; ok {
			out.customers[i].AssignedTo = a
		}
	}
	resort := false
	for i := range out.alerts {
		r := &out.alerts[i]
		if a, ok := o.assigned[r.CustomerID]; ok {
			r.AssignedTo = a
		}
		if o.read[r.ID] && !r.Read {
			r.Read = true
			resort = true
		}
		if o.resolved[r.ID] {
			r.Status = models.AlertResolved
		}
	}
	if resort {
		aggregate.SortAlertFeed(out.alerts)
	}
	for i := range out.interventions {
		if a, ok := o.assigned[out.interventions[i].CustomerID]; ok {
			out.interventions[i].Analyst = a
		}
	}
	return out, nil
}

func pageOf[T any](rows []T, page, size, fallback int) query.Page[T] {
	if page == 0 {
		page = 1
	}
	if size <= 0 {
		size = fallback
	}
	return query.Paginate(rows, page, size)
}

func (s *Service) Customers(ctx context.Context, q DashboardQuery) (query.Page[models.DashboardRow], error) {
	v, err := s.views(ctx)
	if err != nil {
		return query.Page[models.DashboardRow]{}, err
	}
	rows := query.FilterDashboard(v.customers, q.DashboardFilter)
	return pageOf(rows, q.Page, q.PageSize, s.opts.CustomersPageSize), nil
}

func (s *Service) Alerts(ctx context.Context, q AlertQuery) (query.Page[models.AlertRow], error) {
	v, err := s.views(ctx)
	if err != nil {
		return query.Page[models.AlertRow]{}, err
	}
	rows := query.FilterAlerts(v.alerts, q.AlertFilter)
	return pageOf(rows, q.Page, q.PageSize, s.opts.AlertsPageSize), nil
}

func (s *Service) Interventions(ctx context.Context, q InterventionQuery) (query.Page[models.InterventionRow], error) {
	v, err := s.views(ctx)
	if err != nil {
		return query.Page[models.InterventionRow]{}, err
	}
	rows := query.FilterInterventions(v.interventions, q.InterventionFilter)
	return pageOf(rows, q.Page, q.PageSize, s.opts.InterventionsPageSize), nil
}

// Customer returns the full record. A missing ID yields an error wrapping
// storage.ErrNotFound.
func (s *Service) Customer(ctx context.Context, id string) (*models.CustomerRecord, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) hasAlert(snap *snapshot, id string) bool {
	if id == "" {
		return false
	}
	return slices.ContainsFunc(snap.alerts, func(r models.AlertRow) bool { return r.ID == id })
}

// MarkAlertRead flags an alert as read.
func (s *Service) MarkAlertRead(ctx context.Context, alertID string) error {
	snap, err := s.load(ctx)
	if err != nil {
		return err
	}
	if !s.hasAlert(snap, alertID) {
		return fmt.Errorf("%w: alert %s", ErrUnknownRow, alertID)
	}
	s.mu.Lock()
	s.overlay.read[alertID] = true
	s.mu.Unlock()
	return nil
}

// ResolveAlert closes an alert. A resolved alert is also read.
func (s *Service) ResolveAlert(ctx context.Context, alertID string) error {
	snap, err := s.load(ctx)
	if err != nil {
		return err
	}
	if !s.hasAlert(snap, alertID) {
		return fmt.Errorf("%w: alert %s", ErrUnknownRow, alertID)
	}
	s.mu.Lock()
	s.overlay.read[alertID] = true
	s.overlay.resolved[alertID] = true
	s.mu.Unlock()
	logger.Info("Alert %s resolved", alertID)
	return nil
}

// AssignCustomer reassigns a customer's caseworker across all views.
func (s *Service) AssignCustomer(ctx context.Context, customerID, analyst string) error {
	if analyst == "" {
		return errors.New("analyst must not be empty")
	}
	if d := s.opts.Staff; d != nil {
		e, ok := d.ByName(analyst)
		if !ok {
			return fmt.Errorf("%w: %s", staff.ErrUnknownEmployee, analyst)
		}
		if !e.Available() {
			return fmt.Errorf("%w: %s", staff.ErrUnavailable, analyst)
		}
	}
	snap, err := s.load(ctx)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(snap.customers, func(r models.DashboardRow) bool { return r.ID == customerID }) {
		return fmt.Errorf("%w: customer %s", ErrUnknownRow, customerID)
	}
	s.mu.Lock()
	s.overlay.assigned[customerID] = analyst
	s.mu.Unlock()
	logger.Info("Customer %s assigned to %s", customerID, analyst)
	return nil
}

// Summary is the data behind the stat cards.
type Summary struct {
	Customers     aggregate.DashboardStats    `json:"customers"`
	Alerts        aggregate.AlertStats        `json:"alerts"`
	Interventions aggregate.InterventionStats `json:"interventions"`
	OpenCases     map[string]int              `json:"openCases"`
	Workload      []staff.Workload            `json:"workload,omitempty"`
	BuiltAt       time.Time                   `json:"builtAt"`
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	v, err := s.views(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{
		Customers:     aggregate.SummarizeDashboard(v.customers),
		Alerts:        aggregate.SummarizeAlerts(v.alerts),
		Interventions: aggregate.SummarizeInterventions(v.interventions),
		OpenCases:     aggregate.OpenCasesByAnalyst(v.customers),
		BuiltAt:       v.builtAt,
	}
	if s.opts.Staff != nil {
		sum.Workload = s.opts.Staff.Workload(sum.OpenCases)
	}
	return sum, nil
}

// UnreadAlerts returns unread, unresolved alerts in feed order, limited to the
// given severities when any are passed.
func (s *Service) UnreadAlerts(ctx context.Context, severities ...models.Status) ([]models.AlertRow, error) {
	v, err := s.views(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.AlertRow
	for _, r := range v.alerts {
		if r.Read || r.Status == models.AlertResolved {
			continue
		}
		if len(severities) > 0 && !slices.Contains(severities, r.Severity) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// CustomerReport builds, renders and archives the report for one customer.
func (s *Service) CustomerReport(ctx context.Context, customerID string, now time.Time) (report.Stored, error) {
	rec, err := s.store.Get(ctx, customerID)
	if err != nil {
		return report.Stored{}, err
	}
	return s.archive(report.Build(rec, now))
}

// BulkReport builds and archives a report over several customers. With no
// IDs it selects every Critical customer in store order. Repeated IDs are
// listed once; an unknown ID fails the whole request.
func (s *Service) BulkReport(ctx context.Context, req report.BulkRequest, now time.Time) (report.Stored, error) {
	var recs []*models.CustomerRecord
	if len(req.CustomerIDs) == 0 {
		all, err := s.store.All(ctx)
		if err != nil {
			return report.Stored{}, fmt.Errorf("failed to load customers: %w", err)
		}
		for i := range all {
			if all[i].Status() == models.StatusCritical {
				recs = append(recs, &all[i])
			}
		}
	} else {
		seen := make(map[string]bool, len(req.CustomerIDs))
		for _, id := range req.CustomerIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			rec, err := s.store.Get(ctx, id)
			if err != nil {
				return report.Stored{}, err
			}
			recs = append(recs, rec)
		}
	}
	b, err := report.BuildBulk(req, recs, now)
	if err != nil {
		return report.Stored{}, err
	}
	return s.archive(b)
}

func (s *Service) archive(doc report.Document) (report.Stored, error) {
	stored, err := report.Snapshot(doc)
	if err != nil {
		return report.Stored{}, fmt.Errorf("failed to render report: %w", err)
	}
	s.reports.Put(stored)
	logger.Info("Report %s generated (%s, %d customers)", stored.ID, stored.Kind, len(stored.CustomerIDs))
	return stored, nil
}

// StoredReport returns an archived report by ID.
func (s *Service) StoredReport(id string) (report.Stored, error) {
	return s.reports.Get(id)
}

// Reports lists archived reports, newest first.
func (s *Service) Reports() []report.Entry {
	return s.reports.List()
}

// Workload reports open cases per employee against capacity. It needs a
// staff directory.
func (s *Service) Workload(ctx context.Context) ([]staff.Workload, error) {
	if s.opts.Staff == nil {
		return nil, ErrNoStaff
	}
	v, err := s.views(ctx)
	if err != nil {
		return nil, err
	}
	return s.opts.Staff.Workload(aggregate.OpenCasesByAnalyst(v.customers)), nil
}

func (s *Service) Teams() ([]staff.Team, error) {
	if s.opts.Staff == nil {
		return nil, ErrNoStaff
	}
	return s.opts.Staff.Teams(), nil
}

// MoveEmployee changes an employee's team.
func (s *Service) MoveEmployee(employeeID, teamID string) (staff.Employee, error) {
	if s.opts.Staff == nil {
		return staff.Employee{}, ErrNoStaff
	}
	e, err := s.opts.Staff.MoveEmployee(employeeID, teamID)
	if err != nil {
		return staff.Employee{}, err
	}
	logger.Info("Employee %s moved to %s", employeeID, teamID)
	return e, nil
}
