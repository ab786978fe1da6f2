// Package staff keeps the analyst directory: employees, their teams and how
// many open cases each can carry.
package staff

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rewired-gh/riskwatch/internal/derive"
)

var (
	ErrUnknownEmployee = errors.New("unknown employee")
	ErrUnknownTeam     = errors.New("unknown team")
	ErrUnavailable     = errors.New("employee is inactive or on leave")
)

// Employee statuses.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Permission levels.
const (
	PermissionAdmin         = "Admin"
	PermissionSeniorAnalyst = "Senior Analyst"
	PermissionAnalyst       = "Analyst"
	PermissionViewOnly      = "View Only"
)

// Employee is one analyst. Rotation marks the employees that receive
// customers by automatic round-robin assignment.
type Employee struct {
	ID         string `mapstructure:"id" json:"id"`
	Name       string `mapstructure:"name" json:"name"`
	Role       string `mapstructure:"role" json:"role"`
	Permission string `mapstructure:"permission" json:"permission"`
	Status     string `mapstructure:"status" json:"status"`
	TeamID     string `mapstructure:"team_id" json:"teamId"`
	MaxCases   int    `mapstructure:"max_cases" json:"maxCases"`
	OnLeave    bool   `mapstructure:"on_leave" json:"onLeave"`
	Rotation   bool   `mapstructure:"rotation" json:"rotation"`
}

// Available reports whether the employee can take new cases.
func (e Employee) Available() bool {
	return e.Status != StatusInactive && !e.OnLeave
}

type Team struct {
	ID     string `mapstructure:"id" json:"id"`
	Name   string `mapstructure:"name" json:"name"`
	LeadID string `mapstructure:"lead_id" json:"leadId"`
	Note   string `mapstructure:"note" json:"note"`
}

// DefaultEmployees is the seeded analyst list.
func DefaultEmployees() []Employee {
	return []Employee{
		{ID: "EMP-001", Name: "Rahul Sharma", Role: "Senior Analyst", Permission: PermissionAdmin, Status: StatusActive, TeamID: "TEAM-001", MaxCases: 20, Rotation: true},
		{ID: "EMP-002", Name: "Sneha Iyer", Role: "Analyst", Permission: PermissionAnalyst, Status: StatusActive, TeamID: "TEAM-001", MaxCases: 15, Rotation: true},
		{ID: "EMP-003", Name: "Amit Verma", Role: "Analyst", Permission: PermissionAnalyst, Status: StatusActive, TeamID: "TEAM-002", MaxCases: 15, Rotation: true},
		{ID: "EMP-004", Name: "Divya Rao", Role: "Junior Analyst", Permission: PermissionViewOnly, Status: StatusActive, TeamID: "TEAM-002", MaxCases: 10},
		{ID: "EMP-005", Name: "Karan Bose", Role: "Senior Analyst", Permission: PermissionSeniorAnalyst, Status: StatusActive, TeamID: "TEAM-003", MaxCases: 20},
		{ID: "EMP-006", Name: "Meena Pillai", Role: "Analyst", Permission: PermissionAnalyst, Status: StatusInactive, TeamID: "TEAM-003", MaxCases: 15, OnLeave: true},
	}
}

// DefaultTeams is the seeded team list.
func DefaultTeams() []Team {
	return []Team{
		{ID: "TEAM-001", Name: "Alpha Squad", LeadID: "EMP-001", Note: "Handles Critical and High risk cases in North zone."},
		{ID: "TEAM-002", Name: "Beta Unit", LeadID: "EMP-003", Note: "Focuses on Medium risk and auto-debit failure patterns."},
		{ID: "TEAM-003", Name: "Gamma Force", LeadID: "EMP-005", Note: "Specialises in debt stacking and behavioural anomaly cases."},
	}
}

// Validate checks that IDs and names are unique and set, team and lead
// references resolve, and at least one available employee is in rotation.
func Validate(employees []Employee, teams []Team) error {
	teamIDs := make(map[string]bool, len(teams))
	for _, t := range teams {
		if t.ID == "" || strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("team %q must have an id and a name", t.ID)
		}
		if teamIDs[t.ID] {
			return fmt.Errorf("duplicate team id %s", t.ID)
		}
		teamIDs[t.ID] = true
	}

	empIDs := make(map[string]bool, len(employees))
	names := make(map[string]bool, len(employees))
	rotation := 0
	for _, e := range employees {
		if e.ID == "" || strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("employee %q must have an id and a name", e.ID)
		}
		if empIDs[e.ID] {
			return fmt.Errorf("duplicate employee id %s", e.ID)
		}
		if names[e.Name] {
			return fmt.Errorf("duplicate employee name %s", e.Name)
		}
		empIDs[e.ID], names[e.Name] = true, true
		if e.Status != StatusActive && e.Status != StatusInactive {
			return fmt.Errorf("employee %s status must be %s or %s", e.ID, StatusActive, StatusInactive)
		}
		if e.MaxCases < 0 {
			return fmt.Errorf("employee %s max_cases must not be negative", e.ID)
		}
		if e.TeamID != "" && !teamIDs[e.TeamID] {
			return fmt.Errorf("employee %s: %w %s", e.ID, ErrUnknownTeam, e.TeamID)
		}
		if e.Rotation && e.Available() {
			rotation++
		}
	}
	for _, t := range teams {
		if t.LeadID != "" && !empIDs[t.LeadID] {
			return fmt.Errorf("team %s lead: %w %s", t.ID, ErrUnknownEmployee, t.LeadID)
		}
	}
	if rotation == 0 {
		return errors.New("at least one available employee must be in rotation")
	}
	return nil
}

// Directory is safe for concurrent use.
type Directory struct {
	mu        sync.RWMutex
	employees []Employee
	teams     []Team
}

func New(employees []Employee, teams []Team) (*Directory, error) {
	if err := Validate(employees, teams); err != nil {
		return nil, err
	}
	return &Directory{employees: slices.Clone(employees), teams: slices.Clone(teams)}, nil
}

// Default returns a directory over DefaultEmployees and DefaultTeams.
func Default() *Directory {
	return &Directory{employees: DefaultEmployees(), teams: DefaultTeams()}
}

func (d *Directory) Employees() []Employee {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.employees)
}

func (d *Directory) Teams() []Team {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.teams)
}

// ByName finds an employee by display name.
func (d *Directory) ByName(name string) (Employee, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i := slices.IndexFunc(d.employees, func(e Employee) bool { return e.Name == name })
	if i < 0 {
		return Employee{}, false
	}
	return d.employees[i], true
}

// Roster lists the available rotation employees by name, alphabetically.
func (d *Directory) Roster() derive.Roster {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var r derive.Roster
	for _, e := range d.employees {
		if e.Rotation && e.Available() {
			r = append(r, e.Name)
		}
	}
	slices.Sort(r)
	return r
}

// MoveEmployee puts an employee on another team.
func (d *Directory) MoveEmployee(employeeID, teamID string) (Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := slices.IndexFunc(d.employees, func(e Employee) bool { return e.ID == employeeID })
	if i < 0 {
		return Employee{}, fmt.Errorf("%w: %s", ErrUnknownEmployee, employeeID)
	}
	if !slices.ContainsFunc(d.teams, func(t Team) bool { return t.ID == teamID }) {
		return Employee{}, fmt.Errorf("%w: %s", ErrUnknownTeam, teamID)
	}
	d.employees[i].TeamID = teamID
	return d.employees[i], nil
}

// Workload is an employee's open case count against capacity.
type Workload struct {
	Employee
	TeamName     string `json:"teamName"`
	OpenCases    int    `json:"openCases"`
	Utilisation  int    `json:"utilisation"` // percent of MaxCases
	OverCapacity bool   `json:"overCapacity"`
}

// Workload joins open case counts by analyst name onto the directory, in
// directory order. Names without an employee are ignored.
func (d *Directory) Workload(openCases map[string]int) []Workload {
	d.mu.RLock()
	defer d.mu.RUnlock()
	teams := make(map[string]string, len(d.teams))
	for _, t := range d.teams {
		teams[t.ID] = t.Name
	}
	out := make([]Workload, 0, len(d.employees))
	for _, e := range d.employees {
		w := Workload{Employee: e, TeamName: teams[e.TeamID], OpenCases: openCases[e.Name]}
		if e.MaxCases > 0 {
			w.Utilisation = w.OpenCases * 100 / e.MaxCases
		}
		w.OverCapacity = w.OpenCases > e.MaxCases
		out = append(out, w)
	}
	return out
}
