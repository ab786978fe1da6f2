package staff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewired-gh/riskwatch/internal/derive"
)

func TestDefaultsValidate(t *testing.T) {
	require.NoError(t, Validate(DefaultEmployees(), DefaultTeams()))
	d, err := New(DefaultEmployees(), DefaultTeams())
	require.NoError(t, err)
	assert.Len(t, d.Employees(), 6)
	assert.Len(t, d.Teams(), 3)
}

func TestDefaultRosterMatchesRoundRobin(t *testing.T) {
	assert.Equal(t, derive.DefaultRoster, Default().Roster())
}

func TestRosterSkipsUnavailable(t *testing.T) {
	emps := DefaultEmployees()
	emps[1].OnLeave = true // Sneha Iyer
	emps[5].Rotation = true
	d, err := New(emps, DefaultTeams())
	require.NoError(t, err)
	assert.Equal(t, derive.Roster{"Amit Verma", "Rahul Sharma"}, d.Roster())
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e []Employee, tm []Team) ([]Employee, []Team)
	}{
		{"duplicate employee id", func(e []Employee, tm []Team) ([]Employee, []Team) {
			e[1].ID = e[0].ID
			return e, tm
		}},
		{"duplicate employee name", func(e []Employee, tm []Team) ([]Employee, []Team) {
			e[1].Name = e[0].Name
			return e, tm
		}},
		{"blank name", func(e []Employee, tm []Team) ([]Employee, []Team) {
			e[0].Name = " "
			return e, tm
		}},
		{"bad status", func(e []Employee, tm []Team) ([]Employee, []Team) {
			e[0].Status = "Retired"
			return e, tm
		}},
		{"negative capacity", func(e []Employee, tm []Team) ([]Employee, []Team) {
			e[0].MaxCases = -1
			return e, tm
		}},
		{"unknown team", func(e []Employee, tm []Team) ([]Employee, []Team) {
			e[0].TeamID = "TEAM-404"
			return e, tm
		}},
		{"unknown lead", func(e []Employee, tm []Team) ([]Employee, []Team) {
			tm[0].LeadID = "EMP-404"
			return e, tm
		}},
		{"duplicate team", func(e []Employee, tm []Team) ([]Employee, []Team) {
			tm[1].ID = tm[0].ID
			return e, tm
		}},
		{"nobody in rotation", func(e []Employee, tm []Team) ([]Employee, []Team) {
			for i := range e {
				e[i].Rotation = false
			}
			return e, tm
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, tm := tt.mutate(DefaultEmployees(), DefaultTeams())
			_, err := New(e, tm)
			assert.Error(t, err)
		})
	}
}

func TestMoveEmployee(t *testing.T) {
	d := Default()

	e, err := d.MoveEmployee("EMP-004", "TEAM-001")
	require.NoError(t, err)
	assert.Equal(t, "TEAM-001", e.TeamID)
	got, ok := d.ByName("Divya Rao")
	require.True(t, ok)
	assert.Equal(t, "TEAM-001", got.TeamID)

	_, err = d.MoveEmployee("EMP-404", "TEAM-001")
	assert.ErrorIs(t, err, ErrUnknownEmployee)
	_, err = d.MoveEmployee("EMP-004", "TEAM-404")
	assert.ErrorIs(t, err, ErrUnknownTeam)
}

func TestDirectoryCopies(t *testing.T) {
	d := Default()
	emps := d.Employees()
	emps[0].Name = "Changed"
	_, ok := d.ByName("Rahul Sharma")
	assert.True(t, ok)
}

func TestWorkload(t *testing.T) {
	d := Default()
	w := d.Workload(map[string]int{"Rahul Sharma": 4, "Divya Rao": 12, "Nobody": 3})
	require.Len(t, w, 6)

	assert.Equal(t, "Rahul Sharma", w[0].Name)
	assert.Equal(t, "Alpha Squad", w[0].TeamName)
	assert.Equal(t, 4, w[0].OpenCases)
	assert.Equal(t, 20, w[0].Utilisation)
	assert.False(t, w[0].OverCapacity)

	assert.Equal(t, "Divya Rao", w[3].Name)
	assert.Equal(t, 120, w[3].Utilisation)
	assert.True(t, w[3].OverCapacity)

	assert.Zero(t, w[4].OpenCases)
}
