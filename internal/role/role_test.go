package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{name: "employee", input: "employee", want: Employee},
		{name: "employer", input: "employer", want: Employer},
		{name: "unknown", input: "admin", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "case sensitive", input: "Employer", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/dashboard/posted-jobs", Employer.DashboardPath())
	assert.Equal(t, "/dashboard/applications", Employee.DashboardPath())
	// Unknown roles fall back to the dashboard root rather than panicking.
	assert.Equal(t, "/dashboard", Role("ghost").DashboardPath())
}

func TestNavItems(t *testing.T) {
	employer := Employer.NavItems()
	employee := Employee.NavItems()

	assert.Contains(t, employer, "/dashboard/posted-jobs")
	assert.Contains(t, employer, "/dashboard/companies")
	assert.NotContains(t, employer, "/dashboard/saved-jobs")

	assert.Contains(t, employee, "/dashboard/applications")
	assert.Contains(t, employee, "/dashboard/saved-jobs")
	assert.NotContains(t, employee, "/dashboard/posted-jobs")

	// Both roles share profile and settings.
	for _, items := range [][]string{employer, employee} {
		assert.Contains(t, items, "/dashboard/profile")
		assert.Contains(t, items, "/dashboard/settings")
	}

	assert.Nil(t, Role("ghost").NavItems())
}
