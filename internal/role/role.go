// Package role defines the closed set of account roles and the
// role-dependent dashboard dispatch table.
//
// Every role-gated decision in the system goes through this package so an
// unknown role fails loudly at the parse boundary instead of silently
// falling through a string comparison.
package role

import "fmt"

// Role values mirror the user_role enum in PostgreSQL.
type Role string

const (
	Employee Role = "employee"
	Employer Role = "employer"
)

// Parse converts a raw string to a Role, returning an error for unknown
// values.
func Parse(s string) (Role, error) {
	r := Role(s)
	switch r {
	case Employee, Employer:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, err := Parse(string(r))
	return err == nil
}

// DashboardPath returns the dashboard landing route for the role. This is
// the two-branch table a client uses after sign-in: employers land on their
// posted jobs, employees on their applications.
func (r Role) DashboardPath() string {
	switch r {
	case Employer:
		return "/dashboard/posted-jobs"
	case Employee:
		return "/dashboard/applications"
	}
	return "/dashboard"
}

// NavItems returns the dashboard navigation destinations visible to the
// role, in display order.
func (r Role) NavItems() []string {
	switch r {
	case Employer:
		return []string{
			"/dashboard/posted-jobs",
			"/dashboard/companies",
			"/dashboard/profile",
			"/dashboard/settings",
		}
	case Employee:
		return []string{
			"/dashboard/applications",
			"/dashboard/saved-jobs",
			"/dashboard/profile",
			"/dashboard/settings",
		}
	}
	return nil
}
