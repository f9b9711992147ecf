package gate

import "github.com/umutcano/staffhub-backend/internal/models"

// MenuItem is one navigation entry the client renders for a role.
type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

var adminMenu = []MenuItem{
	{Label: "Dashboard", Path: DashboardPath},
	{Label: "Employees", Path: "/employees"},
	{Label: "Managers", Path: "/managers"},
	{Label: "Attendance", Path: "/attendance"},
	{Label: "Leaves", Path: "/leaves"},
	{Label: "Payroll", Path: "/payroll"},
	{Label: "Documents", Path: "/documents"},
}

var managerMenu = []MenuItem{
	{Label: "Dashboard", Path: DashboardPath},
	{Label: "Employees", Path: "/employees"},
	{Label: "Attendance", Path: "/attendance"},
	{Label: "Leaves", Path: "/leaves"},
}

var employeeMenu = []MenuItem{
	{Label: "Dashboard", Path: DashboardPath},
	{Label: "My Attendance", Path: "/attendance/me"},
	{Label: "My Leaves", Path: "/leaves/me"},
	{Label: "My Payslips", Path: "/payroll/me"},
}

// MenuFor returns the navigation entries for a role.
func MenuFor(role models.Role) []MenuItem {
	switch role {
	case models.RoleAdmin:
		return adminMenu
	case models.RoleManager:
		return managerMenu
	case models.RoleEmployee:
		return employeeMenu
	}
	return nil
}

// LandingPath is where a role lands after sign-in. All roles share the
// dashboard today; the table exists so they can diverge without touching
// the gate.
func LandingPath(role models.Role) string {
	switch role {
	case models.RoleAdmin, models.RoleManager, models.RoleEmployee:
		return DashboardPath
	}
	return LoginPath
}
