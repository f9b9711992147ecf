package dashboard

import "github.com/google/uuid"

// CompanyStats is the admin/manager dashboard snapshot, aggregated in one
// pass over the company's scoped collections.
type CompanyStats struct {
	Headcount          int64 `json:"headcount"`
	ActiveEmployees    int64 `json:"active_employees"`
	Managers           int64 `json:"managers"`
	PresentToday       int64 `json:"present_today"`
	OnLeaveToday       int64 `json:"on_leave_today"`
	PendingLeaves      int64 `json:"pending_leaves"`
	MonthlySalaryTotal int64 `json:"monthly_salary_total"`
	RecentJoiners      int64 `json:"recent_joiners"`
	ExpiringDocuments  int64 `json:"expiring_documents"`
}

// EmployeeStats is the employee's own dashboard snapshot.
type EmployeeStats struct {
	EmployeeID       uuid.UUID `json:"employee_id"`
	PresentThisMonth int64     `json:"present_this_month"`
	PendingLeaves    int64     `json:"pending_leaves"`
	CasualRemaining  int       `json:"casual_remaining"`
	SickRemaining    int       `json:"sick_remaining"`
	EarnedRemaining  int       `json:"earned_remaining"`
	LastPayslipNet   int64     `json:"last_payslip_net"`
}
