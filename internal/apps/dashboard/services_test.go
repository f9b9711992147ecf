package dashboard

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umutcano/staffhub-backend/internal/apps/attendance"
	"github.com/umutcano/staffhub-backend/internal/apps/employees"
	"github.com/umutcano/staffhub-backend/internal/apps/leaves"
	"github.com/umutcano/staffhub-backend/internal/apps/payroll"
	"github.com/umutcano/staffhub-backend/internal/models"
	"github.com/umutcano/staffhub-backend/internal/testutil"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t,
		&attendance.Record{},
		&leaves.LeaveRequest{}, &leaves.Balance{},
		&payroll.SalaryStructure{}, &payroll.Payslip{},
		&employees.Document{},
	)
	return NewService(db), db
}

func seedEmployee(t *testing.T, db *gorm.DB, companyID uuid.UUID, no string, status models.AccountStatus, joinedAt time.Time) *models.Employee {
	t.Helper()
	emp := models.Employee{
		ID: uuid.New(), CompanyID: companyID, EmployeeNo: no,
		FullName: "Employee " + no, Email: no + "@acme.test",
		JoinedAt: joinedAt, Status: status,
	}
	require.NoError(t, db.Create(&emp).Error)
	return &emp
}

func TestCompanyStats(t *testing.T) {
	svc, db := newService(t)
	companyID := uuid.New()
	now := time.Now()
	today := dateOnly(now)

	veteran := seedEmployee(t, db, companyID, "E1", models.StatusActive, now.AddDate(-1, 0, 0))
	joiner := seedEmployee(t, db, companyID, "E2", models.StatusActive, now.AddDate(0, 0, -2))
	seedEmployee(t, db, companyID, "E3", models.StatusInactive, now.AddDate(-2, 0, 0))
	// Another tenant's employee must not be counted.
	seedEmployee(t, db, uuid.New(), "E1", models.StatusActive, now)

	require.NoError(t, db.Create(&models.Manager{
		ID: uuid.New(), CompanyID: companyID, ManagerNo: "M1",
		FullName: "Manager", Email: "m1@acme.test", Status: models.StatusActive,
	}).Error)

	// One present today, one on approved leave covering today.
	require.NoError(t, db.Create(&attendance.Record{
		ID: uuid.New(), CompanyID: companyID, EmployeeID: veteran.ID,
		Day: today, Status: attendance.StatusPresent, CheckInAt: now,
	}).Error)
	require.NoError(t, db.Create(&leaves.LeaveRequest{
		ID: uuid.New(), CompanyID: companyID, EmployeeID: joiner.ID,
		Type: leaves.TypeCasual, FromDay: today.AddDate(0, 0, -1), ToDay: today.AddDate(0, 0, 1),
		Days: 3, Status: leaves.StatusApproved,
	}).Error)
	require.NoError(t, db.Create(&leaves.LeaveRequest{
		ID: uuid.New(), CompanyID: companyID, EmployeeID: veteran.ID,
		Type: leaves.TypeSick, FromDay: today.AddDate(0, 0, 7), ToDay: today.AddDate(0, 0, 8),
		Days: 2, Status: leaves.StatusPending,
	}).Error)

	// A document expiring inside the 30-day window.
	expires := now.AddDate(0, 0, 10)
	require.NoError(t, db.Create(&employees.Document{
		ID: uuid.New(), CompanyID: companyID, EmployeeID: veteran.ID,
		Title: "passport", DocType: "id_proof", ExpiresAt: &expires,
	}).Error)

	// A payslip for the current month.
	require.NoError(t, db.Create(&payroll.Payslip{
		ID: uuid.New(), CompanyID: companyID, EmployeeID: veteran.ID,
		Year: now.Year(), Month: int(now.Month()),
		Basic: 300000, Gross: 300000, Net: 280000,
		Status: payroll.PayslipIssued, GeneratedAt: now,
	}).Error)

	stats, err := svc.CompanyStats(companyID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Headcount)
	assert.EqualValues(t, 2, stats.ActiveEmployees)
	assert.EqualValues(t, 1, stats.Managers)
	assert.EqualValues(t, 1, stats.PresentToday)
	assert.EqualValues(t, 1, stats.OnLeaveToday)
	assert.EqualValues(t, 1, stats.PendingLeaves)
	assert.EqualValues(t, 1, stats.RecentJoiners)
	assert.EqualValues(t, 1, stats.ExpiringDocuments)
	assert.EqualValues(t, 280000, stats.MonthlySalaryTotal)
}

func TestCompanyStatsEmpty(t *testing.T) {
	svc, _ := newService(t)

	stats, err := svc.CompanyStats(uuid.New())
	require.NoError(t, err)
	assert.Zero(t, stats.Headcount)
	assert.Zero(t, stats.MonthlySalaryTotal)
}

func TestEmployeeStats(t *testing.T) {
	svc, db := newService(t)
	companyID := uuid.New()
	now := time.Now()
	emp := seedEmployee(t, db, companyID, "E1", models.StatusActive, now.AddDate(-1, 0, 0))

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&attendance.Record{
		ID: uuid.New(), CompanyID: companyID, EmployeeID: emp.ID,
		Day: monthStart, Status: attendance.StatusPresent, CheckInAt: monthStart,
	}).Error)
	require.NoError(t, db.Create(&leaves.LeaveRequest{
		ID: uuid.New(), CompanyID: companyID, EmployeeID: emp.ID,
		Type: leaves.TypeCasual, FromDay: dateOnly(now.AddDate(0, 0, 5)), ToDay: dateOnly(now.AddDate(0, 0, 6)),
		Days: 2, Status: leaves.StatusPending,
	}).Error)
	require.NoError(t, db.Create(&payroll.Payslip{
		ID: uuid.New(), CompanyID: companyID, EmployeeID: emp.ID,
		Year: now.Year(), Month: int(now.Month()),
		Basic: 300000, Gross: 300000, Net: 275000,
		Status: payroll.PayslipIssued, GeneratedAt: now,
	}).Error)

	stats, err := svc.EmployeeStats(companyID, emp.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.PresentThisMonth)
	assert.EqualValues(t, 1, stats.PendingLeaves)
	assert.Equal(t, 12, stats.CasualRemaining, "balance row is created on first read")
	assert.Equal(t, 10, stats.SickRemaining)
	assert.EqualValues(t, 275000, stats.LastPayslipNet)
}

func TestEmployeeStatsNoPayslip(t *testing.T) {
	svc, db := newService(t)
	companyID := uuid.New()
	emp := seedEmployee(t, db, companyID, "E1", models.StatusActive, time.Now())

	stats, err := svc.EmployeeStats(companyID, emp.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.LastPayslipNet)
	assert.Zero(t, stats.PresentThisMonth)
}
