package attendance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umutcano/staffhub-backend/internal/models"
	"github.com/umutcano/staffhub-backend/internal/testutil"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t, &Record{})
	return NewService(db), db
}

func TestMarkToday(t *testing.T) {
	svc, _ := newService(t)
	companyID, employeeID := uuid.New(), uuid.New()

	record, err := svc.MarkToday(companyID, employeeID, MarkRequest{Note: "on site"})
	require.NoError(t, err)
	assert.Equal(t, StatusPresent, record.Status, "status defaults to present")
	assert.Equal(t, "on site", record.Note)
	assert.True(t, record.Day.Equal(dateOnly(time.Now())))
}

func TestMarkTodayTwice(t *testing.T) {
	svc, _ := newService(t)
	companyID, employeeID := uuid.New(), uuid.New()

	_, err := svc.MarkToday(companyID, employeeID, MarkRequest{})
	require.NoError(t, err)

	_, err = svc.MarkToday(companyID, employeeID, MarkRequest{Status: StatusHalfDay})
	assert.ErrorIs(t, err, ErrAlreadyMarked)

	// Another employee is unaffected.
	_, err = svc.MarkToday(companyID, uuid.New(), MarkRequest{})
	require.NoError(t, err)
}

func TestMarkTodayInvalidStatus(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.MarkToday(uuid.New(), uuid.New(), MarkRequest{Status: Status("vacation")})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListForEmployee(t *testing.T) {
	svc, db := newService(t)
	companyID, employeeID := uuid.New(), uuid.New()

	for i := 0; i < 3; i++ {
		day := dateOnly(time.Now().AddDate(0, 0, -i))
		require.NoError(t, db.Create(&Record{
			ID: uuid.New(), CompanyID: companyID, EmployeeID: employeeID,
			Day: day, Status: StatusPresent, CheckInAt: day,
		}).Error)
	}
	// A record in another company must not leak in.
	other := dateOnly(time.Now())
	require.NoError(t, db.Create(&Record{
		ID: uuid.New(), CompanyID: uuid.New(), EmployeeID: employeeID,
		Day: other, Status: StatusPresent, CheckInAt: other,
	}).Error)

	resp, err := svc.ListForEmployee(companyID, employeeID, time.Time{}, time.Time{}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, resp.Total)
	require.Len(t, resp.Records, 3)
	// Newest first.
	assert.True(t, resp.Records[0].Day.After(resp.Records[2].Day))

	// Range filter.
	from := time.Now().AddDate(0, 0, -1)
	resp, err = svc.ListForEmployee(companyID, employeeID, from, time.Time{}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)
}

func TestListForCompany(t *testing.T) {
	svc, _ := newService(t)
	companyID := uuid.New()
	today := time.Now()

	for i := 0; i < 2; i++ {
		_, err := svc.MarkToday(companyID, uuid.New(), MarkRequest{})
		require.NoError(t, err)
	}
	_, err := svc.MarkToday(uuid.New(), uuid.New(), MarkRequest{})
	require.NoError(t, err)

	resp, err := svc.ListForCompany(companyID, today, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)
}

func TestSummary(t *testing.T) {
	svc, db := newService(t)
	companyID, employeeID := uuid.New(), uuid.New()

	days := []struct {
		day    int
		status Status
	}{
		{1, StatusPresent},
		{2, StatusPresent},
		{3, StatusHalfDay},
		{4, StatusAbsent},
		{5, StatusOnLeave},
	}
	for _, d := range days {
		day := time.Date(2026, time.March, d.day, 0, 0, 0, 0, time.UTC)
		require.NoError(t, db.Create(&Record{
			ID: uuid.New(), CompanyID: companyID, EmployeeID: employeeID,
			Day: day, Status: d.status, CheckInAt: day,
		}).Error)
	}

	summary, err := svc.Summary(companyID, employeeID, 2026, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Counts[StatusPresent])
	assert.Equal(t, 1, summary.Counts[StatusHalfDay])
	assert.Equal(t, 1, summary.Counts[StatusAbsent])
	assert.Equal(t, 1, summary.Counts[StatusOnLeave])
	assert.Equal(t, 3, summary.WorkedDays, "present and half days both count as worked")

	// A different month is empty.
	summary, err = svc.Summary(companyID, employeeID, 2026, 4)
	require.NoError(t, err)
	assert.Empty(t, summary.Counts)
}

func TestCloseDay(t *testing.T) {
	svc, db := newService(t)
	companyID := uuid.New()

	marked := models.Employee{
		ID: uuid.New(), CompanyID: companyID, EmployeeNo: "E1",
		FullName: "Marked", Email: "e1@acme.test", Status: models.StatusActive,
	}
	unmarked := models.Employee{
		ID: uuid.New(), CompanyID: companyID, EmployeeNo: "E2",
		FullName: "Unmarked", Email: "e2@acme.test", Status: models.StatusActive,
	}
	inactive := models.Employee{
		ID: uuid.New(), CompanyID: companyID, EmployeeNo: "E3",
		FullName: "Inactive", Email: "e3@acme.test", Status: models.StatusInactive,
	}
	require.NoError(t, db.Create(&marked).Error)
	require.NoError(t, db.Create(&unmarked).Error)
	require.NoError(t, db.Create(&inactive).Error)

	yesterday := time.Now().AddDate(0, 0, -1)
	day := dateOnly(yesterday)
	require.NoError(t, db.Create(&Record{
		ID: uuid.New(), CompanyID: companyID, EmployeeID: marked.ID,
		Day: day, Status: StatusPresent, CheckInAt: day,
	}).Error)

	require.NoError(t, svc.CloseDay(yesterday))

	var records []Record
	require.NoError(t, db.Where("day = ?", day).Find(&records).Error)
	require.Len(t, records, 2, "one existing row plus one auto-closed row")

	var absent Record
	require.NoError(t, db.Where("employee_id = ?", unmarked.ID).First(&absent).Error)
	assert.Equal(t, StatusAbsent, absent.Status)
	assert.Equal(t, "auto-closed", absent.Note)

	// Idempotent: a second run adds nothing.
	require.NoError(t, svc.CloseDay(yesterday))
	var count int64
	require.NoError(t, db.Model(&Record{}).Where("day = ?", day).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
