package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (f *fakeAttendanceRepo) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(_ context.Context, userID, date string) (*attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, rec attendance.Record) error { return nil }

func (f *fakeAttendanceRepo) ListByUserRange(_ context.Context, userID, from, to string) ([]attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByUser(_ context.Context, userID string, page, limit int) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, q attendance.ListQuery) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListAll(_ context.Context, q attendance.ListQuery) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if q.UserID != "" && rec.UserID != q.UserID {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByDate(_ context.Context, date string) ([]attendance.Record, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByIDOrCode(_ context.Context, idOrCode string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == idOrCode || u.EmployeeCode == idOrCode {
			return u, nil
		}
	}
	return user.User{}, user.ErrEmployeeNotFound
}

func (f *fakeUserRepo) ListEmployees(_ context.Context, department string) ([]user.User, error) {
	return f.users, nil
}

func (f *fakeUserRepo) CountByCodePrefix(_ context.Context, prefix string) (int64, error) {
	return 0, nil
}

func strPtr(s string) *string { return &s }

func TestExportCSV(t *testing.T) {
	clk, err := clock.New(clock.DefaultZone)
	require.NoError(t, err)

	in, err := time.ParseInLocation("2006-01-02 15:04:05", "2025-03-10 08:30:00", clk.Location())
	require.NoError(t, err)
	out := in.Add(9 * time.Hour)

	repo := &fakeAttendanceRepo{records: []attendance.Record{
		{
			UserID: "u1", Date: "2025-03-10",
			CheckInTime: in, CheckOutTime: &out,
			Status: attendance.StatusPresent, TotalHours: 9,
			EmployeeName:  strPtr(`Smith, "Jim"`),
			EmployeeEmail: strPtr("jim@example.com"),
			EmployeeCode:  strPtr("EMP001"),
			Department:    strPtr("Engineering"),
		},
		{
			UserID: "u2", Date: "2025-03-10",
			CheckInTime: in,
			Status:      attendance.StatusLate, TotalHours: 0,
		},
	}}

	svc := NewReportService(clk, repo, &fakeUserRepo{})

	result, err := svc.ExportCSV(context.Background(), attendance.ListFilter{})
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	assert.Regexp(t, `^attendance-export-\d{8}-\d{6}\.csv$`, result.Filename)

	rows, err := csv.NewReader(bytes.NewReader(result.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"Date", "Employee ID", "Name", "Email", "Department",
		"Check In", "Check Out", "Total Hours", "Status",
	}, rows[0])

	assert.Equal(t, []string{
		"2025-03-10", "EMP001", `Smith, "Jim"`, "jim@example.com", "Engineering",
		"2025-03-10 08:30:00", "2025-03-10 17:30:00", "9.00", "present",
	}, rows[1])

	// open record: empty checkout, zero hours, blank directory fields
	assert.Equal(t, "", rows[2][6])
	assert.Equal(t, "0.00", rows[2][7])
	assert.Equal(t, "late", rows[2][8])
	assert.Equal(t, "", rows[2][1])
}

func TestExportCSVFiltersByEmployee(t *testing.T) {
	clk, err := clock.New(clock.DefaultZone)
	require.NoError(t, err)

	in, err := time.ParseInLocation("2006-01-02 15:04:05", "2025-03-10 08:30:00", clk.Location())
	require.NoError(t, err)

	repo := &fakeAttendanceRepo{records: []attendance.Record{
		{UserID: "u1", Date: "2025-03-10", CheckInTime: in, Status: attendance.StatusPresent},
		{UserID: "u2", Date: "2025-03-10", CheckInTime: in, Status: attendance.StatusPresent},
	}}
	users := &fakeUserRepo{users: []user.User{{ID: "u2", EmployeeCode: "EMP002"}}}

	svc := NewReportService(clk, repo, users)

	result, err := svc.ExportCSV(context.Background(), attendance.ListFilter{Employee: "EMP002"})
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(result.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	_, err = svc.ExportCSV(context.Background(), attendance.ListFilter{Employee: "nobody"})
	assert.ErrorIs(t, err, user.ErrEmployeeNotFound)
}

func TestExportCSVRejectsBadFilter(t *testing.T) {
	clk, err := clock.New(clock.DefaultZone)
	require.NoError(t, err)
	svc := NewReportService(clk, &fakeAttendanceRepo{}, &fakeUserRepo{})

	_, err = svc.ExportCSV(context.Background(), attendance.ListFilter{StartDate: "03/10/2025"})
	assert.Error(t, err)
}
