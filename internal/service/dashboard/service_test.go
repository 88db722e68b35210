package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/dashboard"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClock(t *testing.T, at string) *clock.Clock {
	t.Helper()
	clk, err := clock.New(clock.DefaultZone)
	require.NoError(t, err)
	fixed, err := time.ParseInLocation("2006-01-02 15:04:05", at, clk.Location())
	require.NoError(t, err)
	return clk.WithNow(func() time.Time { return fixed })
}

type fakeDashboardRepo struct {
	daily  map[string]dashboard.DayPresence
	hours  []dashboard.EmployeeHoursRow
	month  dashboard.MonthHoursRow
	count  int64
	byDept map[string]int
}

func (f *fakeDashboardRepo) DailyPresence(_ context.Context, from, to string) (map[string]dashboard.DayPresence, error) {
	return f.daily, nil
}

func (f *fakeDashboardRepo) EmployeeHours(_ context.Context, from, to string) ([]dashboard.EmployeeHoursRow, error) {
	return f.hours, nil
}

func (f *fakeDashboardRepo) MonthHours(_ context.Context, from, to string) (dashboard.MonthHoursRow, error) {
	return f.month, nil
}

func (f *fakeDashboardRepo) CountRecords(_ context.Context, from, to string) (int64, error) {
	return f.count, nil
}

func (f *fakeDashboardRepo) PresentByDepartment(_ context.Context, from, to string) (map[string]int, error) {
	return f.byDept, nil
}

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (f *fakeAttendanceRepo) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(_ context.Context, userID, date string) (*attendance.Record, error) {
	for i := range f.records {
		if f.records[i].UserID == userID && f.records[i].Date == date {
			cp := f.records[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, rec attendance.Record) error { return nil }

func (f *fakeAttendanceRepo) ListByUserRange(_ context.Context, userID, from, to string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.UserID == userID && rec.Date >= from && rec.Date <= to {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByUser(_ context.Context, userID string, page, limit int) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, q attendance.ListQuery) ([]attendance.Record, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListAll(_ context.Context, q attendance.ListQuery) ([]attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByDate(_ context.Context, date string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByIDOrCode(_ context.Context, idOrCode string) (user.User, error) {
	return user.User{}, user.ErrEmployeeNotFound
}

func (f *fakeUserRepo) ListEmployees(_ context.Context, department string) ([]user.User, error) {
	return f.users, nil
}

func (f *fakeUserRepo) CountByCodePrefix(_ context.Context, prefix string) (int64, error) {
	return 0, nil
}

func employees(t *testing.T, clk *clock.Clock, hireDates map[string]string) []user.User {
	t.Helper()
	var out []user.User
	for id, date := range hireDates {
		hired, err := clk.Parse(date)
		require.NoError(t, err)
		out = append(out, user.User{ID: id, Role: user.RoleEmployee, CreatedAt: hired, Department: "Engineering"})
	}
	return out
}

func TestWeeklyTrendSundayIsHoliday(t *testing.T) {
	// Monday 2025-03-10; the window covers Sunday 2025-03-09.
	clk := testClock(t, "2025-03-10 12:00:00")
	staff := employees(t, clk, map[string]string{"u1": "2025-01-01", "u2": "2025-01-01", "u3": "2025-01-01"})
	svc := &DashboardServiceImpl{clk: clk}

	trend, err := svc.weeklyTrend("2025-03-10", map[string]dashboard.DayPresence{}, staff)
	require.NoError(t, err)
	require.Len(t, trend, 7)

	var sunday dashboard.TrendPoint
	for _, p := range trend {
		if p.Date == "2025-03-09" {
			sunday = p
		}
	}
	assert.Equal(t, dashboard.TrendHoliday, sunday.Status)
	assert.Equal(t, 0, sunday.Absent)
	assert.Equal(t, "Sun", sunday.Label)
}

func TestWeeklyTrendWorkedSundayKeepsAbsences(t *testing.T) {
	clk := testClock(t, "2025-03-10 12:00:00")
	staff := employees(t, clk, map[string]string{"u1": "2025-01-01", "u2": "2025-01-01", "u3": "2025-01-01"})
	svc := &DashboardServiceImpl{clk: clk}

	counts := map[string]dashboard.DayPresence{"2025-03-09": {Present: 1}}
	trend, err := svc.weeklyTrend("2025-03-10", counts, staff)
	require.NoError(t, err)

	for _, p := range trend {
		if p.Date == "2025-03-09" {
			assert.Equal(t, dashboard.TrendHoliday, p.Status)
			assert.Equal(t, 1, p.Present)
			assert.Equal(t, 2, p.Absent)
		}
	}
}

func TestWeeklyTrendNoDataBeforeFirstHire(t *testing.T) {
	clk := testClock(t, "2025-03-10 12:00:00")
	staff := employees(t, clk, map[string]string{"u1": "2025-03-08"})
	svc := &DashboardServiceImpl{clk: clk}

	trend, err := svc.weeklyTrend("2025-03-10", map[string]dashboard.DayPresence{}, staff)
	require.NoError(t, err)

	byDate := make(map[string]dashboard.TrendPoint)
	for _, p := range trend {
		byDate[p.Date] = p
	}
	// Friday before the hire: nobody existed yet.
	assert.Equal(t, dashboard.TrendNoData, byDate["2025-03-07"].Status)
	assert.Equal(t, 0, byDate["2025-03-07"].TotalEmployees)
	// Saturday of the hire: headcount 1, no record, one absence.
	assert.Equal(t, dashboard.TrendWorking, byDate["2025-03-08"].Status)
	assert.Equal(t, 1, byDate["2025-03-08"].TotalEmployees)
	assert.Equal(t, 1, byDate["2025-03-08"].Absent)
}

func TestWeeklyTrendHeadcountNeverBelowPresent(t *testing.T) {
	clk := testClock(t, "2025-03-10 12:00:00")
	// Seeded history: records exist on a day before anyone's hire date.
	staff := employees(t, clk, map[string]string{"u1": "2025-03-10"})
	svc := &DashboardServiceImpl{clk: clk}

	counts := map[string]dashboard.DayPresence{"2025-03-05": {Present: 4}}
	trend, err := svc.weeklyTrend("2025-03-10", counts, staff)
	require.NoError(t, err)

	for _, p := range trend {
		if p.Date == "2025-03-05" {
			assert.Equal(t, 4, p.TotalEmployees)
			assert.Equal(t, 0, p.Absent)
			assert.Equal(t, dashboard.TrendWorking, p.Status)
		}
	}
}

func TestRankPerformers(t *testing.T) {
	hours := []float64{10, 50, 30, 5, 100, 20, 60, 15, 25, 35, 45}
	var rows []dashboard.EmployeeHoursRow
	for i, h := range hours {
		rows = append(rows, dashboard.EmployeeHoursRow{UserID: fmt.Sprintf("u%d", i), TotalHours: h, Days: 1})
	}
	// Repository contract: sorted by total hours descending.
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if rows[j].TotalHours > rows[i].TotalHours {
				rows[i], rows[j] = rows[j], rows[i]
			}
		}
	}

	result := rankPerformers(rows)

	require.Len(t, result.Top, 5)
	require.Len(t, result.Bottom, 5)

	topHours := make([]float64, 0, 5)
	for _, p := range result.Top {
		topHours = append(topHours, p.TotalHours)
	}
	assert.Equal(t, []float64{100, 60, 50, 45, 35}, topHours)

	bottomHours := make([]float64, 0, 5)
	for _, p := range result.Bottom {
		bottomHours = append(bottomHours, p.TotalHours)
	}
	assert.Equal(t, []float64{5, 10, 15, 20, 25}, bottomHours)
}

func TestTodayStats(t *testing.T) {
	clk := testClock(t, "2025-03-10 12:00:00")
	staff := employees(t, clk, map[string]string{"u1": "2025-01-01", "u2": "2025-01-01", "u3": "2025-01-01"})

	now := clk.Now()
	records := []attendance.Record{
		{UserID: staff[0].ID, Date: "2025-03-10", CheckInTime: now, Status: attendance.StatusPresent},
		{UserID: staff[1].ID, Date: "2025-03-10", CheckInTime: now, Status: attendance.StatusLate},
	}
	stats, absent := todayStats(staff, records)

	assert.Equal(t, 3, stats.TotalEmployees)
	assert.Equal(t, 2, stats.Present)
	assert.Equal(t, 1, stats.Late)
	assert.Equal(t, 1, stats.Absent)
	require.Len(t, absent, 1)
	assert.Equal(t, staff[2].ID, absent[0].ID)
}

func TestManagerDashboard(t *testing.T) {
	clk := testClock(t, "2025-03-10 12:00:00")
	staff := employees(t, clk, map[string]string{"u1": "2025-01-01", "u2": "2025-01-01"})

	now := clk.Now()
	attRepo := &fakeAttendanceRepo{records: []attendance.Record{
		{UserID: staff[0].ID, Date: "2025-03-10", CheckInTime: now, Status: attendance.StatusPresent},
	}}
	dashRepo := &fakeDashboardRepo{
		daily: map[string]dashboard.DayPresence{"2025-03-10": {Present: 1}},
		hours: []dashboard.EmployeeHoursRow{{UserID: staff[0].ID, TotalHours: 40, Days: 5}},
		count: 6,
	}

	svc := NewDashboardService(clk, nil, dashRepo, attRepo, &fakeUserRepo{users: staff})

	resp, err := svc.Manager(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Stats.TotalEmployees)
	assert.Equal(t, 1, resp.Stats.Present)
	assert.Equal(t, 1, resp.Stats.Absent)
	assert.Equal(t, int64(6), resp.Month.TotalCheckIns)
	require.Len(t, resp.Charts.WeeklyTrend, 7)
	require.Len(t, resp.AbsentEmployees, 1)
	require.Len(t, resp.Performers.Top, 1)
	assert.Equal(t, 8.0, resp.Performers.Top[0].AverageHours)
}

func TestEmployeeOverview(t *testing.T) {
	clk := testClock(t, "2025-03-10 12:00:00")
	now := clk.Now()
	out := now.Add(-time.Hour)

	attRepo := &fakeAttendanceRepo{records: []attendance.Record{
		{UserID: "u1", Date: "2025-03-10", CheckInTime: now, Status: attendance.StatusPresent},
		{UserID: "u1", Date: "2025-03-07", CheckInTime: now.AddDate(0, 0, -3), CheckOutTime: &out, Status: attendance.StatusPresent, TotalHours: 9.0},
		{UserID: "u1", Date: "2025-03-03", CheckInTime: now.AddDate(0, 0, -7), CheckOutTime: &out, Status: attendance.StatusLate, TotalHours: 8.0},
	}}

	svc := NewDashboardService(clk, nil, &fakeDashboardRepo{}, attRepo, &fakeUserRepo{})

	resp, err := svc.EmployeeOverview(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, attendance.CheckStateCheckedIn, resp.Today.Status)
	assert.Len(t, resp.Last7Days, 2)
	assert.Equal(t, 2, resp.Monthly.PresentDays)
	assert.Equal(t, 17.0, resp.Monthly.TotalHours)
	assert.Equal(t, 5.67, resp.Monthly.AverageHours)
}

func TestDepartmentStatsManDays(t *testing.T) {
	// Weekly period containing Monday 2025-03-10 runs Sunday Mar 9
	// through Saturday Mar 15; capacity stops at today (Mar 10) and
	// skips the Sunday, leaving one working day per employee.
	clk := testClock(t, "2025-03-10 12:00:00")
	staff := employees(t, clk, map[string]string{"u1": "2025-01-01", "u2": "2025-01-01"})

	dashRepo := &fakeDashboardRepo{byDept: map[string]int{"Engineering": 1}}
	svc := NewDashboardService(clk, nil, dashRepo, &fakeAttendanceRepo{}, &fakeUserRepo{users: staff})

	slices, err := svc.DepartmentStats(context.Background(), dashboard.PeriodWeekly, "")
	require.NoError(t, err)
	require.Len(t, slices, 1)

	assert.Equal(t, "Engineering", slices[0].Name)
	assert.Equal(t, 2, slices[0].Total)
	assert.Equal(t, 1, slices[0].Present)
	assert.Equal(t, 1, slices[0].Absent)
}

func TestDepartmentStatsRejectsBadDate(t *testing.T) {
	clk := testClock(t, "2025-03-10 12:00:00")
	svc := NewDashboardService(clk, nil, &fakeDashboardRepo{}, &fakeAttendanceRepo{}, &fakeUserRepo{})

	_, err := svc.DepartmentStats(context.Background(), dashboard.PeriodDaily, "10-03-2025")
	assert.Error(t, err)
}
