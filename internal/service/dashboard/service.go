package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/dashboard"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/cache"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

// managerCacheTTL keeps the dashboard fresh enough for a live view while
// absorbing bursts of manager traffic.
const managerCacheTTL = 30 * time.Second

type DashboardServiceImpl struct {
	clk   *clock.Clock
	cache *cache.Redis
	dashboard.DashboardRepository
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
}

func NewDashboardService(
	clk *clock.Clock,
	cacheClient *cache.Redis,
	dashboardRepo dashboard.DashboardRepository,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		clk:                 clk,
		cache:               cacheClient,
		DashboardRepository: dashboardRepo,
		attendanceRepo:      attendanceRepo,
		userRepo:            userRepo,
	}
}

// Manager implements dashboard.DashboardService. The four sections are
// independent reads, so they fan out in parallel the same way the rest
// of the dashboard endpoints do.
func (s *DashboardServiceImpl) Manager(ctx context.Context) (dashboard.ManagerDashboardResponse, error) {
	today := s.clk.Today()

	cacheKey := "dashboard:manager:" + today
	var cached dashboard.ManagerDashboardResponse
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached, nil
	}

	monthFirst, monthLast, err := s.clk.MonthBounds(today)
	if err != nil {
		return dashboard.ManagerDashboardResponse{}, err
	}
	weekFrom, err := s.clk.AddDays(today, -6)
	if err != nil {
		return dashboard.ManagerDashboardResponse{}, err
	}

	// Every section needs the roster (counts, absence list, hire dates).
	employees, err := s.userRepo.ListEmployees(ctx, "")
	if err != nil {
		return dashboard.ManagerDashboardResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	var (
		todayRecords []attendance.Record
		weekCounts   map[string]dashboard.DayPresence
		hourRows     []dashboard.EmployeeHoursRow
		monthCount   int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		todayRecords, err = s.attendanceRepo.ListByDate(gCtx, today)
		return err
	})
	g.Go(func() error {
		var err error
		weekCounts, err = s.DailyPresence(gCtx, weekFrom, today)
		return err
	})
	g.Go(func() error {
		var err error
		hourRows, err = s.EmployeeHours(gCtx, monthFirst, monthLast)
		return err
	})
	g.Go(func() error {
		var err error
		monthCount, err = s.CountRecords(gCtx, monthFirst, monthLast)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.ManagerDashboardResponse{}, err
	}

	stats, absentEmployees := todayStats(employees, todayRecords)

	trend, err := s.weeklyTrend(today, weekCounts, employees)
	if err != nil {
		return dashboard.ManagerDashboardResponse{}, err
	}

	resp := dashboard.ManagerDashboardResponse{
		Stats: stats,
		Charts: dashboard.ChartsResponse{
			WeeklyTrend: trend,
			Department:  departmentChart(employees, todayRecords),
		},
		AbsentEmployees: absentEmployees,
		Month:           dashboard.MonthStats{TotalCheckIns: monthCount},
		Performers:      rankPerformers(hourRows),
	}

	s.cache.SetJSON(ctx, cacheKey, resp, managerCacheTTL)
	return resp, nil
}

// todayStats derives the headline numbers. Everyone with a record today
// attended regardless of lateness; absent is the roster remainder.
func todayStats(employees []user.User, records []attendance.Record) (dashboard.StatsResponse, []user.Profile) {
	recorded := make(map[string]bool, len(records))
	stats := dashboard.StatsResponse{TotalEmployees: len(employees)}

	for _, rec := range records {
		recorded[rec.UserID] = true
		if rec.Status.Attended() {
			stats.Present++
		}
		if rec.Status == attendance.StatusLate {
			stats.Late++
		}
	}
	stats.Absent = stats.TotalEmployees - stats.Present

	absent := make([]user.Profile, 0)
	for _, emp := range employees {
		if !recorded[emp.ID] {
			absent = append(absent, emp.Profile())
		}
	}
	return stats, absent
}

// weeklyTrend builds the last-7-days chart. Headcount is reconstructed
// from hire dates and clamped up to the present count so sparse
// historical data never yields negative absences.
func (s *DashboardServiceImpl) weeklyTrend(today string, counts map[string]dashboard.DayPresence, employees []user.User) ([]dashboard.TrendPoint, error) {
	points := make([]dashboard.TrendPoint, 0, 7)

	for i := 6; i >= 0; i-- {
		date, err := s.clk.AddDays(today, -i)
		if err != nil {
			return nil, err
		}
		day := counts[date]

		endOfDay, err := s.clk.EndOfDay(date)
		if err != nil {
			return nil, err
		}
		headcount := 0
		for _, emp := range employees {
			if emp.CreatedAt.Before(endOfDay) {
				headcount++
			}
		}
		if headcount < day.Present {
			headcount = day.Present
		}

		absent := headcount - day.Present
		if absent < 0 {
			absent = 0
		}
		status := dashboard.TrendWorking

		sunday, err := s.clk.IsSunday(date)
		if err != nil {
			return nil, err
		}
		if sunday {
			status = dashboard.TrendHoliday
			// a worked Sunday keeps its absent bar so the chart scale holds
			if day.Present == 0 {
				absent = 0
			}
		} else if headcount == 0 {
			status = dashboard.TrendNoData
		}

		t, err := s.clk.Parse(date)
		if err != nil {
			return nil, err
		}

		points = append(points, dashboard.TrendPoint{
			Date:           date,
			Label:          t.Format("Mon"),
			Present:        day.Present,
			Late:           day.Late,
			Absent:         absent,
			Status:         status,
			TotalEmployees: headcount,
		})
	}
	return points, nil
}

// departmentChart splits today's presence across the current roster's
// departments. A department with zero presence still appears; the
// renderer decides whether to draw its slice.
func departmentChart(employees []user.User, records []attendance.Record) []dashboard.DepartmentSlice {
	totals := make(map[string]int)
	for _, emp := range employees {
		totals[deptOrUnknown(emp.Department)]++
	}

	present := make(map[string]int)
	for _, rec := range records {
		dept := "Unknown"
		if rec.Department != nil {
			dept = deptOrUnknown(*rec.Department)
		}
		present[dept]++
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	for name := range present {
		if _, ok := totals[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	slices := make([]dashboard.DepartmentSlice, 0, len(names))
	for _, name := range names {
		slices = append(slices, dashboard.DepartmentSlice{
			Name:    name,
			Total:   totals[name],
			Present: present[name],
			Absent:  totals[name] - present[name],
		})
	}
	return slices
}

func deptOrUnknown(dept string) string {
	if dept == "" {
		return "Unknown"
	}
	return dept
}

// rankPerformers turns the sorted hours rows into top-5 and bottom-5
// lists. With fewer than ten employees the lists may overlap; that is
// accepted rather than deduplicated.
func rankPerformers(rows []dashboard.EmployeeHoursRow) dashboard.PerformersResponse {
	performers := make([]dashboard.Performer, 0, len(rows))
	for _, row := range rows {
		avg := 0.0
		if row.Days > 0 {
			avg = attendance.RoundHours(row.TotalHours / float64(row.Days))
		}
		performers = append(performers, dashboard.Performer{
			UserID:       row.UserID,
			Name:         row.Name,
			EmployeeCode: row.EmployeeCode,
			Department:   row.Department,
			TotalHours:   attendance.RoundHours(row.TotalHours),
			AverageHours: avg,
			Days:         row.Days,
		})
	}

	top := performers
	if len(top) > 5 {
		top = top[:5]
	}

	tail := performers
	if len(tail) > 5 {
		tail = tail[len(tail)-5:]
	}
	bottom := make([]dashboard.Performer, 0, len(tail))
	for i := len(tail) - 1; i >= 0; i-- {
		bottom = append(bottom, tail[i])
	}

	return dashboard.PerformersResponse{Top: top, Bottom: bottom}
}

// EmployeeOverview implements dashboard.DashboardService.
func (s *DashboardServiceImpl) EmployeeOverview(ctx context.Context, userID string) (dashboard.EmployeeOverviewResponse, error) {
	today := s.clk.Today()
	monthFirst, monthLast, err := s.clk.MonthBounds(today)
	if err != nil {
		return dashboard.EmployeeOverviewResponse{}, err
	}
	weekFrom, err := s.clk.AddDays(today, -6)
	if err != nil {
		return dashboard.EmployeeOverviewResponse{}, err
	}

	todayRec, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return dashboard.EmployeeOverviewResponse{}, fmt.Errorf("failed to look up today's record: %w", err)
	}

	last7, err := s.attendanceRepo.ListByUserRange(ctx, userID, weekFrom, today)
	if err != nil {
		return dashboard.EmployeeOverviewResponse{}, fmt.Errorf("failed to list last 7 days: %w", err)
	}

	monthRecords, err := s.attendanceRepo.ListByUserRange(ctx, userID, monthFirst, monthLast)
	if err != nil {
		return dashboard.EmployeeOverviewResponse{}, fmt.Errorf("failed to list month records: %w", err)
	}

	resp := dashboard.EmployeeOverviewResponse{
		Today:     dashboard.TodayOverview{Status: attendance.CheckStateNotCheckedIn},
		Last7Days: make([]attendance.RecordResponse, 0, len(last7)),
	}
	if todayRec != nil {
		r := todayRec.Response()
		resp.Today.Record = &r
		if todayRec.CheckOutTime != nil {
			resp.Today.Status = attendance.CheckStateCheckedOut
		} else {
			resp.Today.Status = attendance.CheckStateCheckedIn
		}
	}
	for _, rec := range last7 {
		resp.Last7Days = append(resp.Last7Days, rec.Response())
	}

	var totalHours float64
	for _, rec := range monthRecords {
		totalHours += rec.TotalHours
		if rec.Status == attendance.StatusPresent {
			resp.Monthly.PresentDays++
		}
	}
	resp.Monthly.TotalHours = attendance.RoundHours(totalHours)
	if len(monthRecords) > 0 {
		resp.Monthly.AverageHours = attendance.RoundHours(totalHours / float64(len(monthRecords)))
	}

	return resp, nil
}

// OrgSummary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) OrgSummary(ctx context.Context) (dashboard.OrgSummaryResponse, error) {
	today := s.clk.Today()
	monthFirst, monthLast, err := s.clk.MonthBounds(today)
	if err != nil {
		return dashboard.OrgSummaryResponse{}, err
	}

	records, err := s.attendanceRepo.ListByDate(ctx, today)
	if err != nil {
		return dashboard.OrgSummaryResponse{}, fmt.Errorf("failed to list today's records: %w", err)
	}
	employees, err := s.userRepo.ListEmployees(ctx, "")
	if err != nil {
		return dashboard.OrgSummaryResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	var resp dashboard.OrgSummaryResponse
	for _, rec := range records {
		if rec.Status == attendance.StatusPresent {
			resp.Today.Present++
		}
	}
	resp.Today.Absent = len(employees) - resp.Today.Present

	count, err := s.CountRecords(ctx, monthFirst, monthLast)
	if err != nil {
		return dashboard.OrgSummaryResponse{}, err
	}
	resp.Month.CheckIns = count

	hours, err := s.MonthHours(ctx, monthFirst, monthLast)
	if err != nil {
		return dashboard.OrgSummaryResponse{}, err
	}
	if hours.Count > 0 {
		resp.Month.AvgHours = attendance.RoundHours(hours.TotalHours / float64(hours.Count))
	}

	return resp, nil
}

// DepartmentStats implements dashboard.DashboardService. Capacity is
// man-days: each working day in the period, every employee already hired
// by that day owes their department one attendance.
func (s *DashboardServiceImpl) DepartmentStats(ctx context.Context, periodType, date string) ([]dashboard.DepartmentSlice, error) {
	today := s.clk.Today()
	if date == "" {
		date = today
	} else if !clock.IsValidDate(date) {
		return nil, validator.ValidationErrors{{Field: "date", Message: "date must be YYYY-MM-DD"}}
	}

	start, end, err := s.periodBounds(periodType, date)
	if err != nil {
		return nil, err
	}

	employees, err := s.userRepo.ListEmployees(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	// Capacity walk stops at today; future days owe nothing yet.
	walkEnd := end
	if today < walkEnd {
		walkEnd = today
	}
	manDays := make(map[string]int)
	for _, emp := range employees {
		manDays[deptOrUnknown(emp.Department)] = 0
	}
	if start <= walkEnd {
		days, err := s.clk.DateRange(start, walkEnd)
		if err != nil {
			return nil, err
		}
		for _, day := range days {
			sunday, err := s.clk.IsSunday(day)
			if err != nil {
				return nil, err
			}
			if sunday {
				continue
			}
			endOfDay, err := s.clk.EndOfDay(day)
			if err != nil {
				return nil, err
			}
			for _, emp := range employees {
				if emp.CreatedAt.Before(endOfDay) {
					manDays[deptOrUnknown(emp.Department)]++
				}
			}
		}
	}

	present, err := s.PresentByDepartment(ctx, start, end)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(manDays))
	for name := range manDays {
		names = append(names, name)
	}
	for name := range present {
		if _, ok := manDays[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	slices := make([]dashboard.DepartmentSlice, 0, len(names))
	for _, name := range names {
		total := manDays[name]
		// Sundays worked and seeded history can exceed capacity.
		if present[name] > total {
			total = present[name]
		}
		absent := total - present[name]
		if absent < 0 {
			absent = 0
		}
		slices = append(slices, dashboard.DepartmentSlice{
			Name:    name,
			Total:   total,
			Present: present[name],
			Absent:  absent,
		})
	}
	return slices, nil
}

func (s *DashboardServiceImpl) periodBounds(periodType, date string) (string, string, error) {
	t, err := s.clk.Parse(date)
	if err != nil {
		return "", "", err
	}

	switch periodType {
	case dashboard.PeriodWeekly:
		// weeks start on Sunday
		start := t.AddDate(0, 0, -int(t.Weekday()))
		return start.Format(clock.DateLayout), start.AddDate(0, 0, 6).Format(clock.DateLayout), nil
	case dashboard.PeriodMonthly:
		return s.clk.MonthBounds(date)
	case dashboard.PeriodYearly:
		start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
		return start.Format(clock.DateLayout), start.AddDate(1, 0, -1).Format(clock.DateLayout), nil
	case dashboard.PeriodDaily, "":
		return date, date, nil
	default:
		return date, date, nil
	}
}
