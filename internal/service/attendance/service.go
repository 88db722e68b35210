package attendance

import (
	"context"
	"fmt"
	"math"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	clk *clock.Clock
	attendance.AttendanceRepository
	user.UserRepository
}

func NewAttendanceService(
	clk *clock.Clock,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		clk:                  clk,
		AttendanceRepository: attendanceRepo,
		UserRepository:       userRepo,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, userID string) (attendance.RecordResponse, error) {
	now := s.clk.Now()
	today := s.clk.DateOf(now)

	existing, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up today's record: %w", err)
	}
	if existing != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	}

	status, hours := attendance.DeriveStatus(now, nil)

	rec := attendance.Record{
		UserID:      userID,
		Date:        today,
		CheckInTime: now,
		Status:      status,
		TotalHours:  hours,
	}

	// The repository turns a duplicate-day insert into ErrAlreadyCheckedIn,
	// which also settles the race between two concurrent check-ins.
	created, err := s.AttendanceRepository.Create(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return created.Response(), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, userID string) (attendance.RecordResponse, error) {
	now := s.clk.Now()
	today := s.clk.DateOf(now)

	rec, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up today's record: %w", err)
	}
	if rec == nil {
		return attendance.RecordResponse{}, attendance.ErrNoCheckInFound
	}
	if rec.CheckOutTime != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	checkIn := rec.CheckInTime.In(s.clk.Location())
	rec.CheckOutTime = &now
	rec.Status, rec.TotalHours = attendance.DeriveStatus(checkIn, &now)

	if err := s.AttendanceRepository.Update(ctx, *rec); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to close today's record: %w", err)
	}

	return rec.Response(), nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context, userID string) (attendance.TodayStatusResponse, error) {
	rec, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, s.clk.Today())
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to look up today's record: %w", err)
	}

	resp := attendance.TodayStatusResponse{Status: attendance.CheckStateNotCheckedIn}
	if rec != nil {
		r := rec.Response()
		resp.Record = &r
		if rec.CheckOutTime != nil {
			resp.Status = attendance.CheckStateCheckedOut
		} else {
			resp.Status = attendance.CheckStateCheckedIn
		}
	}
	return resp, nil
}

// MonthlySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthlySummary(ctx context.Context, userID, month string) (attendance.MonthlySummaryResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	today := s.clk.Today()
	if month == "" {
		month = today[:7]
	}
	if !clock.IsValidDate(month + "-01") {
		return attendance.MonthlySummaryResponse{}, validator.ValidationErrors{{
			Field:   "month",
			Message: "month must be YYYY-MM",
		}}
	}

	first, last, err := s.clk.MonthBounds(month + "-01")
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	records, err := s.AttendanceRepository.ListByUserRange(ctx, userID, first, last)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to list month records: %w", err)
	}

	stats, err := s.monthStatistics(u, records, first, last, today)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	resp := attendance.MonthlySummaryResponse{
		Month:      month,
		Records:    toResponses(records),
		Statistics: stats,
	}

	todayRec, err := s.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to look up today's record: %w", err)
	}
	if todayRec != nil {
		r := todayRec.Response()
		resp.Today = &r
	}

	weekFrom, err := s.clk.AddDays(today, -6)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}
	last7, err := s.AttendanceRepository.ListByUserRange(ctx, userID, weekFrom, today)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to list last 7 days: %w", err)
	}
	resp.Last7Days = toResponses(last7)

	return resp, nil
}

// monthStatistics tallies recorded statuses and reconstructs implicit
// absences: every non-Sunday day before today with no record counts as
// absent. The walk starts no earlier than the hire date so a mid-month
// hire is not charged for days before they existed.
func (s *AttendanceServiceImpl) monthStatistics(u user.User, records []attendance.Record, first, last, today string) (attendance.MonthlyStatistics, error) {
	var stats attendance.MonthlyStatistics

	recorded := make(map[string]bool, len(records))
	var hours float64
	for _, rec := range records {
		recorded[rec.Date] = true
		hours += rec.TotalHours
		switch rec.Status {
		case attendance.StatusPresent:
			stats.TotalPresent++
		case attendance.StatusLate:
			stats.TotalLate++
		case attendance.StatusHalfDay:
			stats.TotalHalfDay++
		case attendance.StatusAbsent:
			stats.TotalAbsent++
		}
	}
	stats.TotalHoursWorked = attendance.RoundHours(hours)

	walkFrom := first
	if hireDate := s.clk.DateOf(u.CreatedAt); hireDate > walkFrom {
		walkFrom = hireDate
	}
	days, err := s.clk.DateRange(walkFrom, last)
	if err != nil {
		return attendance.MonthlyStatistics{}, err
	}
	for _, day := range days {
		if day >= today {
			// today and future days are never absent
			break
		}
		if recorded[day] {
			continue
		}
		sunday, err := s.clk.IsSunday(day)
		if err != nil {
			return attendance.MonthlyStatistics{}, err
		}
		if !sunday {
			stats.TotalAbsent++
		}
	}

	return stats, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, userID string, f attendance.HistoryFilter) (attendance.ListResponse, error) {
	f.Normalize()

	records, total, err := s.AttendanceRepository.ListByUser(ctx, userID, f.Page, f.Limit)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list history: %w", err)
	}

	return attendance.ListResponse{
		TotalCount: total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: totalPages(total, f.Limit),
		Records:    toResponses(records),
	}, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, f attendance.ListFilter) (attendance.ListResponse, error) {
	f.Normalize()
	if err := f.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	q := attendance.ListQuery{
		From:   f.StartDate,
		To:     f.EndDate,
		Status: f.Status,
		Page:   f.Page,
		Limit:  f.Limit,
	}
	if f.Employee != "" {
		u, err := s.UserRepository.GetByIDOrCode(ctx, f.Employee)
		if err != nil {
			return attendance.ListResponse{}, err
		}
		q.UserID = u.ID
	}

	records, total, err := s.AttendanceRepository.List(ctx, q)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return attendance.ListResponse{
		TotalCount: total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: totalPages(total, f.Limit),
		Records:    toResponses(records),
	}, nil
}

// EmployeeAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EmployeeAttendance(ctx context.Context, idOrCode, from, to string) (attendance.EmployeeAttendanceResponse, error) {
	u, err := s.UserRepository.GetByIDOrCode(ctx, idOrCode)
	if err != nil {
		return attendance.EmployeeAttendanceResponse{}, err
	}

	f := attendance.ListFilter{StartDate: from, EndDate: to}
	if err := f.Validate(); err != nil {
		return attendance.EmployeeAttendanceResponse{}, err
	}

	records, err := s.AttendanceRepository.ListAll(ctx, attendance.ListQuery{
		UserID: u.ID,
		From:   from,
		To:     to,
	})
	if err != nil {
		return attendance.EmployeeAttendanceResponse{}, fmt.Errorf("failed to list employee attendance: %w", err)
	}

	return attendance.EmployeeAttendanceResponse{
		Employee: u.Profile(),
		Count:    len(records),
		Records:  toResponses(records),
	}, nil
}

// TodayRoster implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TodayRoster(ctx context.Context, dept string) ([]attendance.RosterEntry, error) {
	employees, err := s.UserRepository.ListEmployees(ctx, dept)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	records, err := s.AttendanceRepository.ListByDate(ctx, s.clk.Today())
	if err != nil {
		return nil, fmt.Errorf("failed to list today's records: %w", err)
	}
	byUser := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byUser[rec.UserID] = rec
	}

	entries := make([]attendance.RosterEntry, 0, len(employees))
	for _, emp := range employees {
		entry := attendance.RosterEntry{
			Employee: emp.Profile(),
			Status:   "absent",
		}
		if rec, ok := byUser[emp.ID]; ok {
			r := rec.Response()
			entry.Record = &r
			if rec.CheckOutTime != nil {
				entry.Status = "checked-out"
			} else {
				entry.Status = "checked-in"
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func toResponses(records []attendance.Record) []attendance.RecordResponse {
	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, rec.Response())
	}
	return responses
}

func totalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}
