package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/report"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
)

// exportTimeLayout renders timestamps the way spreadsheets expect them,
// without zone suffix; all values are in the business zone already.
const exportTimeLayout = "2006-01-02 15:04:05"

var csvHeader = []string{
	"Date", "Employee ID", "Name", "Email", "Department",
	"Check In", "Check Out", "Total Hours", "Status",
}

type ReportServiceImpl struct {
	clk            *clock.Clock
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
}

func NewReportService(
	clk *clock.Clock,
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
) report.ReportService {
	return &ReportServiceImpl{
		clk:            clk,
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
	}
}

// ExportCSV implements report.ReportService.
func (s *ReportServiceImpl) ExportCSV(ctx context.Context, filter attendance.ListFilter) (report.ExportResult, error) {
	if err := filter.Validate(); err != nil {
		return report.ExportResult{}, err
	}

	q := attendance.ListQuery{
		From:   filter.StartDate,
		To:     filter.EndDate,
		Status: filter.Status,
	}
	if filter.Employee != "" {
		emp, err := s.userRepo.GetByIDOrCode(ctx, filter.Employee)
		if err != nil {
			return report.ExportResult{}, err
		}
		q.UserID = emp.ID
	}

	records, err := s.attendanceRepo.ListAll(ctx, q)
	if err != nil {
		return report.ExportResult{}, fmt.Errorf("failed to list records for export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return report.ExportResult{}, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(s.row(rec)); err != nil {
			return report.ExportResult{}, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return report.ExportResult{}, fmt.Errorf("failed to flush csv: %w", err)
	}

	return report.ExportResult{
		Filename:    fmt.Sprintf("attendance-export-%s.csv", s.clk.Now().Format("20060102-150405")),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

func (s *ReportServiceImpl) row(rec attendance.Record) []string {
	checkOut := ""
	if rec.CheckOutTime != nil {
		checkOut = rec.CheckOutTime.In(s.clk.Location()).Format(exportTimeLayout)
	}
	return []string{
		rec.Date,
		deref(rec.EmployeeCode),
		deref(rec.EmployeeName),
		deref(rec.EmployeeEmail),
		deref(rec.Department),
		rec.CheckInTime.In(s.clk.Location()).Format(exportTimeLayout),
		checkOut,
		strconv.FormatFloat(rec.TotalHours, 'f', 2, 64),
		string(rec.Status),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
