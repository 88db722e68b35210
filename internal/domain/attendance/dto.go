package attendance

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// CheckState describes where today's record is in its lifecycle. It is
// deliberately distinct from DayStatus: a record can hold status
// "present" while the employee is still checked in.
const (
	CheckStateNotCheckedIn = "not checked in"
	CheckStateCheckedIn    = "checked in"
	CheckStateCheckedOut   = "checked out"
)

type RecordResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Date         string  `json:"date"`
	CheckInTime  string  `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	Status       string  `json:"status"`
	TotalHours   float64 `json:"total_hours"`

	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	Department   *string `json:"department,omitempty"`
}

func (r Record) Response() RecordResponse {
	resp := RecordResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		Date:         r.Date,
		CheckInTime:  r.CheckInTime.Format(time.RFC3339),
		Status:       string(r.Status),
		TotalHours:   r.TotalHours,
		EmployeeName: r.EmployeeName,
		EmployeeCode: r.EmployeeCode,
		Department:   r.Department,
	}
	if r.CheckOutTime != nil {
		s := r.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &s
	}
	return resp
}

type TodayStatusResponse struct {
	Record *RecordResponse `json:"record"`
	Status string          `json:"status"`
}

type MonthlyStatistics struct {
	TotalPresent     int     `json:"total_present"`
	TotalLate        int     `json:"total_late"`
	TotalHalfDay     int     `json:"total_half_day"`
	TotalAbsent      int     `json:"total_absent"`
	TotalHoursWorked float64 `json:"total_hours_worked"`
}

type MonthlySummaryResponse struct {
	Month      string            `json:"month"` // YYYY-MM
	Today      *RecordResponse   `json:"today"`
	Last7Days  []RecordResponse  `json:"last_7_days"`
	Records    []RecordResponse  `json:"records"`
	Statistics MonthlyStatistics `json:"statistics"`
}

type HistoryFilter struct {
	Page  int
	Limit int
}

func (f *HistoryFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 30
	}
}

// ListFilter narrows the manager's all-records listing. Employee accepts
// either a user ID or an employee code.
type ListFilter struct {
	StartDate string
	EndDate   string
	Status    string
	Employee  string
	Page      int
	Limit     int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 200 {
		f.Limit = 50
	}
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != "" && !validator.IsValidDate(f.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD",
		})
	}
	if f.EndDate != "" && !validator.IsValidDate(f.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be YYYY-MM-DD",
		})
	}
	if f.StartDate != "" && f.EndDate != "" && !validator.IsValidDateRange(f.StartDate, f.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not precede start_date",
		})
	}
	if f.Status != "" && !validator.IsInSlice(f.Status, []string{
		string(StatusPresent), string(StatusLate), string(StatusHalfDay), string(StatusAbsent),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, late, half-day, absent",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

type EmployeeAttendanceResponse struct {
	Employee user.Profile     `json:"employee"`
	Count    int              `json:"count"`
	Records  []RecordResponse `json:"records"`
}

// RosterEntry is one employee's place on the manager's today view.
type RosterEntry struct {
	Employee user.Profile    `json:"employee"`
	Status   string          `json:"status"` // absent | checked-in | checked-out
	Record   *RecordResponse `json:"record"`
}
