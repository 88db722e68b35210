package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations.
// Callers pass an already-authorized user identity; the service never
// performs authorization itself.
type AttendanceService interface {
	// CheckIn opens today's record for the employee
	CheckIn(ctx context.Context, userID string) (RecordResponse, error)

	// CheckOut closes today's record and re-derives status and hours
	CheckOut(ctx context.Context, userID string) (RecordResponse, error)

	// Today reports where today's record is in its lifecycle
	Today(ctx context.Context, userID string) (TodayStatusResponse, error)

	// MonthlySummary aggregates one employee's month, reconstructing
	// implicit absences. Month is YYYY-MM; empty means current month.
	MonthlySummary(ctx context.Context, userID, month string) (MonthlySummaryResponse, error)

	// History returns the employee's own records, paginated
	History(ctx context.Context, userID string, f HistoryFilter) (ListResponse, error)

	// List returns records across employees (manager view)
	List(ctx context.Context, f ListFilter) (ListResponse, error)

	// EmployeeAttendance returns one employee's records by ID or code
	EmployeeAttendance(ctx context.Context, idOrCode, from, to string) (EmployeeAttendanceResponse, error)

	// TodayRoster lists every employee with their today lifecycle state,
	// optionally filtered by department.
	TodayRoster(ctx context.Context, dept string) ([]RosterEntry, error)
}
