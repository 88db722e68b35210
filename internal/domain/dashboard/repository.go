package dashboard

import (
	"context"
)

// DayPresence is the per-date aggregate behind the weekly trend: how many
// records exist on a date and how many of them are late.
type DayPresence struct {
	Present int
	Late    int
}

// EmployeeHoursRow is one employee's month of worked hours, only records
// with positive duration counted.
type EmployeeHoursRow struct {
	UserID       string
	Name         string
	EmployeeCode string
	Department   string
	TotalHours   float64
	Days         int
}

// MonthHoursRow aggregates hours across all employees for a range.
type MonthHoursRow struct {
	TotalHours float64
	Count      int64
}

// DashboardRepository defines the aggregate reads the dashboards are
// built from. Calendar classification stays out of SQL; these return raw
// counts keyed by date or department.
type DashboardRepository interface {
	// DailyPresence returns per-date present/late counts for dates in
	// [from, to]. Dates with no records are simply missing from the map.
	DailyPresence(ctx context.Context, from, to string) (map[string]DayPresence, error)

	// EmployeeHours returns per-employee hour totals over [from, to] for
	// records with positive duration, sorted by total hours descending.
	EmployeeHours(ctx context.Context, from, to string) ([]EmployeeHoursRow, error)

	// MonthHours sums hours and counts records with positive duration
	// over [from, to].
	MonthHours(ctx context.Context, from, to string) (MonthHoursRow, error)

	// CountRecords counts all records with date in [from, to].
	CountRecords(ctx context.Context, from, to string) (int64, error)

	// PresentByDepartment counts records in [from, to] grouped by the
	// employee's current department.
	PresentByDepartment(ctx context.Context, from, to string) (map[string]int, error)
}
