package dashboard

import (
	"context"
)

// DashboardService defines the aggregation entry points consumed by the
// HTTP layer. All output is recomputed per request; nothing here has
// identity or lifecycle of its own.
type DashboardService interface {
	// Manager builds the organization-wide dashboard for today and the
	// current month.
	Manager(ctx context.Context) (ManagerDashboardResponse, error)

	// EmployeeOverview builds one employee's personal dashboard.
	EmployeeOverview(ctx context.Context, userID string) (EmployeeOverviewResponse, error)

	// OrgSummary is the compact today + month headline block.
	OrgSummary(ctx context.Context) (OrgSummaryResponse, error)

	// DepartmentStats computes per-department capacity vs presence for a
	// daily, weekly, monthly or yearly period containing date (empty
	// date means today).
	DepartmentStats(ctx context.Context, periodType, date string) ([]DepartmentSlice, error)
}
