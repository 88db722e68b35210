package dashboard

import (
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
)

// Trend day classification for the weekly chart.
const (
	TrendWorking = "Working"
	TrendHoliday = "Holiday"
	TrendNoData  = "No Data"
)

// Period types accepted by the department stats endpoint.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// ========== MANAGER DASHBOARD ==========

// StatsResponse is today's headline numbers. Present counts everyone who
// showed up (present, late or half-day records alike).
type StatsResponse struct {
	TotalEmployees int `json:"total_employees"`
	Present        int `json:"present"`
	Absent         int `json:"absent"`
	Late           int `json:"late"`
}

// TrendPoint is one day of the weekly chart. TotalEmployees is the
// reconstructed headcount as of that date, never less than Present.
type TrendPoint struct {
	Date           string `json:"date"`  // YYYY-MM-DD
	Label          string `json:"label"` // Mon, Tue, ...
	Present        int    `json:"present"`
	Late           int    `json:"late"`
	Absent         int    `json:"absent"`
	Status         string `json:"status"`
	TotalEmployees int    `json:"total_employees"`
}

// DepartmentSlice is one department's share of today's presence.
type DepartmentSlice struct {
	Name    string `json:"name"`
	Total   int    `json:"total"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

// Performer is one row of the hours-worked ranking.
type Performer struct {
	UserID       string  `json:"user_id"`
	Name         string  `json:"name"`
	EmployeeCode string  `json:"employee_code"`
	Department   string  `json:"department"`
	TotalHours   float64 `json:"total_hours"`
	AverageHours float64 `json:"average_hours"`
	Days         int     `json:"days"`
}

type ChartsResponse struct {
	WeeklyTrend []TrendPoint      `json:"weekly_trend"`
	Department  []DepartmentSlice `json:"department"`
}

type PerformersResponse struct {
	Top    []Performer `json:"top"`
	Bottom []Performer `json:"bottom"`
}

type MonthStats struct {
	TotalCheckIns int64 `json:"total_checkins"`
}

type ManagerDashboardResponse struct {
	Stats           StatsResponse      `json:"stats"`
	Charts          ChartsResponse     `json:"charts"`
	AbsentEmployees []user.Profile     `json:"absent_employees"`
	Month           MonthStats         `json:"month"`
	Performers      PerformersResponse `json:"performers"`
}

// ========== EMPLOYEE OVERVIEW ==========

type TodayOverview struct {
	Status string                     `json:"status"` // lifecycle state, see attendance.CheckState*
	Record *attendance.RecordResponse `json:"record"`
}

type MonthlyOverview struct {
	PresentDays  int     `json:"present_days"`
	TotalHours   float64 `json:"total_hours"`
	AverageHours float64 `json:"average_hours"`
}

type EmployeeOverviewResponse struct {
	Today     TodayOverview               `json:"today"`
	Last7Days []attendance.RecordResponse `json:"last_7_days"`
	Monthly   MonthlyOverview             `json:"monthly"`
}

// ========== ORG SUMMARY ==========

type OrgSummaryResponse struct {
	Today struct {
		Present int `json:"present"`
		Absent  int `json:"absent"`
	} `json:"today"`
	Month struct {
		CheckIns int64   `json:"checkins"`
		AvgHours float64 `json:"avg_hours"`
	} `json:"month"`
}
