package postgresql

import (
	"context"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/dashboard"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}

// DailyPresence implements dashboard.DashboardRepository.
func (r *dashboardRepository) DailyPresence(ctx context.Context, from, to string) (map[string]dashboard.DayPresence, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT date::text,
		       COUNT(*) AS present,
		       COUNT(*) FILTER (WHERE status = 'late') AS late
		FROM attendance_records
		WHERE date BETWEEN $1::date AND $2::date
		GROUP BY date
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily presence: %w", err)
	}
	defer rows.Close()

	result := make(map[string]dashboard.DayPresence)
	for rows.Next() {
		var date string
		var p dashboard.DayPresence
		if err := rows.Scan(&date, &p.Present, &p.Late); err != nil {
			return nil, fmt.Errorf("failed to scan daily presence: %w", err)
		}
		result[date] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily presence: %w", err)
	}
	return result, nil
}

// EmployeeHours implements dashboard.DashboardRepository.
func (r *dashboardRepository) EmployeeHours(ctx context.Context, from, to string) ([]dashboard.EmployeeHoursRow, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT a.user_id, u.name, u.employee_code, u.department,
		       SUM(a.total_hours) AS total_hours,
		       COUNT(*) AS days
		FROM attendance_records a
		JOIN users u ON u.id = a.user_id
		WHERE a.date BETWEEN $1::date AND $2::date
		  AND a.total_hours > 0
		GROUP BY a.user_id, u.name, u.employee_code, u.department
		ORDER BY total_hours DESC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee hours: %w", err)
	}
	defer rows.Close()

	var result []dashboard.EmployeeHoursRow
	for rows.Next() {
		var row dashboard.EmployeeHoursRow
		if err := rows.Scan(&row.UserID, &row.Name, &row.EmployeeCode, &row.Department, &row.TotalHours, &row.Days); err != nil {
			return nil, fmt.Errorf("failed to scan employee hours: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employee hours: %w", err)
	}
	return result, nil
}

// MonthHours implements dashboard.DashboardRepository.
func (r *dashboardRepository) MonthHours(ctx context.Context, from, to string) (dashboard.MonthHoursRow, error) {
	q := GetQuerier(ctx, r.db)

	var row dashboard.MonthHoursRow
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_hours), 0), COUNT(*)
		FROM attendance_records
		WHERE date BETWEEN $1::date AND $2::date
		  AND total_hours > 0
	`, from, to).Scan(&row.TotalHours, &row.Count)
	if err != nil {
		return dashboard.MonthHoursRow{}, fmt.Errorf("failed to get month hours: %w", err)
	}
	return row, nil
}

// CountRecords implements dashboard.DashboardRepository.
func (r *dashboardRepository) CountRecords(ctx context.Context, from, to string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendance_records
		WHERE date BETWEEN $1::date AND $2::date
	`, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// PresentByDepartment implements dashboard.DashboardRepository.
func (r *dashboardRepository) PresentByDepartment(ctx context.Context, from, to string) (map[string]int, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT COALESCE(u.department, 'Unknown'), COUNT(*)
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.date BETWEEN $1::date AND $2::date
		GROUP BY u.department
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get presence by department: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var dept string
		var count int
		if err := rows.Scan(&dept, &count); err != nil {
			return nil, fmt.Errorf("failed to scan presence by department: %w", err)
		}
		result[dept] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate presence by department: %w", err)
	}
	return result, nil
}
