package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const recordColumns = `
	a.id, a.user_id, a.date::text, a.check_in_time, a.check_out_time,
	a.status, a.total_hours, a.created_at, a.updated_at`

const joinedColumns = recordColumns + `,
	u.name AS employee_name, u.email AS employee_email,
	u.employee_code, u.department`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.Status, &rec.TotalHours, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func scanJoinedRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.Status, &rec.TotalHours, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.EmployeeEmail, &rec.EmployeeCode, &rec.Department,
	)
	return rec, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendance_records (id, user_id, date, check_in_time, check_out_time, status, total_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID, rec.UserID, rec.Date, rec.CheckInTime, rec.CheckOutTime, rec.Status, rec.TotalHours,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		// The (user_id, date) unique constraint arbitrates concurrent
		// check-ins; the loser surfaces as a domain error, not a crash.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByUserAndDate(ctx context.Context, userID, date string) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recordColumns + `
		FROM attendance_records a
		WHERE a.user_id = $1 AND a.date = $2::date
		LIMIT 1`

	rec, err := scanRecord(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record for that day
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}
	return &rec, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendance_records
		SET check_out_time = $2, status = $3, total_hours = $4, updated_at = NOW()
		WHERE id = $1
	`, rec.ID, rec.CheckOutTime, rec.Status, rec.TotalHours)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// ListByUserRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByUserRange(ctx context.Context, userID, from, to string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recordColumns + `
		FROM attendance_records a
		WHERE a.user_id = $1 AND a.date BETWEEN $2::date AND $3::date
		ORDER BY a.date DESC`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by range: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows, scanRecord)
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByUser(ctx context.Context, userID string, page, limit int) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance_records WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := `SELECT ` + recordColumns + `
		FROM attendance_records a
		WHERE a.user_id = $1
		ORDER BY a.date DESC
		LIMIT $2 OFFSET $3`

	rows, err := q.Query(ctx, query, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance by user: %w", err)
	}
	defer rows.Close()

	records, err := collectRecords(rows, scanRecord)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func buildListQuery(q attendance.ListQuery) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if q.UserID != "" {
		add("a.user_id = $%d", q.UserID)
	}
	if q.From != "" {
		add("a.date >= $%d::date", q.From)
	}
	if q.To != "" {
		add("a.date <= $%d::date", q.To)
	}
	if q.Status != "" {
		add("a.status = $%d", q.Status)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	return where, args
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, lq attendance.ListQuery) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	where, args := buildListQuery(lq)

	var total int64
	if err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendance_records a`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := `SELECT ` + joinedColumns + `
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.user_id` + where + `
		ORDER BY a.date DESC, a.created_at DESC` +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, lq.Limit, (lq.Page-1)*lq.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records, err := collectRecords(rows, scanJoinedRecord)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListAll implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListAll(ctx context.Context, lq attendance.ListQuery) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	where, args := buildListQuery(lq)

	query := `SELECT ` + joinedColumns + `
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.user_id` + where + `
		ORDER BY a.date DESC, a.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows, scanJoinedRecord)
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDate(ctx context.Context, date string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + joinedColumns + `
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.date = $1::date
		ORDER BY a.check_in_time`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows, scanJoinedRecord)
}

func collectRecords(rows pgx.Rows, scan func(pgx.Row) (attendance.Record, error)) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}
	return records, nil
}
