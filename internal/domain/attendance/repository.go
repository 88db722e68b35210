package attendance

import (
	"context"
)

// ListQuery is the repository-level filter: Employee has already been
// resolved to a user ID by the service.
type ListQuery struct {
	UserID string
	From   string
	To     string
	Status string
	Page   int
	Limit  int
}

// AttendanceRepository defines data access for attendance records.
type AttendanceRepository interface {
	// Create inserts a new record. A duplicate (user, date) pair is
	// reported as ErrAlreadyCheckedIn so concurrent check-ins lose
	// cleanly (the unique constraint is the arbiter, not the app).
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByUserAndDate returns the record for one employee on one date,
	// or nil when none exists.
	GetByUserAndDate(ctx context.Context, userID, date string) (*Record, error)

	// Update persists checkout fields, status and hours of an existing record
	Update(ctx context.Context, rec Record) error

	// ListByUserRange returns an employee's records with date in [from, to],
	// newest first.
	ListByUserRange(ctx context.Context, userID, from, to string) ([]Record, error)

	// ListByUser returns an employee's records paginated, newest first,
	// with the total count.
	ListByUser(ctx context.Context, userID string, page, limit int) ([]Record, int64, error)

	// List returns records across employees matching the query, paginated,
	// newest first, joined with directory fields.
	List(ctx context.Context, q ListQuery) ([]Record, int64, error)

	// ListAll is List without pagination, for exports.
	ListAll(ctx context.Context, q ListQuery) ([]Record, error)

	// ListByDate returns every employee's record for one date, joined
	// with directory fields.
	ListByDate(ctx context.Context, date string) ([]Record, error)
}
