package department

import "context"

type DepartmentRepository interface {
	// ListActive retrieves all active departments ordered by name
	ListActive(ctx context.Context) ([]Department, error)

	// GetByName retrieves a department by exact name
	GetByName(ctx context.Context, name string) (Department, error)

	// Create inserts a new department
	Create(ctx context.Context, d Department) (Department, error)
}
