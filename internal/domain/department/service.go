package department

import "context"

type DepartmentService interface {
	// List returns the active department catalog.
	List(ctx context.Context) ([]DepartmentResponse, error)

	// Create adds a department to the catalog.
	Create(ctx context.Context, req CreateRequest) (DepartmentResponse, error)
}
