package department

import "time"

// Department is a catalog entry. User.Department is free text matched
// against this catalog by name; membership is not versioned.
type Department struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
