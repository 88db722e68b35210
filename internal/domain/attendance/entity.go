package attendance

import (
	"time"
)

// Record is one employee's attendance entry for one calendar day.
// At most one record exists per (user, date); the database enforces it.
type Record struct {
	ID           string
	UserID       string
	Date         string // YYYY-MM-DD in the business zone
	CheckInTime  time.Time
	CheckOutTime *time.Time
	Status       DayStatus
	TotalHours   float64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined user fields, populated by listing queries only
	EmployeeName  *string
	EmployeeEmail *string
	EmployeeCode  *string
	Department    *string
}
