package attendance

import "errors"

// Attendance domain errors
var (
	// Lifecycle errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNoCheckInFound    = errors.New("you have not checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
