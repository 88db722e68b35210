package user

import "errors"

// User domain errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmailExists           = errors.New("email already registered")
	ErrEmployeeCodeExists    = errors.New("employee code already exists")
	ErrManagerAccessRequired = errors.New("manager access required")
)
