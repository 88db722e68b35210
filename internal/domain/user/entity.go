package user

import (
	"time"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// User is one person in the directory. CreatedAt doubles as the hire
// date when dashboards reconstruct historical headcount.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeCode string
	Department   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public view of a user, safe to embed in responses.
type Profile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	EmployeeCode string `json:"employee_code"`
	Department   string `json:"department"`
	HireDate     string `json:"hire_date"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         string(u.Role),
		EmployeeCode: u.EmployeeCode,
		Department:   u.Department,
		HireDate:     u.CreatedAt.Format("2006-01-02"),
	}
}
