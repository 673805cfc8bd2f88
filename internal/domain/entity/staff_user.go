package entity

import "time"

// Roles del personal.
const (
	RoleCashier = "CASHIER"
	RoleManager = "MANAGER"
	RoleAdmin   = "ADMIN"
	RoleAuditor = "AUDITOR"
)

// StaffUser es un usuario interno con rol para RBAC.
type StaffUser struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
