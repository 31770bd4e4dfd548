package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleStaff      UserRole = "STAFF"
	RoleInstructor UserRole = "INSTRUCTOR"
	RoleStudent    UserRole = "STUDENT"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

// User represents an application user stored in the users table.
type User struct {
	ID           int64      `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"fullName"`
	Role         UserRole   `db:"role" json:"role"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	PageRequest
	Role   *UserRole
	Active *bool
	Search string
}

// CreateUserRequest is the payload for registering a back-office user.
type CreateUserRequest struct {
	Email    string   `json:"email" validate:"required,email,max=255"`
	Password string   `json:"password" validate:"required,min=8,max=72"`
	FullName string   `json:"fullName" validate:"required,notblank,max=200"`
	Role     UserRole `json:"role" validate:"required,oneof=ADMIN STAFF INSTRUCTOR STUDENT"`
}

// UpdateUserRequest is the payload for changing a user. Password is optional.
type UpdateUserRequest struct {
	Email    string   `json:"email" validate:"required,email,max=255"`
	Password string   `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	FullName string   `json:"fullName" validate:"required,notblank,max=200"`
	Role     UserRole `json:"role" validate:"required,oneof=ADMIN STAFF INSTRUCTOR STUDENT"`
	Active   bool     `json:"active"`
}
