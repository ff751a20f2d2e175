package user

import "time"

// Roles
const (
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
	RoleTutor   = "tutor"
	RoleStudent = "student"
	RoleParent  = "parent"
)

// IsStaff reports whether role grants unrestricted catalog access.
func IsStaff(role string) bool {
	return role == RoleOwner || role == RoleAdmin
}

type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      string    `json:"role" db:"role"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // UTC
}

func (u User) IsStaff() bool {
	return IsStaff(u.Role)
}
