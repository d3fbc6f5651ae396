package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser       Role = "user"
	RolePremium    Role = "premium"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// rolePermissions is the fixed lookup table behind HasPermission.
var rolePermissions = map[Role][]string{
	RoleUser:       {"project:own", "cart:own", "order:own", "suggestion:create"},
	RolePremium:    {"project:own", "cart:own", "order:own", "suggestion:create", "font:premium"},
	RoleAdmin:      {"project:own", "cart:own", "order:own", "suggestion:create", "font:premium", "catalog:manage", "user:manage", "suggestion:manage", "stats:read"},
	RoleSuperAdmin: {"project:own", "cart:own", "order:own", "suggestion:create", "font:premium", "catalog:manage", "user:manage", "suggestion:manage", "stats:read", "user:impersonate"},
}

type User struct {
	ID        uuid.UUID
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

func (u *User) HasPermission(name string) bool {
	for _, p := range rolePermissions[u.Role] {
		if p == name {
			return true
		}
	}
	return false
}
