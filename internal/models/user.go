package models

import "gorm.io/gorm"

const (
	RoleAdmin     = "admin"
	RoleManager   = "pr_manager"
	RoleDeveloper = "developer"
)

type User struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:developer"`
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleDeveloper:
		return true
	}
	return false
}
