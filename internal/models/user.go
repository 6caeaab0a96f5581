package models

import "strings"

// Role identifies which dashboard and menu a user is allowed to see.
type Role string

// Supported roles, ordered from least to most privileged.
const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// ParseRole normalises a role string. "instructor" is accepted as a teacher alias.
func ParseRole(value string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "student":
		return RoleStudent, true
	case "teacher", "instructor":
		return RoleTeacher, true
	case "admin":
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Promoted returns the next role in the student -> teacher -> admin ladder.
// Admin is the ceiling and promotes to itself.
func (r Role) Promoted() Role {
	switch r {
	case RoleStudent:
		return RoleTeacher
	case RoleTeacher, RoleAdmin:
		return RoleAdmin
	default:
		return r
	}
}

// UserStatus is the lifecycle status shown on the admin dashboard.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusPending   UserStatus = "pending"
	UserStatusSuspended UserStatus = "suspended"
)

// User is a member of the seed directory used by the login shell.
type User struct {
	ID        string `gorm:"primaryKey;size:32" json:"id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Email     string `gorm:"size:255;index;not null" json:"email"`
	Role      Role   `gorm:"size:16;not null" json:"role"`
	Avatar    string `gorm:"size:512" json:"avatar,omitempty"`
	CreatedOn string `gorm:"size:10" json:"created_at"`
}

// ManagedUser is a user row on the admin dashboard.
type ManagedUser struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	JoinDate     string     `json:"join_date"`
	Status       UserStatus `json:"status"`
	PasswordHash string     `json:"-"`
}
