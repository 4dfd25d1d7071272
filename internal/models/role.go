package models

import "strings"

type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleFaculty:
		return RoleFaculty, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// IsStaff reports whether the role may read the student directory.
func (r Role) IsStaff() bool {
	return r == RoleFaculty || r == RoleAdmin
}

func (r Role) String() string { return string(r) }
