package models

import "fmt"

// Role is the access level the authentication service checks a session
// token against.
type Role int

const (
	RoleStudent Role = 0
	RoleTeacher Role = 1
)

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleTeacher:
		return "teacher"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole maps a role name as issued by the identity provider to a Role.
func ParseRole(name string) (Role, bool) {
	switch name {
	case "student":
		return RoleStudent, true
	case "teacher":
		return RoleTeacher, true
	default:
		return 0, false
	}
}
