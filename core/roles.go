package core

import "strings"

// Portal roles. Tokens are issued by the collaborator portal; this core only
// verifies them and gates routes.
const (
	// Admin
	RoleAdmin = "admin:"

	// Supervisor
	RoleSupervisor = "supervisor:"

	// Staff
	RoleStaff = "staff:"

	// Student
	RoleStudent          = "student:"
	RoleStudentLeader    = "student:leader"
	RoleStudentSecretary = "student:secretary"
)

// RolesStartWith reports whether any role carries the given portal prefix;
// the JWT claims derive their portal flags from it.
func RolesStartWith(roles []string, prefix string) bool {
	for _, role := range roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}
