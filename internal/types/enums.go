package types

// User roles. A role is assigned at registration and is immutable afterwards.
const (
	RoleClient         = "client"
	RoleProjectManager = "project_manager"
	RoleDesigner       = "designer"
)

var ValidRoles = []string{RoleClient, RoleProjectManager, RoleDesigner}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
