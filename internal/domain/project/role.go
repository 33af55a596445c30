package project

// Role represents a participant's role within a project. Roles live embedded
// in the project document, so they serialize as plain strings.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"

	// RoleNone is returned when a user is not a participant of a project.
	RoleNone Role = ""
)

// IsValid checks if the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	default:
		return false
	}
}

// CanEdit reports whether the role may mutate categories, transactions and events
func (r Role) CanEdit() bool {
	return r == RoleAdmin || r == RoleEditor
}

// CanAdminister reports whether the role may manage participants and project settings
func (r Role) CanAdminister() bool {
	return r == RoleAdmin
}

// RoleFromString converts a string to a Role
func RoleFromString(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}
