package types

// User role values (names of the four seeded TypeUser rows)
const (
	RoleAdmin          = "admin"
	RoleManager        = "manager"
	RoleRepresentative = "representative"
	RoleViewer         = "viewer"
)

// Group classification values
const (
	GroupKindInternal = "internal"
	GroupKindExternal = "external"
)

// Valid role values for validation
var ValidRoles = []string{
	RoleAdmin, RoleManager, RoleRepresentative, RoleViewer,
}

var ValidGroupKinds = []string{
	GroupKindInternal, GroupKindExternal,
}

// Helper functions for validation
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsValidGroupKind(kind string) bool {
	for _, k := range ValidGroupKinds {
		if k == kind {
			return true
		}
	}
	return false
}
