package rbac

import "go-madrasa/internal/domain"

// Permission is a resource/action pair a role is allowed to perform.
type Permission struct {
	Resource string
	Action   string
}

// permissionsFor defines the static policy for every role. The switch is
// exhaustive over domain.Role so adding a role without deciding its policy
// fails loudly in review, not silently at runtime.
func permissionsFor(r domain.Role) []Permission {
	switch r {
	case domain.RoleSuperAdmin:
		// Inherits admin through a grouping policy; extras only here.
		return []Permission{
			{"schools", "read"},
			{"schools", "write"},
		}
	case domain.RoleAdmin:
		return []Permission{
			{"payroll", "read"},
			{"payroll", "write"},
			{"rates", "read"},
			{"rates", "write"},
			{"students", "read"},
			{"students", "write"},
			{"attendance", "read"},
			{"attendance", "record"},
			{"permissions", "read"},
			{"permissions", "approve"},
			{"billing", "read"},
			{"billing", "write"},
		}
	case domain.RoleController:
		return []Permission{
			{"payroll", "read"},
			{"students", "read"},
			{"students", "write"},
			{"attendance", "read"},
			{"attendance", "record"},
			{"permissions", "read"},
		}
	case domain.RoleTeacher:
		return []Permission{
			{"payroll", "read"},
			{"attendance", "read"},
			{"attendance", "record"},
			{"permissions", "read"},
			{"permissions", "submit"},
		}
	case domain.RoleRegistral:
		return []Permission{
			{"students", "read"},
			{"students", "write"},
			{"billing", "read"},
			{"billing", "write"},
		}
	default:
		return nil
	}
}
