package domain

// Role is the closed set of dashboard roles. Authorization decisions switch
// exhaustively over this set; an unknown role string never reaches the
// enforcer.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleController Role = "controller"
	RoleTeacher    Role = "teacher"
	RoleRegistral  Role = "registral"
)

// ParseRole maps a raw claim value onto the closed role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin, RoleController, RoleTeacher, RoleRegistral:
		return Role(s), true
	default:
		return "", false
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleController, RoleTeacher, RoleRegistral:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

// AllRoles is used when deriving the static policy set.
func AllRoles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleController, RoleTeacher, RoleRegistral}
}

type EnforceRequest struct {
	Role     Role   `json:"role" binding:"required"`
	SchoolID string `json:"school_id" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
