package rbac

import (
	"fmt"
	"sync"

	"go-madrasa/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

// NewService builds an enforcer over the static role policy. The policy is
// derived from the closed role set once at startup; there is no DB-backed
// policy to reload per request.
func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, role := range domain.AllRoles() {
		for _, p := range permissionsFor(role) {
			if _, err := enforcer.AddPolicy(role.String(), p.Resource, p.Action); err != nil {
				return nil, err
			}
		}
	}

	// super_admin gets everything admin gets, plus its own extras.
	if _, err := enforcer.AddGroupingPolicy(
		domain.RoleSuperAdmin.String(),
		domain.RoleAdmin.String(),
	); err != nil {
		return nil, err
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if !req.Role.Valid() {
		return false, fmt.Errorf("unknown role: %q", req.Role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(req.Role.String(), req.Resource, req.Action)
}
