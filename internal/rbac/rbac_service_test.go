package rbac_test

import (
	"testing"

	"go-madrasa/internal/domain"
	"go-madrasa/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func TestEnforce_RoleMatrix(t *testing.T) {
	svc, err := rbac.NewService()
	assert.NoError(t, err)

	cases := []struct {
		name     string
		role     domain.Role
		resource string
		action   string
		allowed  bool
	}{
		{"admin pays payroll", domain.RoleAdmin, "payroll", "pay", true},
		{"super admin inherits admin", domain.RoleSuperAdmin, "payroll", "pay", true},
		{"controller reads payroll", domain.RoleController, "payroll", "read", true},
		{"controller cannot pay", domain.RoleController, "payroll", "pay", false},
		{"teacher records attendance", domain.RoleTeacher, "attendance", "record", true},
		{"teacher cannot edit rates", domain.RoleTeacher, "rates", "write", false},
		{"registral writes billing", domain.RoleRegistral, "billing", "write", true},
		{"registral cannot read payroll", domain.RoleRegistral, "payroll", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				Role:     tc.role,
				SchoolID: "school-1",
				Resource: tc.resource,
				Action:   tc.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestEnforce_UnknownRoleRejected(t *testing.T) {
	svc, err := rbac.NewService()
	assert.NoError(t, err)

	_, err = svc.Enforce(domain.EnforceRequest{
		Role:     domain.Role("hacker"),
		SchoolID: "school-1",
		Resource: "payroll",
		Action:   "read",
	})
	assert.Error(t, err)
}
