package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1000bang/vacation-api-sub001/internal/domain"
	"github.com/1000bang/vacation-api-sub001/internal/rbac"
	"github.com/1000bang/vacation-api-sub001/internal/rbac/infra"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()

	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc, err := rbac.NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"team leader decides approvals", string(domain.RoleTeamLeader), "approval", "decide", true},
		{"division head decides approvals", string(domain.RoleDivisionHead), "approval", "decide", true},
		{"admin inherits the decide grant", string(domain.RoleAdmin), "approval", "decide", true},
		{"admin reads policies", string(domain.RoleAdmin), "rbac", "read", true},
		{"team leader cannot read policies", string(domain.RoleTeamLeader), "rbac", "read", false},
		{"plain employee cannot decide", string(domain.RoleNone), "approval", "decide", false},
		{"unknown role is denied", "INTERN", "approval", "decide", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestRBACService_Policies(t *testing.T) {
	svc := newService(t)

	policies := svc.Policies()
	assert.NotEmpty(t, policies)

	// The returned slice is a copy; mutating it must not leak back.
	policies[0].Role = "MUTATED"
	assert.NotEqual(t, "MUTATED", svc.Policies()[0].Role)
}
