package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"

	"github.com/1000bang/vacation-api-sub001/internal/domain"
)

// Policy grants one (role, resource, action) triple. Roles come from
// the JWT, so policies key on the role level, not on individual users.
type Policy struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// defaultPolicies is the static permission table. Approval decisions
// require an approver role; the admin role inherits both approver
// roles and additionally reads the policy table itself.
func defaultPolicies() []Policy {
	return []Policy{
		{Role: string(domain.RoleTeamLeader), Resource: "approval", Action: "decide"},
		{Role: string(domain.RoleDivisionHead), Resource: "approval", Action: "decide"},
		{Role: string(domain.RoleAdmin), Resource: "rbac", Action: "read"},
	}
}

// defaultGroupings makes ADMIN inherit every approver role's grants.
func defaultGroupings() [][2]string {
	return [][2]string{
		{string(domain.RoleAdmin), string(domain.RoleTeamLeader)},
		{string(domain.RoleAdmin), string(domain.RoleDivisionHead)},
	}
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
	Policies() []Policy
}

type service struct {
	enforcer *casbin.Enforcer
	policies []Policy
	mu       sync.Mutex
	logger   *zap.Logger
}

// NewService seeds the enforcer with the static policy table. It fails
// only on a broken model, never on an empty table.
func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	policies := defaultPolicies()
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p.Role, p.Resource, p.Action); err != nil {
			return nil, err
		}
	}
	for _, g := range defaultGroupings() {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	l.Info("rbac policies seeded", zap.Int("policies", len(policies)))
	return &service{enforcer: enforcer, policies: policies, logger: l}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce",
		zap.String("role", role),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Policies() []Policy {
	out := make([]Policy, len(s.policies))
	copy(out, s.policies)
	return out
}
