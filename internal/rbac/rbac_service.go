package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"

	"go-leavehub/internal/domain"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

// rolePolicies is the static permission table. HR and DIRECTOR share
// the administrative surface; EMPLOYEE is limited to self-service.
var rolePolicies = [][3]string{
	{domain.RoleEmployee, "leave_type", "read"},
	{domain.RoleEmployee, "leave_scheme", "read"},
	{domain.RoleEmployee, "scheme_assignment", "read"},
	{domain.RoleEmployee, "leave_balance", "read"},
	{domain.RoleEmployee, "leave_application", "read"},
	{domain.RoleEmployee, "leave_application", "create"},
	{domain.RoleEmployee, "leave_application", "update"},
	{domain.RoleEmployee, "leave_application", "cancel"},
}

var adminResources = map[string][]string{
	"leave_type":        {"read", "create", "update", "delete"},
	"leave_scheme":      {"read", "create", "update", "delete"},
	"scheme_assignment": {"read", "create", "update", "delete"},
	"leave_balance":     {"read", "populate"},
	"leave_application": {"read", "create", "update", "approve", "cancel", "delete"},
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	s := &service{enforcer: enforcer}
	if err := s.seedPolicies(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) seedPolicies() error {
	for _, p := range rolePolicies {
		if _, err := s.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	for _, admin := range []string{domain.RoleHR, domain.RoleDirector} {
		for resource, actions := range adminResources {
			for _, action := range actions {
				if _, err := s.enforcer.AddPolicy(admin, resource, action); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(req.Role, req.Resource, req.Action)
}
