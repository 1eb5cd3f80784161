package services

import (
	"fmt"

	"github.com/casbin/casbin/v2"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// enforcerAdapter narrows *casbin.Enforcer to the slice of it the policy
// service needs, so tests can substitute a mock.
type enforcerAdapter struct {
	e *casbin.Enforcer
}

func (a *enforcerAdapter) AddPolicy(params ...interface{}) (bool, error) {
	return a.e.AddPolicy(params...)
}

func (a *enforcerAdapter) RemovePolicy(params ...interface{}) (bool, error) {
	return a.e.RemovePolicy(params...)
}

func (a *enforcerAdapter) Enforce(rvals ...interface{}) (bool, error) {
	return a.e.Enforce(rvals...)
}

func (a *enforcerAdapter) GetPolicy() ([][]string, error) {
	return a.e.GetPolicy()
}

func (a *enforcerAdapter) SavePolicy() error {
	return a.e.SavePolicy()
}

// PolicyServiceImpl manages runtime authorization rules. Mutations are
// written through to the policy store immediately so every instance sharing
// the adapter sees them.
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a policy service over the shared enforcer
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: &enforcerAdapter{e: enforcer}}
}

// NewPolicyServiceWithEnforcer accepts the narrowed interface directly (tests)
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// AddPolicy grants (role, resource, action) and persists the rule set
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	if _, err := p.enforcer.AddPolicy(role, resource, action); err != nil {
		return fmt.Errorf("add policy %s %s %s: %w", role, resource, action, err)
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy revokes (role, resource, action) and persists the rule set
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	if _, err := p.enforcer.RemovePolicy(role, resource, action); err != nil {
		return fmt.Errorf("remove policy %s %s %s: %w", role, resource, action, err)
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission evaluates a request triple against the loaded rules
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce(role, resource, action)
}

// GetPolicies returns the current rule set as (role, resource, action) rows
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, _ := p.enforcer.GetPolicy()
	return policies
}
