package infra

import "github.com/casbin/casbin/v2"

// NewEnforcer loads the RBAC model and the position policy from disk.
func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath, policyPath)
}
