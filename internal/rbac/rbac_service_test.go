package rbac

import (
	"testing"

	"out-of-office/internal/domain"
	"out-of-office/internal/rbac/infra"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/stretchr/testify/assert"
)

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	modelText := `[request_definition]
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

	m, err := model.NewModelFromString(modelText)
	assert.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	assert.NoError(t, err)

	_, err = e.AddPolicy("employee", "leave", "create")
	assert.NoError(t, err)
	_, err = e.AddPolicy("HR Manager", "approval", "decide")
	assert.NoError(t, err)
	_, err = e.AddGroupingPolicy("HR Manager", "employee")
	assert.NoError(t, err)
	_, err = e.AddGroupingPolicy("Developer", "employee")
	assert.NoError(t, err)

	return e
}

func TestService_Enforce(t *testing.T) {
	svc := NewService(newTestEnforcer(t))

	tests := []struct {
		name     string
		req      domain.EnforceRequest
		expected bool
	}{
		{
			name:     "developer inherits employee permission",
			req:      domain.EnforceRequest{EmployeeID: "emp-1", Position: "Developer", Resource: "leave", Action: "create"},
			expected: true,
		},
		{
			name:     "hr manager decides approvals",
			req:      domain.EnforceRequest{EmployeeID: "emp-2", Position: "HR Manager", Resource: "approval", Action: "decide"},
			expected: true,
		},
		{
			name:     "developer cannot decide approvals",
			req:      domain.EnforceRequest{EmployeeID: "emp-1", Position: "Developer", Resource: "approval", Action: "decide"},
			expected: false,
		},
		{
			name:     "unknown position has no permission",
			req:      domain.EnforceRequest{EmployeeID: "emp-3", Position: "Intern", Resource: "leave", Action: "create"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(tt.req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, allowed)
		})
	}
}

func TestService_EnforceShippedPolicy(t *testing.T) {
	e, err := infra.NewEnforcer("infra/model.conf", "infra/policy.csv")
	assert.NoError(t, err)
	svc := NewService(e)

	allowed, err := svc.Enforce(domain.EnforceRequest{Position: string(domain.PositionHRManager), Resource: "approval", Action: "decide"})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{Position: string(domain.PositionSupportSpecialist), Resource: "leave", Action: "toggle"})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{Position: string(domain.PositionProjectManager), Resource: "approval", Action: "decide"})
	assert.NoError(t, err)
	assert.False(t, allowed)
}
