package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/rolekit/pkg/rbac"
)

func TestRuleMatches(t *testing.T) {
	t.Parallel()

	perm := rbac.Permission{App: "sessions", Resource: "session", Action: "connect"}

	tests := []struct {
		name string
		rule rbac.Rule
		want bool
	}{
		{
			name: "exact match",
			rule: rbac.Rule{App: "sessions", Resource: "session", Actions: "connect"},
			want: true,
		},
		{
			name: "action in comma set",
			rule: rbac.Rule{App: "sessions", Resource: "session", Actions: "view,connect,terminate"},
			want: true,
		},
		{
			name: "action not in set",
			rule: rbac.Rule{App: "sessions", Resource: "session", Actions: "view,terminate"},
			want: false,
		},
		{
			name: "wildcard app and resource",
			rule: rbac.Rule{App: rbac.Wildcard, Resource: rbac.Wildcard, Actions: "connect"},
			want: true,
		},
		{
			name: "wildcard actions",
			rule: rbac.Rule{App: "sessions", Resource: "session", Actions: rbac.Wildcard},
			want: true,
		},
		{
			name: "different app",
			rule: rbac.Rule{App: "users", Resource: "session", Actions: rbac.Wildcard},
			want: false,
		},
		{
			name: "different resource",
			rule: rbac.Rule{App: "sessions", Resource: "command", Actions: rbac.Wildcard},
			want: false,
		},
		{
			name: "spaces around actions tolerated",
			rule: rbac.Rule{App: "sessions", Resource: "session", Actions: "view, connect"},
			want: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.rule.Matches(perm))
		})
	}
}

func TestRuleSetMatches(t *testing.T) {
	t.Parallel()

	rs := rbac.RuleSet{
		{App: "audit", Resource: rbac.Wildcard, Actions: rbac.Wildcard},
		{App: "rbac", Resource: "menu", Actions: "view"},
	}

	assert.True(t, rs.Matches(rbac.Permission{App: "audit", Resource: "log", Action: "view"}))
	assert.True(t, rs.Matches(rbac.Permission{App: "rbac", Resource: "menu", Action: "view"}))
	assert.False(t, rs.Matches(rbac.Permission{App: "rbac", Resource: "role", Action: "view"}))
	assert.False(t, rbac.RuleSet(nil).Matches(rbac.Permission{App: "audit", Resource: "log", Action: "view"}))
}
