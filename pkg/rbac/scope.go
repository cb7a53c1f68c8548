package rbac

// Scope classifies permissions, roles and bindings as either global
// ("system") or organization-local ("org").
type Scope string

const (
	ScopeSystem Scope = "system"
	ScopeOrg    Scope = "org"
)

// Valid reports whether s is a known scope value.
func (s Scope) Valid() bool {
	return s == ScopeSystem || s == ScopeOrg
}

func (s Scope) String() string {
	return string(s)
}
