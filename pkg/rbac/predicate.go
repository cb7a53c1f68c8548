package rbac

import "slices"

// Field names a filterable role binding column.
type Field string

const (
	FieldScope  Field = "scope"
	FieldUserID Field = "user_id"
	FieldRoleID Field = "role_id"
	FieldOrgID  Field = "org_id"
)

// Clause matches a single field against one value (equality) or several
// (set membership). The global org is represented by the empty string.
type Clause struct {
	Field  Field
	Values []string
}

// Eq builds an equality clause.
func Eq(field Field, value string) Clause {
	return Clause{Field: field, Values: []string{value}}
}

// In builds a set-membership clause.
func In(field Field, values ...string) Clause {
	return Clause{Field: field, Values: values}
}

// Cond is a conjunction of clauses: all must match.
type Cond []Clause

// And builds a conjunction.
func And(clauses ...Clause) Cond { return Cond(clauses) }

// Predicate is a disjunction of conditions: at least one must match. It is
// the filter contract shared by every Store implementation; the memory store
// evaluates it in-process, the Postgres store compiles it to a WHERE clause.
type Predicate []Cond

// Or builds a disjunction.
func Or(conds ...Cond) Predicate { return Predicate(conds) }

// and narrows the predicate by appending extra clauses to every condition,
// i.e. P AND (c1 AND c2 ...) in distributed form.
func (p Predicate) and(clauses ...Clause) Predicate {
	out := make(Predicate, 0, len(p))
	for _, cond := range p {
		merged := make(Cond, 0, len(cond)+len(clauses))
		merged = append(merged, cond...)
		merged = append(merged, clauses...)
		out = append(out, merged)
	}
	return out
}

// Match evaluates the predicate against a row exposed via a field getter.
// An empty predicate matches everything.
func (p Predicate) Match(get func(Field) string) bool {
	if len(p) == 0 {
		return true
	}
	for _, cond := range p {
		if cond.match(get) {
			return true
		}
	}
	return false
}

func (c Cond) match(get func(Field) string) bool {
	for _, clause := range c {
		if !slices.Contains(clause.Values, get(clause.Field)) {
			return false
		}
	}
	return true
}
