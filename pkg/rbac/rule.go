package rbac

import (
	"fmt"
	"strings"
)

// ruleFields is the number of fields every permission rule tuple must have:
// app label, resource type, comma-joined action set, alias.
const ruleFields = 4

// Wildcard matches any value in a rule component.
const Wildcard = "*"

// Rule is a single permission filter tuple. Actions is either a
// comma-joined verb set ("view,connect") or the wildcard.
type Rule struct {
	App      string
	Resource string
	Actions  string
	Alias    string
}

// parseRule validates that a raw tuple has exactly four fields.
func parseRule(raw []string) (Rule, error) {
	if len(raw) != ruleFields {
		return Rule{}, fmt.Errorf("rule %v has %d fields, want %d", raw, len(raw), ruleFields)
	}
	return Rule{App: raw[0], Resource: raw[1], Actions: raw[2], Alias: raw[3]}, nil
}

// Matches reports whether the rule covers the given permission: app and
// resource must be equal (or wildcarded) and the permission's action must be
// in the rule's action set, or the action set is the wildcard.
func (r Rule) Matches(p Permission) bool {
	if r.App != Wildcard && r.App != p.App {
		return false
	}
	if r.Resource != Wildcard && r.Resource != p.Resource {
		return false
	}
	return r.matchesAction(p.Action)
}

func (r Rule) matchesAction(action string) bool {
	if r.Actions == Wildcard {
		return true
	}
	for _, a := range strings.Split(r.Actions, ",") {
		if strings.TrimSpace(a) == action {
			return true
		}
	}
	return false
}

// RuleSet is a named bundle of rules used as an include or exclude filter.
type RuleSet []Rule

// Matches reports whether any rule in the set covers the permission.
func (rs RuleSet) Matches(p Permission) bool {
	for _, r := range rs {
		if r.Matches(p) {
			return true
		}
	}
	return false
}

// parseRules converts raw tuple tables into a RuleSet, collecting every
// malformed entry into a single error so operators see all of them at once.
func parseRules(raw [][]string) (RuleSet, []error) {
	rules := make(RuleSet, 0, len(raw))
	var errs []error
	for _, entry := range raw {
		rule, err := parseRule(entry)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rules = append(rules, rule)
	}
	return rules, errs
}
