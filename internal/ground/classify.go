// Package ground turns a lifted task plus its reachability model into
// a fully ground task: concrete actions, concrete derived-predicate
// rules, and a concrete goal.
package ground

import (
	"sort"

	"groundwork/internal/pddl"
)

// Classification partitions the predicates referenced by action
// preconditions and effects into fluent (changed by some effect or
// produced by some axiom) and static (never changed). A predicate that
// is both written and read is fluent. Goal-only predicates are
// intentionally outside the universe: the classification's consumers
// (diagnostics and goal pruning) only need schema-referenced
// predicates, and goal pruning re-derives fluent facts from the model.
type Classification struct {
	Fluent map[string]struct{}
	Static map[string]struct{}
}

// Classify computes the partition from schema structure alone. It is
// computed once per grounding run and never consults the model or the
// goal.
func Classify(task *pddl.Task) Classification {
	all := make(map[string]struct{})
	fluent := make(map[string]struct{})

	for _, action := range task.Actions {
		for _, eff := range action.Effects {
			fluent[eff.Literal.Atom.Predicate] = struct{}{}
			all[eff.Literal.Atom.Predicate] = struct{}{}
		}
		for _, name := range pddl.ConditionPredicates(action.Precondition) {
			all[name] = struct{}{}
		}
	}
	for _, axiom := range task.Axioms {
		fluent[axiom.Name] = struct{}{}
	}

	static := make(map[string]struct{})
	for name := range all {
		if _, ok := fluent[name]; !ok {
			static[name] = struct{}{}
		}
	}
	return Classification{Fluent: fluent, Static: static}
}

func (c Classification) IsFluent(predicate string) bool {
	_, ok := c.Fluent[predicate]
	return ok
}

func (c Classification) IsStatic(predicate string) bool {
	_, ok := c.Static[predicate]
	return ok
}

// FluentNames returns the fluent predicates in sorted order.
func (c Classification) FluentNames() []string {
	return sortedNames(c.Fluent)
}

// StaticNames returns the static predicates in sorted order.
func (c Classification) StaticNames() []string {
	return sortedNames(c.Static)
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
