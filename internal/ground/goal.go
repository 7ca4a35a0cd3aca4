package ground

import "groundwork/internal/pddl"

// InstantiateGoal grounds the goal condition against the initial facts
// and the fluent-fact projection. The goal is already variable-free,
// so each literal instantiates to itself, with one exception: a
// literal over a static atom (one outside the fluent projection) has
// its truth fixed by the initial state, and a refuted one makes the
// whole goal unsatisfiable. That is a controlled outcome reported
// through the second return value, never an error, so callers can
// report "no plan exists" without searching. A nil goal instantiates
// to the empty conjunction.
func InstantiateGoal(goal pddl.Condition, initFacts, fluentFacts pddl.AtomSet) ([]pddl.Literal, bool) {
	if goal == nil {
		return []pddl.Literal{}, false
	}
	literals := []pddl.Literal{}
	for _, lit := range pddl.ConditionLiterals(goal) {
		if !fluentFacts.Contains(lit.Atom) {
			if lit.Negated == initFacts.Contains(lit.Atom) {
				return nil, true
			}
		}
		literals = append(literals, pddl.Literal{Atom: lit.Atom, Negated: lit.Negated})
	}
	return literals, false
}
