package model

import (
	"fmt"
	"strings"

	"groundwork/internal/pddl"
)

// Compute runs a delete-relaxation fixpoint over the lifted task and
// returns the reachability model: every atom derivable when delete
// effects and negative conditions are ignored, a binding fact for
// every schema whose positive condition atoms are all derivable, and
// the goal sentinel when the goal's positive literals are. The result
// is a sound over-approximation of true reachability.
func Compute(task *pddl.Task) (Model, error) {
	objectsByType, err := pddl.ObjectsByType(task.Objects, task.Types)
	if err != nil {
		return nil, fmt.Errorf("computing model: %w", err)
	}

	known := pddl.NewAtomSet()
	var facts Model

	for _, element := range task.Init {
		atom, ok := element.(pddl.Atom)
		if !ok {
			continue
		}
		if !known.Contains(atom) {
			known.Add(atom)
			facts = append(facts, AtomFact{Atom: atom})
		}
	}

	// Type-membership atoms support explicit type-name conditions.
	// They stay out of the emitted model: they are not task facts.
	for typeName, objects := range objectsByType {
		for _, obj := range objects {
			known.Add(pddl.Atom{Predicate: typeName, Args: []string{obj}})
		}
	}

	seenActions := make(map[*pddl.Action]map[string]struct{})
	seenAxioms := make(map[*pddl.Axiom]map[string]struct{})

	for {
		changed := false

		for _, action := range task.Actions {
			pddl.EachBinding(action.Parameters, objectsByType, func(sub map[string]string, args []string) {
				if !relaxedSatisfied(action.Precondition, sub, known) {
					return
				}
				if markBinding(seenActions, action, args) {
					facts = append(facts, ActionFact{Action: action, Args: append([]string(nil), args...)})
					changed = true
				}
				for _, eff := range action.Effects {
					if deriveEffect(eff, sub, objectsByType, known, &facts) {
						changed = true
					}
				}
			})
		}

		for _, axiom := range task.Axioms {
			pddl.EachBinding(axiom.Parameters, objectsByType, func(sub map[string]string, args []string) {
				if !relaxedSatisfied(axiom.Condition, sub, known) {
					return
				}
				if markBinding(seenAxioms, axiom, args) {
					facts = append(facts, AxiomFact{Axiom: axiom, Args: append([]string(nil), args...)})
					changed = true
				}
				head := pddl.Atom{Predicate: axiom.Name, Args: append([]string(nil), args[:axiom.HeadArity]...)}
				if !known.Contains(head) {
					known.Add(head)
					facts = append(facts, AtomFact{Atom: head})
					changed = true
				}
			})
		}

		if !changed {
			break
		}
	}

	if task.Goal != nil && relaxedSatisfied(task.Goal, nil, known) {
		facts = append(facts, GoalReachableFact{})
	}
	return facts, nil
}

// relaxedSatisfied checks the positive literals of a condition against
// the derived atoms. Negative literals are ignored under the
// relaxation.
func relaxedSatisfied(cond pddl.Condition, sub map[string]string, known pddl.AtomSet) bool {
	for _, lit := range pddl.ConditionLiterals(cond) {
		if lit.Negated {
			continue
		}
		if !known.Contains(lit.Atom.Rename(sub)) {
			return false
		}
	}
	return true
}

// deriveEffect adds the effect's atom for every universal-parameter
// binding whose guard is relaxed-satisfiable. Delete effects derive
// nothing.
func deriveEffect(eff pddl.Effect, sub map[string]string, objectsByType map[string][]string, known pddl.AtomSet, facts *Model) bool {
	if eff.Literal.Negated {
		return false
	}
	changed := false
	derive := func(branchSub map[string]string) {
		if !relaxedSatisfied(eff.Condition, branchSub, known) {
			return
		}
		atom := eff.Literal.Atom.Rename(branchSub)
		if !known.Contains(atom) {
			known.Add(atom)
			*facts = append(*facts, AtomFact{Atom: atom})
			changed = true
		}
	}
	if len(eff.Parameters) == 0 {
		derive(sub)
		return changed
	}
	pddl.EachBinding(eff.Parameters, objectsByType, func(inner map[string]string, _ []string) {
		branchSub := make(map[string]string, len(sub)+len(inner))
		for name, obj := range sub {
			branchSub[name] = obj
		}
		for name, obj := range inner {
			branchSub[name] = obj
		}
		derive(branchSub)
	})
	return changed
}

func markBinding[S comparable](seen map[S]map[string]struct{}, schema S, args []string) bool {
	key := strings.Join(args, ",")
	if seen[schema] == nil {
		seen[schema] = make(map[string]struct{})
	}
	if _, ok := seen[schema][key]; ok {
		return false
	}
	seen[schema][key] = struct{}{}
	return true
}
