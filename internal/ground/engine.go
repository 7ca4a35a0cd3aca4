package ground

import (
	"fmt"
	"sort"

	"groundwork/internal/model"
	"groundwork/internal/pddl"
)

// Task is the grounded task handed to the downstream search stage. It
// is built once per grounding run and never mutated afterwards.
type Task struct {
	// RelaxedReachable records whether the model contains the
	// goal-reachable sentinel.
	RelaxedReachable bool
	// FluentFacts is the projection of the model onto ordinary fluent
	// predicates.
	FluentFacts pddl.AtomSet
	// Actions are the ground actions in model order.
	Actions []*pddl.GroundAction
	// Goal is the instantiated goal, nil when GoalImpossible is set.
	Goal []pddl.Literal
	// GoalImpossible marks a goal refuted by static initial facts; a
	// caller can report "no plan exists" without searching.
	GoalImpossible bool
	// Axioms are the ground axioms in a deterministic total order.
	Axioms []*pddl.GroundAxiom
	// ActionBindings and AxiomBindings map each schema object, by
	// identity, to its reachable parameter bindings. Schemas with no
	// reachable binding are absent.
	ActionBindings map[*pddl.Action][][]string
	AxiomBindings  map[*pddl.Axiom][][]string
}

// Instantiate grounds the lifted task against its reachability model.
// Every model fact whose subject is a schema contributes a reachable
// binding and, unless the instantiation is statically vacuous, a
// ground action or axiom. A fatal inconsistency between task and
// model (a binding shorter than the schema's parameter list, an
// unresolvable cost term) aborts the run with an error; no partial
// result is returned.
func Instantiate(task *pddl.Task, m model.Model) (*Task, error) {
	classification := Classify(task)
	initFacts, assignments := SplitInitial(task.Init)
	objectsByType, err := pddl.ObjectsByType(task.Objects, task.Types)
	if err != nil {
		return nil, fmt.Errorf("grounding: %w", err)
	}

	fluentFacts := pddl.NewAtomSet()
	for _, fact := range m {
		if atomFact, ok := fact.(model.AtomFact); ok && classification.IsFluent(atomFact.Atom.Predicate) {
			fluentFacts.Add(atomFact.Atom)
		}
	}

	result := &Task{
		FluentFacts:    fluentFacts,
		ActionBindings: make(map[*pddl.Action][][]string),
		AxiomBindings:  make(map[*pddl.Axiom][][]string),
	}

	for _, fact := range m {
		switch f := fact.(type) {
		case model.ActionFact:
			// The binding is exactly the first len(Parameters)
			// arguments; trailing entries are oracle bookkeeping.
			params := f.Action.Parameters
			if len(f.Args) < len(params) {
				return nil, fmt.Errorf("grounding: model binding for action %s has %d arguments, schema needs %d",
					f.Action.Name, len(f.Args), len(params))
			}
			binding := append([]string(nil), f.Args[:len(params)]...)
			result.ActionBindings[f.Action] = append(result.ActionBindings[f.Action], binding)

			sub := make(map[string]string, len(params))
			for i, par := range params {
				sub[par.Name] = binding[i]
			}
			action, err := f.Action.Instantiate(sub, initFacts, assignments, fluentFacts, objectsByType, task.UseMinCostMetric)
			if err != nil {
				return nil, fmt.Errorf("grounding: %w", err)
			}
			if action != nil {
				result.Actions = append(result.Actions, action)
			}

		case model.AxiomFact:
			params := f.Axiom.Parameters
			if len(f.Args) < len(params) {
				return nil, fmt.Errorf("grounding: model binding for axiom %s has %d arguments, schema needs %d",
					f.Axiom.Name, len(f.Args), len(params))
			}
			binding := append([]string(nil), f.Args[:len(params)]...)
			result.AxiomBindings[f.Axiom] = append(result.AxiomBindings[f.Axiom], binding)

			sub := make(map[string]string, len(params))
			for i, par := range params {
				sub[par.Name] = binding[i]
			}
			if axiom := f.Axiom.Instantiate(sub, initFacts, fluentFacts); axiom != nil {
				result.Axioms = append(result.Axioms, axiom)
			}

		case model.GoalReachableFact:
			result.RelaxedReachable = true

		case model.AtomFact:
			// Ordinary facts describe reachable state; they are
			// consumed through the fluent projection above.
		}
	}

	sort.SliceStable(result.Axioms, func(i, j int) bool {
		return result.Axioms[i].SortKey() < result.Axioms[j].SortKey()
	})

	goal, impossible := InstantiateGoal(task.Goal, initFacts, fluentFacts)
	result.Goal = goal
	result.GoalImpossible = impossible

	return result, nil
}
